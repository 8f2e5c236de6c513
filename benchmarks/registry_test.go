package benchmarks

import (
	"strconv"
	"testing"

	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg"
)

func key(i int) string {
	return "key-" + strconv.Itoa(i)
}

// newRegistry creates an Allow-policy registry so write benchmarks can
// hit the same keys repeatedly.
func newRegistry(b *testing.B) *mnemoreg.Registry[int] {
	b.Helper()
	r, err := mnemoreg.New[int](
		mnemoreg.WithOverwritePolicy(mnemoreg.Allow),
	)
	if err != nil {
		b.Fatal(err)
	}
	return r
}

// seeded returns a registry preloaded with n entries.
func seeded(b *testing.B, n int) *mnemoreg.Registry[int] {
	b.Helper()
	r := newRegistry(b)
	for i := 0; i < n; i++ {
		if err := r.Set(key(i), i); err != nil {
			b.Fatal(err)
		}
	}
	return r
}

// BenchmarkSet measures single-key write overhead.
func BenchmarkSet(b *testing.B) {
	r := newRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Set("key", i); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRegister measures a write carrying a description.
func BenchmarkRegister(b *testing.B) {
	r := newRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Register("key", i, "benchmark entry"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLookup measures strict read overhead.
func BenchmarkLookup(b *testing.B) {
	r := seeded(b, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Lookup(key(0)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGet measures forgiving read overhead.
func BenchmarkGet(b *testing.B) {
	r := seeded(b, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Get(key(0), -1)
	}
}

// BenchmarkContains measures membership check overhead.
func BenchmarkContains(b *testing.B) {
	r := seeded(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Contains(key(i % 100))
	}
}

// BenchmarkKeys_100 measures key snapshot cost on 100 entries.
func BenchmarkKeys_100(b *testing.B) {
	r := seeded(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Keys()
	}
}

// BenchmarkSnapshot_100 measures full snapshot cost on 100 entries.
func BenchmarkSnapshot_100(b *testing.B) {
	r := seeded(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Snapshot(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkUpdate_100 measures a 100-entry merge.
func BenchmarkUpdate_100(b *testing.B) {
	data := make(map[string]int, 100)
	for i := 0; i < 100; i++ {
		data[key(i)] = i
	}
	r := newRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Update(data); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBulk measures critical section framework overhead.
func BenchmarkBulk(b *testing.B) {
	r := newRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := r.Bulk(func(tx *mnemoreg.Tx[int]) error {
			return tx.Set("key", i)
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParallelLookup measures reads under contention.
func BenchmarkParallelLookup(b *testing.B) {
	r := seeded(b, 100)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = r.Lookup(key(i % 100))
			i++
		}
	})
}

// BenchmarkToJSON_100 measures serialization of 100 entries.
func BenchmarkToJSON_100(b *testing.B) {
	r := seeded(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.ToJSON(); err != nil {
			b.Fatal(err)
		}
	}
}
