package mnemoreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAcceptanceDefaultPolicy walks the canonical first-use path: write,
// rejected overwrite, original value intact.
func TestAcceptanceDefaultPolicy(t *testing.T) {
	r, err := New[int]()
	require.NoError(t, err)

	require.NoError(t, r.Set("a", 1))

	err = r.Set("a", 2)
	assert.ErrorIs(t, err, ErrAlreadyRegistered, "default policy forbids overwrite")

	v, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v, "failed write must leave the original value")
}

// TestAcceptanceAllowPolicy verifies the relaxed policy end to end.
func TestAcceptanceAllowPolicy(t *testing.T) {
	r, err := New[int](WithOverwritePolicy(Allow))
	require.NoError(t, err)

	require.NoError(t, r.Set("x", 10))
	require.NoError(t, r.Set("x", 20))

	assert.Equal(t, 20, r.Get("x", -1))
}

// TestAcceptanceKeyValidationEverywhere verifies a malformed key is
// rejected by every validating operation.
func TestAcceptanceKeyValidationEverywhere(t *testing.T) {
	r, err := New[int]()
	require.NoError(t, err)

	const bad = "has space"

	assert.ErrorIs(t, r.Set(bad, 1), ErrWhitespaceKey)
	_, err = r.Register(bad, 1, "")
	assert.ErrorIs(t, err, ErrWhitespaceKey)
	_, err = r.Lookup(bad)
	assert.ErrorIs(t, err, ErrWhitespaceKey)
	assert.ErrorIs(t, r.Delete(bad), ErrWhitespaceKey)
	assert.ErrorIs(t, r.Update(map[string]int{bad: 1}), ErrWhitespaceKey)

	assert.Equal(t, 0, r.Len(), "no rejected write may land")
}

// TestAcceptancePluginWorkflow runs the registry as a handler table:
// register under names, dispatch by lookup, export, reload.
func TestAcceptancePluginWorkflow(t *testing.T) {
	type handler func(int) int

	r, err := New[handler]()
	require.NoError(t, err)

	double, err := r.Register("double", func(x int) int { return x * 2 }, "doubles its input")
	require.NoError(t, err)
	assert.Equal(t, 8, double(4), "Register returns the value for direct use")

	_, err = r.Register("negate", func(x int) int { return -x }, "")
	require.NoError(t, err)

	h, err := r.Lookup("negate")
	require.NoError(t, err)
	assert.Equal(t, -3, h(3))

	snap, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "doubles its input", snap["double"].Description())
	assert.Equal(t, "registered value of type mnemoreg.handler", snap["negate"].Description())
}

// TestAcceptanceExportReload round-trips a registry through JSON into a
// fresh instance.
func TestAcceptanceExportReload(t *testing.T) {
	r, err := New[string]()
	require.NoError(t, err)
	require.NoError(t, r.Update(map[string]string{
		"host": "10.0.0.5",
		"zone": "eu-west-1",
	}))

	data, err := r.ToJSON()
	require.NoError(t, err)

	reloaded, err := FromJSON[string](data)
	require.NoError(t, err)

	want, err := r.ToMap()
	require.NoError(t, err)
	got, err := reloaded.ToMap()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
