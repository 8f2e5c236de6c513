package config

import (
	"fmt"
	"log/slog"

	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg"
	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/observability"
	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/store"
)

// Recognized configuration keys.
//
//	overwrite_policy: "forbid" | "allow" | "warn"
//	log_level:        "debug" | "info" | "warn" | "error" | integer
//	store:            "memory" | "sqlite"
//	store_path:       file path for the sqlite store
//	metrics:          bool
//	tracing:          bool

// Options translates a Config into registry options for a Registry[V].
//
//	cfg, err := config.FromFile("registry.yaml")
//	opts, err := config.Options[http.Handler](cfg)
//	reg, err := mnemoreg.New[http.Handler](opts...)
//
// Unknown values fail loudly rather than falling back to defaults.
func Options[V any](cfg Config) ([]mnemoreg.Option, error) {
	var opts []mnemoreg.Option

	if cfg.Has("overwrite_policy") {
		p, err := parsePolicy(cfg.String("overwrite_policy", ""))
		if err != nil {
			return nil, err
		}
		opts = append(opts, mnemoreg.WithOverwritePolicy(p))
	}

	if cfg.Has("log_level") {
		level, err := cfg.Level("log_level", slog.LevelWarn)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mnemoreg.WithLogLevel(level))
	}

	if cfg.Has("store") {
		switch name := cfg.String("store", "memory"); name {
		case "memory":
			// Same backend New uses when no store is configured; the
			// explicit option only pins the choice.
			opts = append(opts, mnemoreg.WithStore(store.NewMemory[V]()))
		case "sqlite":
			path := cfg.String("store_path", "")
			if path == "" {
				return nil, fmt.Errorf("sqlite store requires store_path")
			}
			st, err := store.NewSQLite[V](path)
			if err != nil {
				return nil, err
			}
			opts = append(opts, mnemoreg.WithStore(st))
		default:
			return nil, fmt.Errorf("unknown store %q", name)
		}
	}

	if cfg.Bool("metrics", false) {
		opts = append(opts, mnemoreg.WithMetrics(observability.NewMetricsRecorder()))
	}

	if cfg.Bool("tracing", false) {
		opts = append(opts, mnemoreg.WithTracing(observability.NewSpanManager()))
	}

	return opts, nil
}

func parsePolicy(name string) (mnemoreg.OverwritePolicy, error) {
	switch name {
	case "forbid":
		return mnemoreg.Forbid, nil
	case "allow":
		return mnemoreg.Allow, nil
	case "warn":
		return mnemoreg.Warn, nil
	default:
		return 0, fmt.Errorf("unknown overwrite policy %q", name)
	}
}
