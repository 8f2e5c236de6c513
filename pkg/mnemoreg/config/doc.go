/*
Package config builds registry options from configuration files.

# Overview

config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches gracefully by returning default
values. On top of that, Options translates a recognized set of keys
into mnemoreg registry options, so a registry can be configured from a
YAML or JSON file without hand-written plumbing.

# Basic Usage

	cfg, err := config.FromFile("registry.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	opts, err := config.Options[http.Handler](cfg)
	if err != nil {
	    log.Fatal(err)
	}

	reg, err := mnemoreg.New[http.Handler](opts...)

With a registry.yaml such as:

	overwrite_policy: allow
	log_level: debug
	store: sqlite
	store_path: ./registry.db
	metrics: true

# Accessors

The typed accessors (String, Int, Bool, Duration) return the given
default when a key is missing or the value cannot be converted. Level
is stricter: a present but unparseable log level is an error, because
silently changing verbosity is worse than failing loudly. Options
follows the same philosophy for policies and store names.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
