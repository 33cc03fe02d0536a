/*
Package config loads statestore configuration and seed data from YAML or
JSON.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.

	cfg, err := config.FromFile("statestore.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	s := statestore.New[any](config.StoreOptions[any](cfg.Sub("store"), nil)...)
	n, err := config.Seed(s, cfg.Sub("values").Raw())

# Seeding

Seed flattens nested maps into dotted keys and registers every leaf value.
Integer map keys become string segments, since a seeded path is always a
dotted string key. Keys are visited in sorted order, and a value that a
later entry replaces is reported as ErrOverwritten.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
