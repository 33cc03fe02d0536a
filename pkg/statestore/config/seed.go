package config

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/randalmurphal/statestore/pkg/statestore"
)

// ErrOverwritten reports a seeded value that a later entry of the same
// document replaced.
var ErrOverwritten = errors.New("config: seeded value overwritten")

// Seed registers every leaf of a nested configuration document in s.
// Nested maps become namespaces, so
//
//	urls:
//	  orders:
//	    edit: https://example.com/orders/edit/
//
// is registered under "urls.orders.edit". Lists and scalars are leaves.
// A map key containing "." adds path segments of its own.
//
// Keys are visited in sorted order at every level. When two entries
// address overlapping paths, such as "a" and "a.b", the one visited later
// wins and the earlier value is reported as ErrOverwritten.
//
// Seed keeps going after a failure; it returns the number of values
// still reachable and all failures joined.
func Seed(s *statestore.Store[any], data map[string]any) (int, error) {
	sd := seeder{store: s}
	for _, name := range slices.Sorted(maps.Keys(data)) {
		sd.walk("", name, data[name])
	}
	return len(sd.live), errors.Join(sd.errs...)
}

type seeder struct {
	store *statestore.Store[any]
	live  []string
	errs  []error
}

func (sd *seeder) walk(prefix string, rawKey, v any) {
	k, err := statestore.ParseKey(rawKey)
	if err != nil {
		sd.errs = append(sd.errs, fmt.Errorf("seed %q: %w", prefix, err))
		return
	}
	key := k.String()
	if prefix != "" {
		key = prefix + statestore.Separator + key
	}

	switch val := v.(type) {
	case map[string]any:
		for _, name := range slices.Sorted(maps.Keys(val)) {
			sd.walk(key, name, val[name])
		}
		return
	case map[any]any:
		for _, name := range sortedKeys(val) {
			sd.walk(key, name, val[name])
		}
		return
	}

	if _, err := sd.store.Register(statestore.Str(key), v); err != nil {
		sd.errs = append(sd.errs, fmt.Errorf("seed %q: %w", key, err))
		return
	}
	sd.claim(key)
}

// claim records key as live and drops every earlier key its registration
// made unreachable.
func (sd *seeder) claim(key string) {
	kept := sd.live[:0]
	for _, prev := range sd.live {
		if overlaps(prev, key) {
			sd.errs = append(sd.errs, fmt.Errorf("seed %q: %w by %q", prev, ErrOverwritten, key))
			continue
		}
		kept = append(kept, prev)
	}
	sd.live = append(kept, key)
}

// overlaps reports whether a and b are the same path or one lies inside
// the other.
func overlaps(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return a == b || strings.HasPrefix(b, a+statestore.Separator)
}

// sortedKeys orders keys of a YAML map by their text, then by type, so
// 1 and "1" keep a fixed order.
func sortedKeys(m map[any]any) []any {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b any) int {
		return cmp.Or(
			cmp.Compare(fmt.Sprint(a), fmt.Sprint(b)),
			cmp.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)),
		)
	})
	return keys
}
