package statestore

import "sync"

var (
	defaultStore *Store[any]
	defaultOnce  sync.Once
)

// Default returns the process-lifetime store.
// It is created on first use unless SetDefault installed one earlier.
func Default() *Store[any] {
	defaultOnce.Do(func() {
		defaultStore = New[any](WithName[any]("default"))
	})
	return defaultStore
}

// SetDefault installs s as the process-lifetime store. It must run before
// the first call to Default; it reports whether s was installed.
func SetDefault(s *Store[any]) bool {
	if s == nil {
		return false
	}
	installed := false
	defaultOnce.Do(func() {
		defaultStore = s
		installed = true
	})
	return installed
}

// Register stores value under key in the default store.
func Register(key Key, value any) (any, error) {
	return Default().Register(key, value)
}

// Resolve returns the value registered under key in the default store.
func Resolve(key Key) (any, error) {
	return Default().Resolve(key)
}
