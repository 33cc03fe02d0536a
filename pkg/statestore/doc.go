// Package statestore provides a thread-safe registry of values indexed by
// hierarchical keys.
//
// String keys are split on "." and stored as a tree: "urls.orders.edit" is
// the value edit inside namespace urls.orders. Intermediate namespaces are
// created on first use and never removed. Integer keys are a single opaque
// segment and never collide with string keys of the same text.
//
// # Basic Usage
//
//	s := statestore.New[any]()
//	s.Register(statestore.Str("urls.orders.edit"), "https://example.com/orders/edit/")
//	s.Register(statestore.Int(12), handler)
//
//	url, err := s.Resolve(statestore.Str("urls.orders.edit"))
//	if errors.Is(err, statestore.ErrNotFound) {
//	    // nothing registered there
//	}
//
// Typed stores keep values statically typed:
//
//	factories := statestore.New[func() Service]()
//	factories.Register(statestore.Str("services.mail"), NewMailService)
//
// # Errors
//
// Every failure is returned and also logged to the store's *slog.Logger:
//
//   - *KeyError wrapping ErrEmptyKey, ErrKeyType or ErrDoubleSeparator when
//     the key cannot be parsed. Nothing is mutated.
//   - *LookupError wrapping ErrNotFound when the path does not exist, or
//     ErrNamespace when it names a namespace rather than a value.
//
// Kind(err) returns a short name for the failure class.
//
// # Process-lifetime store
//
// Default returns a Store[any] shared by the whole process. Prefer creating
// one store at startup and passing it to consumers; install it with
// SetDefault when code also reaches for the package-level Register and
// Resolve helpers:
//
//	s := statestore.New[any](statestore.WithLogger[any](logger))
//	statestore.SetDefault(s)
//
// # Thread Safety
//
// All Store methods are safe for concurrent use. Register holds the write
// lock for the whole walk, so overlapping prefixes cannot interleave.
package statestore
