package statestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/randalmurphal/statestore/pkg/statestore/observability"
)

// Store is a thread-safe registry of values indexed by hierarchical keys.
// Dotted string keys are stored as a tree, one node per segment, so a
// lookup walks only its own branch.
type Store[V any] struct {
	mu   sync.RWMutex
	root *node[V]

	name    string
	strict  bool
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// node is either a namespace (children set) or a leaf (value set).
type node[V any] struct {
	leaf     bool
	value    V
	children map[segment]*node[V]
}

func newNamespace[V any]() *node[V] {
	return &node[V]{children: make(map[segment]*node[V])}
}

// New creates an empty store.
func New[V any](opts ...Option[V]) *Store[V] {
	s := &Store[V]{
		root:    newNamespace[V](),
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = observability.EnrichLogger(s.logger, s.name)
	return s
}

// Name returns the name given with WithName.
func (s *Store[V]) Name() string { return s.name }

// Register stores value under key, creating intermediate namespaces as
// needed. Anything already at key, value or namespace, is replaced.
// It returns value on success, or the zero V and a *KeyError.
func (s *Store[V]) Register(key Key, value V) (V, error) {
	return s.RegisterContext(context.Background(), key, value)
}

// RegisterContext is Register with a context for tracing and metrics.
func (s *Store[V]) RegisterContext(ctx context.Context, key Key, value V) (V, error) {
	ctx, span := s.spans.StartOpSpan(ctx, "register", s.name, key.String())

	segs, err := key.path(s.strict)
	if err != nil {
		s.logKeyError("register", err)
		s.metrics.RecordRegister(ctx, s.name, 0, Kind(err))
		s.spans.EndSpanWithError(span, err)
		var zero V
		return zero, err
	}

	replaced := s.insert(segs, value)
	if replaced >= 0 {
		observability.LogReplacedLeaf(s.logger, key.String(), replaced, segmentNames(segs[:replaced+1]))
	}
	observability.LogRegistered(s.logger, key.String(), len(segs))
	s.metrics.RecordRegister(ctx, s.name, len(segs), "")
	s.spans.EndSpanWithError(span, nil)
	return value, nil
}

// insert writes value at segs and returns the index of the first value
// that had to become a namespace, or -1.
func (s *Store[V]) insert(segs []segment, value V) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := -1
	current := s.root
	last := len(segs) - 1
	for i, seg := range segs[:last] {
		child, ok := current.children[seg]
		if !ok || child.leaf {
			if ok && replaced < 0 {
				replaced = i
			}
			child = newNamespace[V]()
			current.children[seg] = child
		}
		current = child
	}
	current.children[segs[last]] = &node[V]{leaf: true, value: value}
	return replaced
}

// Resolve returns the value registered under key.
//
// A malformed key yields a *KeyError. A key that leads nowhere, or through
// a value as though it were a namespace, yields a *LookupError wrapping
// ErrNotFound. A key naming a namespace yields a *LookupError wrapping
// ErrNamespace.
func (s *Store[V]) Resolve(key Key) (V, error) {
	return s.ResolveContext(context.Background(), key)
}

// ResolveContext is Resolve with a context for tracing and metrics.
func (s *Store[V]) ResolveContext(ctx context.Context, key Key) (V, error) {
	ctx, span := s.spans.StartOpSpan(ctx, "resolve", s.name, key.String())
	var zero V

	segs, err := key.path(s.strict)
	if err != nil {
		s.logKeyError("resolve", err)
		s.metrics.RecordResolve(ctx, s.name, 0, Kind(err))
		s.spans.EndSpanWithError(span, err)
		return zero, err
	}

	value, lerr := s.lookup(key, segs)
	if lerr != nil {
		observability.LogLookupError(s.logger, lerr.Key, lerr.Segment, lerr.Index, lerr.Path, Kind(lerr), lerr)
		s.metrics.RecordResolve(ctx, s.name, len(segs), Kind(lerr))
		s.spans.EndSpanWithError(span, lerr)
		return zero, lerr
	}

	s.metrics.RecordResolve(ctx, s.name, len(segs), "")
	s.spans.EndSpanWithError(span, nil)
	return value, nil
}

func (s *Store[V]) lookup(key Key, segs []segment) (V, *LookupError) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	current := s.root
	for i, seg := range segs {
		var child *node[V]
		if !current.leaf {
			child = current.children[seg]
		}
		if child == nil {
			return zero, &LookupError{
				Key:     key.String(),
				Segment: seg.name,
				Index:   i,
				Path:    segmentNames(segs[:i]),
				Err:     ErrNotFound,
			}
		}
		current = child
	}

	if !current.leaf {
		last := len(segs) - 1
		return zero, &LookupError{
			Key:     key.String(),
			Segment: segs[last].name,
			Index:   last,
			Path:    segmentNames(segs[:last]),
			Err:     ErrNamespace,
		}
	}
	return current.value, nil
}

// Lookup returns the value for key and whether it was found.
// Failures are still reported to the logger.
func (s *Store[V]) Lookup(key Key) (V, bool) {
	v, err := s.Resolve(key)
	return v, err == nil
}

// MustResolve returns the value for key, panicking if it cannot be resolved.
func (s *Store[V]) MustResolve(key Key) V {
	v, err := s.Resolve(key)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveAs resolves key in an untyped store and asserts the value to T.
// A stored nil satisfies any T whose zero value is nil.
func ResolveAs[T any](s *Store[any], key Key) (T, error) {
	var zero T
	v, err := s.Resolve(key)
	if err != nil {
		return zero, err
	}
	if v == nil && nilable(reflect.TypeFor[T]()) {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, want %v", ErrTypeMismatch, key.String(), v, reflect.TypeFor[T]())
	}
	return t, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func (s *Store[V]) logKeyError(op string, err error) {
	var ke *KeyError
	if errors.As(err, &ke) {
		observability.LogKeyError(s.logger, op, ke.Key, ke.Index, Kind(err), err)
	}
}
