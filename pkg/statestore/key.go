package statestore

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Separator splits a string key into path segments.
const Separator = "."

// Key identifies a registered value. It is either a string key, which may
// contain Separator to address a nested namespace, or an integer key, which
// is always a single opaque segment.
//
// Keys are built with Str or Int. The zero Key is empty and rejected.
type Key struct {
	str     string
	num     int64
	numeric bool
}

// Str returns a string key. "a.b.c" addresses value c in namespace a.b.
func Str(s string) Key {
	return Key{str: s}
}

// Int returns an integer key. Integer keys never collide with string keys
// of the same text, nor with segments of dotted string keys.
func Int(n int64) Key {
	return Key{num: n, numeric: true}
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool { return k.numeric }

// String returns the key as text.
func (k Key) String() string {
	if k.numeric {
		return strconv.FormatInt(k.num, 10)
	}
	return k.str
}

// ParseKey converts a dynamically typed value into a Key.
// Strings and Go integer kinds are accepted; nil is empty; anything
// else fails with ErrKeyType.
func ParseKey(v any) (Key, error) {
	switch val := v.(type) {
	case nil:
		return Key{}, &KeyError{Index: -1, Err: ErrEmptyKey}
	case Key:
		return val, nil
	case string:
		return Str(val), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			break
		}
		return Int(int64(u)), nil
	case reflect.String:
		return Str(rv.String()), nil
	}
	return Key{}, &KeyError{Key: fmt.Sprintf("%v (%T)", v, v), Index: -1, Err: ErrKeyType}
}

// segment is one step of a path. The numeric flag keeps integer keys in
// their own namespace.
type segment struct {
	name    string
	numeric bool
}

func (s segment) String() string { return s.name }

// path parses k into segments. With strict set, string segments that start
// with an integer literal are rejected.
func (k Key) path(strict bool) ([]segment, error) {
	if k.numeric {
		return []segment{{name: strconv.FormatInt(k.num, 10), numeric: true}}, nil
	}
	if strings.TrimSpace(k.str) == "" {
		return nil, &KeyError{Key: k.str, Index: -1, Err: ErrEmptyKey}
	}

	names := strings.Split(k.str, Separator)
	segs := make([]segment, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, &KeyError{Key: k.str, Index: i, Err: ErrDoubleSeparator}
		}
		if strict && looksNumeric(name) {
			return nil, &KeyError{Key: k.str, Index: i, Err: ErrKeyType}
		}
		segs[i] = segment{name: name}
	}
	return segs, nil
}

// looksNumeric reports whether s begins with an integer literal after
// optional leading whitespace and sign, e.g. "11", " -3", "7up".
func looksNumeric(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func segmentNames(segs []segment) []string {
	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = s.name
	}
	return names
}
