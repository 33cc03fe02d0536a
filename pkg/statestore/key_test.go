package statestore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPath(t *testing.T) {
	tests := []struct {
		name      string
		key       Key
		strict    bool
		want      []string
		wantErr   error
		wantIndex int
	}{
		{"single segment", Str("services"), false, []string{"services"}, nil, 0},
		{"dotted", Str("urls.orders.edit"), false, []string{"urls", "orders", "edit"}, nil, 0},
		{"segments keep inner spaces", Str("a b. c"), false, []string{"a b", " c"}, nil, 0},
		{"numeric segment permissive", Str("11.basim"), false, []string{"11", "basim"}, nil, 0},
		{"integer key", Int(12), false, []string{"12"}, nil, 0},
		{"negative integer key", Int(-7), false, []string{"-7"}, nil, 0},
		{"zero integer key", Int(0), false, []string{"0"}, nil, 0},
		{"zero Key", Key{}, false, nil, ErrEmptyKey, -1},
		{"empty string", Str(""), false, nil, ErrEmptyKey, -1},
		{"whitespace only", Str("   "), false, nil, ErrEmptyKey, -1},
		{"double separator", Str("a..b"), false, nil, ErrDoubleSeparator, 1},
		{"leading separator", Str(".a"), false, nil, ErrDoubleSeparator, 0},
		{"trailing separator", Str("a."), false, nil, ErrDoubleSeparator, 1},
		{"separator only", Str("."), false, nil, ErrDoubleSeparator, 0},
		{"whitespace segment", Str("a. .b"), false, nil, ErrDoubleSeparator, 1},
		{"strict rejects numeric segment", Str("11.basim"), true, nil, ErrKeyType, 0},
		{"strict rejects signed segment", Str("a.-3"), true, nil, ErrKeyType, 1},
		{"strict rejects digit prefix", Str("a.7up"), true, nil, ErrKeyType, 1},
		{"strict allows letters", Str("a.b7"), true, []string{"a", "b7"}, nil, 0},
		{"strict ignores integer keys", Int(12), true, []string{"12"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := tt.key.path(tt.strict)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var ke *KeyError
				require.True(t, errors.As(err, &ke))
				assert.Equal(t, tt.wantIndex, ke.Index)
				assert.Nil(t, segs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, segmentNames(segs))
		})
	}
}

func TestKeyPath_IntegerSegmentIsTagged(t *testing.T) {
	intSegs, err := Int(12).path(false)
	require.NoError(t, err)
	strSegs, err := Str("12").path(false)
	require.NoError(t, err)

	assert.Equal(t, intSegs[0].name, strSegs[0].name)
	assert.NotEqual(t, intSegs[0], strSegs[0])
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "a.b", Str("a.b").String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "", Key{}.String())
	assert.True(t, Int(1).IsInt())
	assert.False(t, Str("1").IsInt())
}

func TestParseKey(t *testing.T) {
	type label string

	tests := []struct {
		name    string
		input   any
		want    Key
		wantErr error
	}{
		{"string", "a.b", Str("a.b"), nil},
		{"named string type", label("svc"), Str("svc"), nil},
		{"int", 12, Int(12), nil},
		{"int8", int8(-3), Int(-3), nil},
		{"int64", int64(1 << 40), Int(1 << 40), nil},
		{"uint16", uint16(7), Int(7), nil},
		{"existing key", Int(5), Int(5), nil},
		{"nil", nil, Key{}, ErrEmptyKey},
		{"bool", true, Key{}, ErrKeyType},
		{"float", 1.5, Key{}, ErrKeyType},
		{"slice", []string{"a"}, Key{}, ErrKeyType},
		{"uint64 overflow", uint64(1 << 63), Key{}, ErrKeyType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLooksNumeric(t *testing.T) {
	for _, s := range []string{"0", "11", " 12", "+4", "-3", "7up", "0x1f"} {
		assert.True(t, looksNumeric(s), s)
	}
	for _, s := range []string{"", "-", "+", "a1", "basim", " ", "Infinity", ".5"} {
		assert.False(t, looksNumeric(s), s)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&KeyError{Err: ErrEmptyKey}, "empty_key"},
		{&KeyError{Err: ErrKeyType}, "key_type"},
		{&KeyError{Err: ErrDoubleSeparator}, "double_separator"},
		{&LookupError{Err: ErrNotFound}, "not_found"},
		{&LookupError{Err: ErrNamespace}, "namespace"},
		{ErrTypeMismatch, "type_mismatch"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err))
	}
}

func TestErrorMessages(t *testing.T) {
	ke := &KeyError{Key: "a..b", Index: 1, Err: ErrDoubleSeparator}
	assert.Contains(t, ke.Error(), `"a..b"`)
	assert.Contains(t, ke.Error(), "segment 1")

	whole := &KeyError{Key: "", Index: -1, Err: ErrEmptyKey}
	assert.NotContains(t, whole.Error(), "segment")

	le := &LookupError{Key: "a.b.c", Segment: "c", Index: 2, Path: []string{"a", "b"}, Err: ErrNotFound}
	assert.Contains(t, le.Error(), "[a.b]")
	assert.Contains(t, le.Error(), `"c"`)
	assert.ErrorIs(t, le, ErrNotFound)
}
