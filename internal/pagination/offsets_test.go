package pagination

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestOffsets_EncodeAfterIncrements(t *testing.T) {
	o := EmptyOffsets([]string{"foo", "bar", "baz"}).
		Increment("foo").
		Increment("bar").
		Increment("foo")

	assert.Equal(t, "offsets:_position=2&foo=2&bar=1&baz=0", o.String())
	assert.Equal(t, encode("offsets:_position=2&foo=2&bar=1&baz=0"), o.Encoded())
}

func TestOffsets_Empty(t *testing.T) {
	o := EmptyOffsets([]string{"a", "b", "a"})

	_, ok := o.Position()
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	assert.Equal(t, "offsets:_position=null&a=0&b=0", o.String())
}

func TestOffsets_IncrementDoesNotMutateReceiver(t *testing.T) {
	base := EmptyOffsets([]string{"a", "b"})
	first := base.Increment("a")
	second := first.Increment("a")
	branch := first.Increment("c")

	assert.Equal(t, 0, base.Offset("a"))
	assert.Equal(t, 1, first.Offset("a"))
	assert.Equal(t, 2, second.Offset("a"))
	assert.False(t, first.Has("c"))
	assert.Equal(t, []string{"a", "b", "c"}, branch.Keys())
	assert.Equal(t, []string{"a", "b"}, first.Keys())

	pos, ok := second.Position()
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestOffsets_StateIsACopy(t *testing.T) {
	o := EmptyOffsets([]string{"a"}).Increment("a")
	state := o.State()
	state["a"] = 42

	assert.Equal(t, 1, o.Offset("a"))
}

func TestDecodeOffsets_RoundTrip(t *testing.T) {
	o := EmptyOffsets([]string{"articles", "shows"}).
		Increment("shows").
		Increment("articles").
		Increment("shows")

	decoded, err := DecodeOffsets[string](o.Encoded())
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(o.State(), decoded.State()))
	assert.Equal(t, o.Keys(), decoded.Keys())
	assert.Equal(t, o.Encoded(), decoded.Encoded())

	pos, ok := decoded.Position()
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestDecodeOffsets_NullPosition(t *testing.T) {
	decoded, err := DecodeOffsets[string](encode("offsets:_position=null&a=0&b=0"))
	require.NoError(t, err)

	_, ok := decoded.Position()
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, decoded.State())
}

func TestDecodeOffsets_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "%%%"},
		{"wrong prefix", encode("badclass_position=2&foo=1&bar=1")},
		{"missing colon", encode("offsets_position=bad&foo=1&bar=1")},
		{"non numeric position", encode("offsets:_position=bad&foo=1&bar=1")},
		{"non numeric offset", encode("offsets:_position=1&foo=x")},
		{"negative offset", encode("offsets:_position=1&foo=-1")},
		{"malformed pair", encode("offsets:_position=1&foo")},
		{"duplicate key", encode("offsets:_position=1&foo=1&foo=2")},
		{"duplicate position", encode("offsets:_position=1&_position=2")},
		{"missing position", encode("offsets:foo=1")},
		{"null offset", encode("offsets:_position=1&foo=null")},
		{"array cursor", OffsetToCursor(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOffsets[string](tt.cursor)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCursor)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.cursor, de.Cursor)
		})
	}
}

func TestDecodeOffsets_Idempotent(t *testing.T) {
	cursor := encode("offsets:_position=4&a=3&b=2")

	first, err := DecodeOffsets[string](cursor)
	require.NoError(t, err)
	second, err := DecodeOffsets[string](cursor)
	require.NoError(t, err)

	assert.Equal(t, first.Encoded(), second.Encoded())
	assert.Equal(t, cursor, first.Encoded())
}

func TestOffsets_EscapedKeys(t *testing.T) {
	o := EmptyOffsets([]string{"a&b", "c=d"}).Increment("a&b")

	decoded, err := DecodeOffsets[string](o.Encoded())
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Offset("a&b"))
	assert.Equal(t, 0, decoded.Offset("c=d"))
}
