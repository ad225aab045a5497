package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var letters = []string{"A", "B", "C", "D", "E"}

func cursorPtr(offset int) *string {
	c := OffsetToCursor(offset)
	return &c
}

func TestOffsetToCursor(t *testing.T) {
	assert.Equal(t, "YXJyYXljb25uZWN0aW9uOjA=", OffsetToCursor(0))

	for _, n := range []int{-1, 0, 7, 1234} {
		got, err := CursorToOffset(OffsetToCursor(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestCursorToOffset_Invalid(t *testing.T) {
	for _, c := range []string{"!!", encode("connection:1"), encode("arrayconnection:x"), encode("arrayconnection:-2")} {
		_, err := CursorToOffset(c)
		assert.ErrorIs(t, err, ErrInvalidCursor, c)
	}
}

func TestConnectionFromArraySlice(t *testing.T) {
	full := SliceMeta{SliceStart: 0, ArrayLength: len(letters)}

	tests := []struct {
		name     string
		slice    []string
		args     ConnectionArgs
		meta     SliceMeta
		want     []string
		wantPrev bool
		wantNext bool
	}{
		{name: "all", slice: letters, meta: full, want: letters},
		{name: "first", slice: letters, args: ConnectionArgs{First: intPtr(2)}, meta: full, want: []string{"A", "B"}, wantNext: true},
		{name: "first after", slice: letters, args: ConnectionArgs{First: intPtr(2), After: cursorPtr(1)}, meta: full, want: []string{"C", "D"}, wantNext: true},
		{name: "first past end", slice: letters, args: ConnectionArgs{First: intPtr(10)}, meta: full, want: letters},
		{name: "last", slice: letters, args: ConnectionArgs{Last: intPtr(2)}, meta: full, want: []string{"D", "E"}, wantPrev: true},
		{name: "last before", slice: letters, args: ConnectionArgs{Last: intPtr(2), Before: cursorPtr(3)}, meta: full, want: []string{"B", "C"}, wantPrev: true},
		{name: "after last element", slice: letters, args: ConnectionArgs{First: intPtr(2), After: cursorPtr(4)}, meta: full, want: []string{}},
		{
			name:     "window of larger collection",
			slice:    []string{"C", "D"},
			args:     ConnectionArgs{First: intPtr(2), After: cursorPtr(1)},
			meta:     SliceMeta{SliceStart: 2, ArrayLength: 5},
			want:     []string{"C", "D"},
			wantNext: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := ConnectionFromArraySlice(tt.slice, tt.args, tt.meta)
			require.NoError(t, err)

			assert.Equal(t, tt.want, conn.Nodes())
			assert.Equal(t, tt.wantPrev, conn.PageInfo.HasPreviousPage)
			assert.Equal(t, tt.wantNext, conn.PageInfo.HasNextPage)
			assert.Equal(t, tt.meta.ArrayLength, conn.TotalCount)

			if len(tt.want) == 0 {
				assert.Nil(t, conn.PageInfo.StartCursor)
				return
			}
			assert.Equal(t, conn.Edges[0].Cursor, *conn.PageInfo.StartCursor)
			assert.Equal(t, conn.Edges[len(conn.Edges)-1].Cursor, *conn.PageInfo.EndCursor)
		})
	}
}

func TestConnectionFromArraySlice_EdgeCursorsAreAbsolute(t *testing.T) {
	conn, err := ConnectionFromArraySlice([]string{"C", "D"}, ConnectionArgs{}, SliceMeta{SliceStart: 2, ArrayLength: 5})
	require.NoError(t, err)

	require.Len(t, conn.Edges, 2)
	assert.Equal(t, OffsetToCursor(2), conn.Edges[0].Cursor)
	assert.Equal(t, OffsetToCursor(3), conn.Edges[1].Cursor)
}

func TestConnectionFromArraySlice_Errors(t *testing.T) {
	full := SliceMeta{ArrayLength: len(letters)}

	_, err := ConnectionFromArraySlice(letters, ConnectionArgs{After: strPtr("nope")}, full)
	assert.ErrorIs(t, err, ErrInvalidCursor)

	_, err = ConnectionFromArraySlice(letters, ConnectionArgs{First: intPtr(-1)}, full)
	assert.ErrorIs(t, err, ErrNegativeFirst)

	_, err = ConnectionFromArraySlice(letters, ConnectionArgs{Last: intPtr(-1)}, full)
	assert.ErrorIs(t, err, ErrNegativeLast)
}

func TestConvertConnectionArgs(t *testing.T) {
	tests := []struct {
		name string
		args ConnectionArgs
		want PageParams
	}{
		{"defaults", ConnectionArgs{}, PageParams{Page: 1, Size: 10, Offset: 0}},
		{"default with size", ConnectionArgs{Size: intPtr(4)}, PageParams{Page: 1, Size: 4, Offset: 0}},
		{"page and size", ConnectionArgs{Page: intPtr(3), Size: intPtr(10)}, PageParams{Page: 3, Size: 10, Offset: 20}},
		{"page with first", ConnectionArgs{Page: intPtr(2), First: intPtr(5)}, PageParams{Page: 2, Size: 5, Offset: 5}},
		{"page with default size", ConnectionArgs{Page: intPtr(2)}, PageParams{Page: 2, Size: 10, Offset: 10}},
		{"first", ConnectionArgs{First: intPtr(3)}, PageParams{Page: 1, Size: 3, Offset: 0}},
		{"first after", ConnectionArgs{First: intPtr(3), After: cursorPtr(4)}, PageParams{Page: 3, Size: 3, Offset: 5}},
		{"last before", ConnectionArgs{Last: intPtr(5), Before: cursorPtr(10)}, PageParams{Page: 2, Size: 5, Offset: 5}},
		{"last before near start", ConnectionArgs{Last: intPtr(5), Before: cursorPtr(2)}, PageParams{Page: 1, Size: 2, Offset: 0}},
		{"last before start", ConnectionArgs{Last: intPtr(5), Before: cursorPtr(-1)}, PageParams{Page: 1, Size: 0, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertConnectionArgs(tt.args, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertConnectionArgs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    ConnectionArgs
		wantErr error
	}{
		{"zero page", ConnectionArgs{Page: intPtr(0)}, ErrInvalidPage},
		{"zero size", ConnectionArgs{Page: intPtr(1), Size: intPtr(0)}, ErrInvalidPage},
		{"negative first", ConnectionArgs{First: intPtr(-2)}, ErrNegativeFirst},
		{"negative last", ConnectionArgs{Last: intPtr(-2)}, ErrNegativeLast},
		{"last without before", ConnectionArgs{Last: intPtr(2)}, ErrBackwardPagination},
		{"bad after", ConnectionArgs{First: intPtr(2), After: strPtr("nope")}, ErrInvalidCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertConnectionArgs(tt.args, 10)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
