package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const arrayConnectionTypeTag = "arrayconnection:"

// OffsetToCursor encodes a single-source offset as an opaque cursor.
func OffsetToCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(arrayConnectionTypeTag + strconv.Itoa(offset)))
}

// CursorToOffset reverses OffsetToCursor. -1 is valid and means "before the
// first element".
func CursorToOffset(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, decodeError(cursor, "not base64", err)
	}
	value, ok := strings.CutPrefix(string(raw), arrayConnectionTypeTag)
	if !ok {
		return 0, decodeError(cursor, "unexpected type tag", nil)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < -1 {
		return 0, decodeError(cursor, "offset is not a valid integer", err)
	}
	return n, nil
}

// SliceMeta locates a fetched slice inside the full collection.
type SliceMeta struct {
	SliceStart  int
	ArrayLength int
}

// ConnectionFromArraySlice builds a connection from one slice of a single
// collection whose position in the whole is described by meta.
func ConnectionFromArraySlice[T any](slice []T, args ConnectionArgs, meta SliceMeta) (*Connection[T], error) {
	sliceEnd := meta.SliceStart + len(slice)
	startOffset := max(meta.SliceStart, 0)
	endOffset := min(sliceEnd, meta.ArrayLength)

	afterOffset := -1
	if args.After != nil {
		n, err := CursorToOffset(*args.After)
		if err != nil {
			return nil, err
		}
		afterOffset = n
		if afterOffset >= 0 && afterOffset < meta.ArrayLength {
			startOffset = max(startOffset, afterOffset+1)
		}
	}

	beforeOffset := endOffset
	if args.Before != nil {
		n, err := CursorToOffset(*args.Before)
		if err != nil {
			return nil, err
		}
		beforeOffset = n
		if beforeOffset >= 0 && beforeOffset < meta.ArrayLength {
			endOffset = min(endOffset, beforeOffset)
		}
	}

	if args.First != nil {
		if *args.First < 0 {
			return nil, ErrNegativeFirst
		}
		endOffset = min(endOffset, startOffset+*args.First)
	}
	if args.Last != nil {
		if *args.Last < 0 {
			return nil, ErrNegativeLast
		}
		startOffset = max(startOffset, endOffset-*args.Last)
	}

	conn := &Connection[T]{TotalCount: meta.ArrayLength, Edges: []Edge[T]{}}
	from, to := startOffset-meta.SliceStart, endOffset-meta.SliceStart
	if from < to && from >= 0 && to <= len(slice) {
		conn.Edges = make([]Edge[T], 0, to-from)
		for i, node := range slice[from:to] {
			conn.Edges = append(conn.Edges, Edge[T]{Cursor: OffsetToCursor(startOffset + i), Node: node})
		}
	}

	if n := len(conn.Edges); n > 0 {
		conn.PageInfo.StartCursor = &conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = &conn.Edges[n-1].Cursor
	}

	lowerBound := 0
	if args.After != nil {
		lowerBound = afterOffset + 1
	}
	upperBound := meta.ArrayLength
	if args.Before != nil {
		upperBound = beforeOffset
	}
	if args.Last != nil {
		conn.PageInfo.HasPreviousPage = startOffset > lowerBound
	}
	if args.First != nil {
		conn.PageInfo.HasNextPage = endOffset < upperBound
	}
	return conn, nil
}
