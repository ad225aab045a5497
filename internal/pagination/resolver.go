package pagination

// PaginationInput is what a single-source field resolver knows after one
// upstream call.
type PaginationInput[T any] struct {
	TotalCount int
	Offset     int
	Page       int
	Size       int
	Body       []T
	Args       ConnectionArgs
}

// PaginationResolver builds the connection for a single offset-paginated
// source, including page-jump cursors.
func PaginationResolver[T any](in PaginationInput[T]) (*Connection[T], error) {
	args := in.Args
	if args.Page != nil {
		// The window is already fixed by page/size, relay cursors do not apply.
		size := in.Size
		args = ConnectionArgs{First: &size, Sort: args.Sort}
	}

	conn, err := ConnectionFromArraySlice(in.Body, args, SliceMeta{
		SliceStart:  in.Offset,
		ArrayLength: in.TotalCount,
	})
	if err != nil {
		return nil, err
	}

	if len(conn.Edges) > 0 && args.Last == nil {
		conn.PageInfo.HasPreviousPage = in.Offset > 0
	}
	conn.PageCursors = CreatePageCursors(in.Page, in.Size, in.TotalCount, defaultPageCursorWindow)
	return conn, nil
}
