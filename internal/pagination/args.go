package pagination

import (
	"math"
)

// ConnectionArgs are the connection arguments a field resolver receives.
// Page and Size are the page-jump variant used by single-source fields.
type ConnectionArgs struct {
	First  *int
	After  *string
	Last   *int
	Before *string
	Page   *int
	Size   *int
	Sort   string
}

// PageParams is the limit/offset window derived from ConnectionArgs.
type PageParams struct {
	Page   int
	Size   int
	Offset int
}

// ConvertConnectionArgs turns relay or page arguments into an offset window.
// An explicit page wins: offset is (page-1)*size, with size taken from
// size, then first, then defaultSize. Otherwise the window starts right
// after the after cursor and spans first nodes.
func ConvertConnectionArgs(args ConnectionArgs, defaultSize int) (PageParams, error) {
	if args.Page != nil {
		size := defaultSize
		if args.Size != nil {
			size = *args.Size
		} else if args.First != nil {
			size = *args.First
		}
		if *args.Page < 1 || size < 1 {
			return PageParams{}, ErrInvalidPage
		}
		return PageParams{Page: *args.Page, Size: size, Offset: (*args.Page - 1) * size}, nil
	}

	switch {
	case args.First != nil:
		if *args.First < 0 {
			return PageParams{}, ErrNegativeFirst
		}
		offset := 0
		if args.After != nil && *args.After != "" {
			n, err := CursorToOffset(*args.After)
			if err != nil {
				return PageParams{}, err
			}
			offset = n + 1
		}
		size := *args.First
		return PageParams{Page: pageForOffset(offset, size), Size: size, Offset: offset}, nil

	case args.Last != nil:
		if *args.Last < 0 {
			return PageParams{}, ErrNegativeLast
		}
		if args.Before == nil {
			return PageParams{}, ErrBackwardPagination
		}
		before, err := CursorToOffset(*args.Before)
		if err != nil {
			return PageParams{}, err
		}
		// before=-1 points ahead of the first element: an empty window.
		offset := max(before-*args.Last, 0)
		size := max(before-offset, 0)
		return PageParams{Page: pageForOffset(offset, size), Size: size, Offset: offset}, nil

	default:
		size := defaultSize
		if args.Size != nil {
			size = *args.Size
		}
		if size < 1 {
			return PageParams{}, ErrInvalidPage
		}
		return PageParams{Page: 1, Size: size, Offset: 0}, nil
	}
}

func pageForOffset(offset, size int) int {
	if size <= 0 {
		return 1
	}
	return int(math.Round(float64(size+offset) / float64(size)))
}
