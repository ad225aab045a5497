package pagination

import (
	"artmarket-gateway/internal/logger"

	"go.uber.org/zap"
)

const (
	// PageNumberCap bounds how many pages are ever offered for jumping.
	PageNumberCap = 100

	defaultPageCursorWindow = 5
)

// PageCursor is a jump target for page-number navigation.
type PageCursor struct {
	Cursor    string `json:"cursor"`
	Page      int    `json:"page"`
	IsCurrent bool   `json:"isCurrent"`
}

// PageCursors describes the page links to render around the current page.
// First and Last are nil when they would already be part of Around.
type PageCursors struct {
	First    *PageCursor  `json:"first"`
	Last     *PageCursor  `json:"last"`
	Around   []PageCursor `json:"around"`
	Previous *PageCursor  `json:"previous"`
}

// TotalPages is the number of pages of size for totalRecords, capped at
// PageNumberCap.
func TotalPages(totalRecords, size int) int {
	if size <= 0 || totalRecords <= 0 {
		return 0
	}
	return min((totalRecords+size-1)/size, PageNumberCap)
}

// CreatePageCursors computes the page-jump window for the current page.
// window is the number of links to show and is forced odd.
func CreatePageCursors(currentPage, size, totalRecords, window int) *PageCursors {
	if window <= 0 {
		window = defaultPageCursorWindow
	}
	if window%2 == 0 {
		logger.L().Warn("page cursor window must be odd, bumping", zap.Int("window", window))
		window++
	}

	totalPages := TotalPages(totalRecords, size)
	half := window / 2

	var pc PageCursors
	switch {
	case totalPages == 0:
		pc.Around = []PageCursor{pageCursor(1, 1, size)}

	case totalPages <= window:
		pc.Around = pageCursorRange(1, totalPages, currentPage, size)

	case currentPage <= half+1:
		pc.Last = ptr(pageCursor(totalPages, currentPage, size))
		pc.Around = pageCursorRange(1, window-1, currentPage, size)

	case currentPage >= totalPages-half:
		pc.First = ptr(pageCursor(1, currentPage, size))
		pc.Around = pageCursorRange(totalPages-window+2, totalPages, currentPage, size)

	default:
		offset := (window - 3) / 2
		pc.First = ptr(pageCursor(1, currentPage, size))
		pc.Around = pageCursorRange(currentPage-offset, currentPage+offset, currentPage, size)
		pc.Last = ptr(pageCursor(totalPages, currentPage, size))
	}

	if currentPage > 1 && totalPages > 1 {
		pc.Previous = ptr(pageCursor(currentPage-1, currentPage, size))
	}
	return &pc
}

// pageCursor points at the element just before page, so that using it as
// `after` lands on the first element of that page.
func pageCursor(page, currentPage, size int) PageCursor {
	return PageCursor{
		Cursor:    OffsetToCursor((page-1)*size - 1),
		Page:      page,
		IsCurrent: page == currentPage,
	}
}

func pageCursorRange(start, end, currentPage, size int) []PageCursor {
	cursors := make([]PageCursor, 0, end-start+1)
	for page := start; page <= end; page++ {
		cursors = append(cursors, pageCursor(page, currentPage, size))
	}
	return cursors
}

func ptr[T any](v T) *T { return &v }
