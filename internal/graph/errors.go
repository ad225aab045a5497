package graph

import (
	"context"
	"errors"

	"artmarket-gateway/internal/analytics"
	"artmarket-gateway/internal/cms"
	"artmarket-gateway/internal/logger"
	"artmarket-gateway/internal/pagination"
	"artmarket-gateway/internal/upstream"

	"go.uber.org/zap"
)

// Error codes reported in extensions.code.
const (
	CodeInvalidCursor   = "INVALID_CURSOR"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNotFound        = "NOT_FOUND"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeQueryTooDeep    = "QUERY_TOO_DEEP"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrPageTooLarge    = errors.New("page size exceeds the maximum")
)

// Error is a resolver error carrying a client-facing code. It satisfies
// graphql-go's gqlerrors.ExtendedError.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var badUserInput = []error{
	pagination.ErrFirstRequired,
	pagination.ErrNegativeFirst,
	pagination.ErrNegativeLast,
	pagination.ErrBackwardPagination,
	pagination.ErrInvalidPage,
	analytics.ErrInvalidView,
	ErrPageTooLarge,
}

// toGraphQLError classifies err for the client. Upstream failures are
// logged in full and reported without their details.
func toGraphQLError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var gqlErr *Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}

	switch {
	case errors.Is(err, pagination.ErrInvalidCursor):
		return &Error{Code: CodeInvalidCursor, Message: err.Error(), Err: err}
	case errors.Is(err, ErrUnauthenticated):
		return &Error{Code: CodeUnauthenticated, Message: err.Error(), Err: err}
	case errors.Is(err, upstream.ErrNotFound), errors.Is(err, cms.ErrNotFound):
		return &Error{Code: CodeNotFound, Message: "not found", Err: err}
	}
	for _, target := range badUserInput {
		if errors.Is(err, target) {
			return &Error{Code: CodeBadUserInput, Message: err.Error(), Err: err}
		}
	}

	logger.FromCtx(ctx).Error("resolver failed", zap.Error(err))
	return &Error{Code: CodeUpstream, Message: "upstream request failed", Err: err}
}
