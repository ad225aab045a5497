package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"artmarket-gateway/internal/logger"
	"artmarket-gateway/internal/metrics"
	"artmarket-gateway/internal/transport"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"go.uber.org/zap"
)

const maxRequestSize = 1 << 20 // 1MB

type Handler struct {
	schema   graphql.Schema
	maxDepth int
}

func NewHandler(schema graphql.Schema, maxDepth int) *Handler {
	return &Handler{schema: schema, maxDepth: maxDepth}
}

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log := logger.FromCtx(r.Context())

	req, err := decodeRequest(w, r)
	if err != nil {
		metrics.GraphQLRequests.WithLabelValues("rejected").Inc()
		h.writeError(w, err.Error(), "", http.StatusBadRequest)
		return
	}

	if h.maxDepth > 0 {
		if depth, ok := queryDepth(req.Query); ok && depth > h.maxDepth {
			metrics.GraphQLRequests.WithLabelValues("rejected").Inc()
			log.Warn("query too deep", zap.Int("depth", depth), zap.Int("max", h.maxDepth))
			h.writeError(w, fmt.Sprintf("query depth %d exceeds limit %d", depth, h.maxDepth), CodeQueryTooDeep, http.StatusBadRequest)
			return
		}
	}

	ctx := transport.WithRequest(r.Context(), r)
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	outcome := "ok"
	if result.HasErrors() {
		outcome = "error"
		log.Debug("graphql errors", zap.Int("count", len(result.Errors)), zap.String("operation", req.OperationName))
	}
	metrics.GraphQLRequests.WithLabelValues(outcome).Inc()

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error("failed to encode graphql response", zap.Error(err))
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*request, error) {
	var req request

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return nil, fmt.Errorf("invalid variables: %v", err)
			}
		}

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.Is(err, io.EOF):
				return nil, errors.New("request body is empty")
			case errors.As(err, &tooLarge):
				return nil, fmt.Errorf("request body exceeds %d bytes", maxRequestSize)
			default:
				return nil, fmt.Errorf("invalid JSON: %v", err)
			}
		}

	default:
		return nil, fmt.Errorf("method %s not allowed", r.Method)
	}

	if req.Query == "" {
		return nil, errors.New("query is required")
	}
	return &req, nil
}

func (h *Handler) writeError(w http.ResponseWriter, message, code string, status int) {
	formatted := gqlerrors.FormattedError{Message: message}
	if code != "" {
		formatted.Extensions = map[string]interface{}{"code": code}
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []gqlerrors.FormattedError{formatted},
	})
}
