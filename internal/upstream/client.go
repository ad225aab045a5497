package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"artmarket-gateway/internal/auth"
	"artmarket-gateway/internal/logger"

	"go.uber.org/zap"
)

const (
	TotalCountHeader      = "X-Total-Count"
	AccessTokenHeader     = "X-Access-Token"
	UserAccessTokenHeader = "X-User-Access-Token"

	maxErrorBody = 4 << 10
)

// Client talks JSON over HTTP to one upstream service.
type Client struct {
	service    string
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(service, baseURL, token string, timeout time.Duration) *Client {
	if token == "" {
		logger.L().Warn("upstream access token is empty", zap.String("service", service))
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Service() string { return c.service }

// Get fetches path and decodes the JSON body into out. The returned total
// is the X-Total-Count header, or -1 when the service did not send one.
func (c *Client) Get(ctx context.Context, path string, params Params, out any) (total int, err error) {
	u := c.baseURL + path
	if q := params.Encode(); q != "" {
		u += "?" + q
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", c.service),
		zap.String("path", path),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: building request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(AccessTokenHeader, c.token)
	}
	if user, ok := auth.UserFrom(ctx); ok && user.AccessToken != "" {
		req.Header.Set(UserAccessTokenHeader, user.AccessToken)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set(logger.RequestIDHeader, reqID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("upstream request failed", zap.Error(err))
		return 0, fmt.Errorf("%s: %w", c.service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("upstream returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", body),
		)
		return 0, &HTTPError{Service: c.service, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Error("failed decoding upstream response", zap.Error(err))
			return 0, fmt.Errorf("%s: decoding response: %w", c.service, err)
		}
	}

	total = -1
	if h := resp.Header.Get(TotalCountHeader); h != "" {
		n, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("%s: bad %s header %q: %w", c.service, TotalCountHeader, h, err)
		}
		total = n
	}

	log.Debug("upstream request done", zap.Int("status", resp.StatusCode), zap.Int("total", total))
	return total, nil
}

// EstimateTotal stands in for a missing total count. A full window means
// more may follow, so it claims one past the window to keep the next page
// reachable.
func EstimateTotal(total, offset, size, n int) int {
	switch {
	case total >= 0:
		return total
	case size > 0 && n >= size:
		return offset + n + 1
	default:
		return offset + n
	}
}
