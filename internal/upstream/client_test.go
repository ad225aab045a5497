package upstream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artmarket-gateway/internal/auth"
	"artmarket-gateway/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) (*http.Response, error)

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type item struct {
	ID string `json:"id"`
}

func TestClient_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/artist/a1/shows", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("size"))
			assert.Equal(t, "true", r.URL.Query().Get("total_count"))
			assert.Equal(t, "-start_at", r.URL.Query().Get("sort"))
			assert.Equal(t, "app-token", r.Header.Get(AccessTokenHeader))
			assert.Equal(t, "user-token", r.Header.Get(UserAccessTokenHeader))
			assert.Equal(t, "req-1", r.Header.Get(logger.RequestIDHeader))

			w.Header().Set(TotalCountHeader, "12")
			_, _ = w.Write([]byte(`[{"id":"s1"},{"id":"s2"}]`))
		}))
		defer srv.Close()

		c := NewClient("gravity", srv.URL+"/", "app-token", time.Second)
		ctx := auth.WithUser(context.Background(), &auth.User{ID: "u1", AccessToken: "user-token"})
		ctx = logger.WithRequestID(ctx, "req-1")

		var out []item
		total, err := c.Get(ctx, "/api/v1/artist/a1/shows", Params{"size": 5, "totalCount": true, "sort": "-start_at"}, &out)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Equal(t, []item{{ID: "s1"}, {ID: "s2"}}, out)
	})

	t.Run("No Total Header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get(UserAccessTokenHeader))
			_, _ = w.Write([]byte(`{"id":"a1"}`))
		}))
		defer srv.Close()

		var out item
		total, err := NewClient("gravity", srv.URL, "t", time.Second).Get(context.Background(), "/artist/a1", nil, &out)
		require.NoError(t, err)
		assert.Equal(t, -1, total)
		assert.Equal(t, "a1", out.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"Artist Not Found"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewClient("gravity", srv.URL, "t", time.Second).Get(context.Background(), "/artist/nope", nil, nil)
		assert.ErrorIs(t, err, ErrNotFound)

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "gravity", httpErr.Service)
		assert.True(t, httpErr.Permanent())
		assert.Contains(t, httpErr.Body, "Artist Not Found")
	})

	t.Run("Server Error Is Not Permanent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewClient("exchange", srv.URL, "t", time.Second).Get(context.Background(), "/orders", nil, nil)

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.False(t, httpErr.Permanent())
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("Transport Error", func(t *testing.T) {
		c := NewClient("gravity", "http://gravity.invalid", "t", time.Second)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := c.Get(context.Background(), "/artist/a1", nil, nil)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Bad JSON", func(t *testing.T) {
		c := NewClient("gravity", "http://gravity.invalid", "t", time.Second)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{not json`)),
				Header:     make(http.Header),
			}, nil
		})

		var out item
		_, err := c.Get(context.Background(), "/artist/a1", nil, &out)
		assert.ErrorContains(t, err, "decoding response")
	})

	t.Run("Bad Total Header", func(t *testing.T) {
		c := NewClient("gravity", "http://gravity.invalid", "t", time.Second)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) (*http.Response, error) {
			h := make(http.Header)
			h.Set(TotalCountHeader, "many")
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`[]`)),
				Header:     h,
			}, nil
		})

		_, err := c.Get(context.Background(), "/shows", nil, &[]item{})
		assert.ErrorContains(t, err, TotalCountHeader)
	})
}

func TestParams(t *testing.T) {
	p := Params{
		"artistId":   "a1",
		"totalCount": true,
		"size":       10,
		"empty":      "",
		"missing":    nil,
		"states":     []string{"SUBMITTED", "APPROVED"},
	}

	v := p.Values()
	assert.Equal(t, "a1", v.Get("artist_id"))
	assert.Equal(t, "true", v.Get("total_count"))
	assert.Equal(t, "10", v.Get("size"))
	assert.Equal(t, []string{"SUBMITTED", "APPROVED"}, v["states"])
	assert.NotContains(t, v, "empty")
	assert.NotContains(t, v, "missing")

	assert.Equal(t, "", Params(nil).Encode())
}

func TestEstimateTotal(t *testing.T) {
	tests := []struct {
		name                    string
		total, offset, size, n int
		want                    int
	}{
		{"Header Sent", 42, 10, 5, 5, 42},
		{"Short Window", -1, 4, 3, 1, 5},
		{"Full Window", -1, 0, 2, 2, 3},
		{"Full Window With Offset", -1, 6, 3, 3, 10},
		{"Empty", -1, 8, 3, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTotal(tt.total, tt.offset, tt.size, tt.n))
		})
	}
}
