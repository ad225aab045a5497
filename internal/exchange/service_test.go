package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artmarket-gateway/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Orders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "u1", q.Get("buyer_id"))
		assert.Equal(t, "user", q.Get("buyer_type"))
		assert.Equal(t, []string{"SUBMITTED", "APPROVED"}, q["states"])
		assert.Equal(t, "2", q.Get("size"))
		assert.Equal(t, "4", q.Get("offset"))
		assert.Equal(t, "created_at", q.Get("sort"))
		assert.Equal(t, "exchange-token", r.Header.Get(upstream.AccessTokenHeader))

		w.Header().Set(upstream.TotalCountHeader, "9")
		_, _ = w.Write([]byte(`[
			{"id":"o1","code":"B123","state":"SUBMITTED","buyer_total_cents":120000,"currency_code":"USD","created_at":"2024-03-01T10:00:00Z"},
			{"id":"o2","code":"B124","state":"APPROVED","created_at":"2024-03-02T10:00:00Z"}
		]`))
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient("exchange", srv.URL, "exchange-token", time.Second))

	orders, total, err := svc.Orders(context.Background(), "u1", ListOptions{
		Size:   2,
		Offset: 4,
		Sort:   "ASC",
		States: []string{"SUBMITTED", "APPROVED"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, total)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(120000), orders[0].TotalCents)
	assert.Equal(t, "B124", orders[1].Code)
}

func TestService_OrdersWithoutTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-created_at", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`[{"id":"o1"}]`))
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient("exchange", srv.URL, "t", time.Second))

	_, total, err := svc.Orders(context.Background(), "u1", ListOptions{Size: 5, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestService_OrdersFullWindowWithoutTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"o3"},{"id":"o4"}]`))
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient("exchange", srv.URL, "t", time.Second))

	orders, total, err := svc.Orders(context.Background(), "u1", ListOptions{Size: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, 5, total)
}

func TestService_OrdersError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient("exchange", srv.URL, "t", time.Second))

	orders, _, err := svc.Orders(context.Background(), "u1", ListOptions{Size: 5})
	var httpErr *upstream.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Nil(t, orders)
}
