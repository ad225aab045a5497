package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestContext(t *testing.T) {
	t.Run("Success_InjectAndRetrieve", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "http://example.com/query", nil)
		req.Header.Set("User-Agent", "ArtsyCollector/4.2")

		ctx := WithRequest(context.Background(), req)

		assert.Same(t, req, Request(ctx))
		assert.Equal(t, "ArtsyCollector/4.2", UserAgent(ctx))
	})

	t.Run("Empty_Context", func(t *testing.T) {
		ctx := context.Background()

		assert.Nil(t, Request(ctx))
		assert.Empty(t, UserAgent(ctx))
	})
}
