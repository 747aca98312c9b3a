package ai

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)
		assert.NotEmpty(t, req.Messages)

		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": content}},
				},
			})
			return
		}
		_, _ = w.Write([]byte(content))
	}))
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "hello there")
	defer srv.Close()

	c := NewClient(5 * time.Second)
	got, err := c.Complete(Provider{APIURL: srv.URL, APIKey: "test-key", Model: "gpt-4o-mini"},
		[]ChatMessage{{Role: "user", Content: "hi"}}, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "hello there", got)
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := newCompletionServer(t, http.StatusTooManyRequests, `{"error":{"message":"retry in 5 seconds"}}`)
	defer srv.Close()

	c := NewClient(5 * time.Second)
	_, err := c.Complete(Provider{APIURL: srv.URL, APIKey: "test-key", Model: "gpt-4o-mini"},
		[]ChatMessage{{Role: "user", Content: "hi"}}, 0.2)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)

	limited, retry := IsRateLimited(err)
	assert.True(t, limited)
	assert.Equal(t, 5, retry)
}

func TestCompleteUnconfiguredProvider(t *testing.T) {
	c := NewClient(time.Second)
	_, err := c.Complete(Provider{}, []ChatMessage{{Role: "user", Content: "hi"}}, 0)
	assert.Error(t, err)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	_, err := c.Complete(Provider{APIURL: srv.URL, APIKey: "test-key", Model: "m"},
		[]ChatMessage{{Role: "user", Content: "hi"}}, 0)
	assert.Error(t, err)
}
