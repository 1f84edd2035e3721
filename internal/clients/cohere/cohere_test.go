package cohere

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeUpstream(t *testing.T, handler http.HandlerFunc) *CohereClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewCohereClient("test-key", server.URL, "command-a-03-2025")
	require.NoError(t, err)
	return client
}

func TestGenerateContent(t *testing.T) {
	client := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "command-a-03-2025", req["model"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": "Here is your post"}},
			},
		})
	})

	text, err := client.GenerateContent(context.Background(), "write a post")
	require.NoError(t, err)
	assert.Equal(t, "Here is your post", text)
}

func TestGenerateContentFallbackOnEmptyChoices(t *testing.T) {
	client := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	text, err := client.GenerateContent(context.Background(), "write a post")
	require.NoError(t, err)
	assert.Equal(t, FallbackText, text)
}

func TestGenerateContentFallbackOnEmptyText(t *testing.T) {
	client := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": ""}},
			},
		})
	})

	text, err := client.GenerateContent(context.Background(), "write a post")
	require.NoError(t, err)
	assert.Equal(t, FallbackText, text)
}

func TestGenerateContentUpstreamError(t *testing.T) {
	client := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	})

	_, err := client.GenerateContent(context.Background(), "write a post")
	assert.Error(t, err)
}

func TestNewCohereClientRequiresKey(t *testing.T) {
	_, err := NewCohereClient("", "", "command-a-03-2025")
	assert.Error(t, err)
}
