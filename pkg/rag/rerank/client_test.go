package rerank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"film-assistant-be/pkg/rag/retrieve"
)

func testCandidates() []retrieve.Candidate {
	return []retrieve.Candidate{
		{ChunkID: 1, Content: "first", Distance: 0.1},
		{ChunkID: 2, Content: "second", Distance: 0.2},
	}
}

func TestRerankSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "who directed Inception", req["query"])
		assert.Equal(t, float64(2), req["top_n"])
		assert.Len(t, req["candidates"], 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":2,"rerank_score":0.9},{"id":1,"content":"revised","rerank_score":0.3}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	results, err := client.Rerank(context.Background(), "who directed Inception", 2, testCandidates())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, int64(2), results[0].ID)
	assert.Equal(t, 0.9, results[0].RerankScore)
	assert.Nil(t, results[0].Content)

	assert.Equal(t, int64(1), results[1].ID)
	require.NotNil(t, results[1].Content)
	assert.Equal(t, "revised", *results[1].Content)
}

func TestRerankMissingScoreDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"id":1}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	results, err := client.Rerank(context.Background(), "q", 1, testCandidates())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].RerankScore)
}

func TestRerankNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Rerank(context.Background(), "q", 2, testCandidates())
	assert.Error(t, err)
}

func TestRerankMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Rerank(context.Background(), "q", 2, testCandidates())
	assert.Error(t, err)
}

func TestRerankMissingResultsArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scores":[0.1,0.2]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Rerank(context.Background(), "q", 2, testCandidates())
	assert.Error(t, err)
}

func TestRerankUnreachableEndpoint(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Rerank(context.Background(), "q", 2, testCandidates())
	assert.Error(t, err)
}
