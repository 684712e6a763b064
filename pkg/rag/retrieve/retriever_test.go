package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

type fakeStore struct {
	candidates []Candidate
	err        error
	gotK       int
}

func (f *fakeStore) NearestChunks(ctx context.Context, vector []float32, k int) ([]Candidate, error) {
	f.gotK = k
	if f.err != nil {
		return nil, f.err
	}
	if len(f.candidates) <= k {
		return f.candidates, nil
	}
	return f.candidates[:k], nil
}

type fakeReranker struct {
	results []RerankResult
	err     error
	calls   int
}

func (f *fakeReranker) Rerank(ctx context.Context, query string, topN int, candidates []Candidate) ([]RerankResult, error) {
	f.calls++
	return f.results, f.err
}

func makeCandidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{
			ChunkID:  int64(i + 1),
			Content:  "chunk",
			Distance: float64(i) * 0.1,
		}
	}
	return out
}

func newTestRetriever(e *fakeEmbedder, s *fakeStore, rr Reranker) *Retriever {
	return NewRetriever(e, s, rr, nil, nopLogger{}, DefaultConfig())
}

func TestRetrieveEmptyQuestionSkipsEmbedder(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(3)}
	r := newTestRetriever(embedder, store, nil)

	got, err := r.Retrieve(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, embedder.calls)
}

func TestRetrieveEmbeddingError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("provider down")}
	r := newTestRetriever(embedder, &fakeStore{}, nil)

	_, err := r.Retrieve(context.Background(), "who directed Inception", 5)
	assert.ErrorIs(t, err, ErrEmbedding)
}

func TestRetrieveEmptyVectorIsEmbeddingError(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{}}
	r := newTestRetriever(embedder, &fakeStore{}, nil)

	_, err := r.Retrieve(context.Background(), "q", 5)
	assert.ErrorIs(t, err, ErrEmbedding)
}

func TestRetrieveStoreError(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{err: errors.New("connection refused")}
	r := newTestRetriever(embedder, store, nil)

	_, err := r.Retrieve(context.Background(), "q", 5)
	assert.ErrorIs(t, err, ErrStore)
}

func TestRetrieveTimeoutClassification(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{err: context.DeadlineExceeded}
	r := newTestRetriever(embedder, store, nil)

	_, err := r.Retrieve(context.Background(), "q", 5)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrStore)
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: nil}
	r := newTestRetriever(embedder, store, nil)

	got, err := r.Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveFirstStageOverfetch(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(60)}
	r := newTestRetriever(embedder, store, nil)

	got, err := r.Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Equal(t, 25, store.gotK)
	assert.Len(t, got, 5)

	// Large limits hit the cap.
	_, err = r.Retrieve(context.Background(), "q", 20)
	require.NoError(t, err)
	assert.Equal(t, 50, store.gotK)
}

func TestRetrieveDefaultLimit(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(30)}
	r := newTestRetriever(embedder, store, nil)

	got, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestRetrieveNoRerankerKeepsDistanceOrder(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(10)}
	r := newTestRetriever(embedder, store, nil)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ChunkID)
	assert.Equal(t, int64(2), got[1].ChunkID)
	assert.Equal(t, int64(3), got[2].ChunkID)
	assert.Nil(t, got[0].RerankScore)
}

func TestRetrieveRerankerFailureFallsBack(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(10)}
	reranker := &fakeReranker{err: errors.New("503")}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, reranker.calls)

	// The fallback matches what a reranker-less pipeline produces.
	plain := newTestRetriever(embedder, store, nil)
	want, err := plain.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRetrieveRerankOrdersByScore(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(10)}
	reranker := &fakeReranker{results: []RerankResult{
		{ID: 1, RerankScore: 0.2},
		{ID: 3, RerankScore: 0.9},
		{ID: 2, RerankScore: 0.5},
	}}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ChunkID)
	assert.Equal(t, int64(2), got[1].ChunkID)
	assert.Equal(t, int64(1), got[2].ChunkID)
	require.NotNil(t, got[0].RerankScore)
	assert.Equal(t, 0.9, *got[0].RerankScore)
}

func TestRetrieveRerankTieBreaksByFirstStageOrder(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(10)}
	reranker := &fakeReranker{results: []RerankResult{
		{ID: 4, RerankScore: 0.7},
		{ID: 2, RerankScore: 0.7},
		{ID: 7, RerankScore: 0.7},
	}}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].ChunkID)
	assert.Equal(t, int64(4), got[1].ChunkID)
	assert.Equal(t, int64(7), got[2].ChunkID)
}

func TestRetrieveRerankCannotInjectCandidates(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(5)}
	reranker := &fakeReranker{results: []RerankResult{
		{ID: 2, RerankScore: 0.8},
		{ID: 999, RerankScore: 0.99},
		{ID: 1, RerankScore: 0.4},
	}}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ChunkID)
	assert.Equal(t, int64(1), got[1].ChunkID)
}

func TestRetrieveRerankAllUnknownFallsBack(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(5)}
	reranker := &fakeReranker{results: []RerankResult{
		{ID: 777, RerankScore: 0.9},
	}}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ChunkID)
	assert.Nil(t, got[0].RerankScore)
}

func TestRetrieveRerankAppliesRevisions(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: makeCandidates(3)}
	content := "revised content"
	distance := 0.42
	reranker := &fakeReranker{results: []RerankResult{
		{ID: 1, Content: &content, Distance: &distance, RerankScore: 0.6},
	}}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "revised content", got[0].Content)
	assert.Equal(t, 0.42, got[0].Distance)
}

func TestRetrieveSingleChunkCorpus(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	store := &fakeStore{candidates: []Candidate{
		{ChunkID: 1, Content: "Inception was directed by Christopher Nolan.", Distance: 0.12},
	}}
	reranker := &fakeReranker{results: []RerankResult{
		{ID: 1, RerankScore: 0.95},
	}}
	r := newTestRetriever(embedder, store, reranker)

	got, err := r.Retrieve(context.Background(), "Who directed Inception?", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ChunkID)
	assert.Contains(t, got[0].Content, "Nolan")
}
