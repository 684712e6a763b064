package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"film-assistant-be/internal/config"
	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/repository/contract"
	"film-assistant-be/internal/repository/specification"
	"film-assistant-be/internal/repository/unitofwork"
)

// memStore is shared state behind the in-memory unit of work.
type memStore struct {
	chunks     map[int64]*entity.Chunk
	embeddings map[int64]*entity.ChunkEmbedding // keyed by chunk id
	nextID     int64

	failEmbeddingCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		chunks:     make(map[int64]*entity.Chunk),
		embeddings: make(map[int64]*entity.ChunkEmbedding),
	}
}

type memUow struct {
	store   *memStore
	pending []func()
	inTx    bool
}

func (u *memUow) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *memUow) Commit() error {
	for _, apply := range u.pending {
		apply()
	}
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *memUow) Rollback() error {
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *memUow) ChunkRepository() contract.ChunkRepository {
	return &memChunkRepo{uow: u}
}

func (u *memUow) ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository {
	return &memEmbeddingRepo{uow: u}
}

func (u *memUow) TelemetryEventRepository() contract.TelemetryEventRepository {
	return nil
}

type memFactory struct {
	store *memStore
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

type memChunkRepo struct {
	uow *memUow
}

func (r *memChunkRepo) Create(ctx context.Context, chunk *entity.Chunk) error {
	r.uow.store.nextID++
	chunk.Id = r.uow.store.nextID
	copied := *chunk
	r.uow.pending = append(r.uow.pending, func() {
		r.uow.store.chunks[copied.Id] = &copied
	})
	return nil
}

func (r *memChunkRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.uow.store.chunks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.uow.pending = append(r.uow.pending, func() {
		delete(r.uow.store.chunks, id)
	})
	return nil
}

func (r *memChunkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	return nil, nil
}

func (r *memChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var out []*entity.Chunk
	for _, c := range r.uow.store.chunks {
		out = append(out, c)
	}
	return out, nil
}

func (r *memChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.chunks)), nil
}

func (r *memChunkRepo) Sample(ctx context.Context, n int) ([]*entity.Chunk, error) {
	var out []*entity.Chunk
	for _, c := range r.uow.store.chunks {
		if len(out) >= n {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

type memEmbeddingRepo struct {
	uow *memUow
}

func (r *memEmbeddingRepo) Create(ctx context.Context, embedding *entity.ChunkEmbedding) error {
	if r.uow.store.failEmbeddingCreate {
		return errors.New("embedding insert failed")
	}
	copied := *embedding
	r.uow.pending = append(r.uow.pending, func() {
		r.uow.store.embeddings[copied.ChunkId] = &copied
	})
	return nil
}

func (r *memEmbeddingRepo) DeleteByChunkId(ctx context.Context, chunkId int64) error {
	r.uow.pending = append(r.uow.pending, func() {
		delete(r.uow.store.embeddings, chunkId)
	})
	return nil
}

func (r *memEmbeddingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkEmbedding, error) {
	return nil, nil
}

func (r *memEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.embeddings)), nil
}

func (r *memEmbeddingRepo) SearchNearest(ctx context.Context, vector []float32, k int) ([]*contract.ScoredChunk, error) {
	return nil, nil
}

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2}, nil
}

type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestChunkService(store *memStore, embedder *stubEmbedder, publisher IPublisherService) IChunkService {
	return NewChunkService(
		&memFactory{store: store},
		embedder,
		nil,
		publisher,
		nil,
		config.IngestionConfig{ChunkSize: 50, ChunkOverlap: 10},
		nopLogger{},
	)
}

func TestIngestPersistsChunkAndEmbedding(t *testing.T) {
	store := newMemStore()
	svc := newTestChunkService(store, &stubEmbedder{}, nil)

	id, err := svc.Ingest(context.Background(), "Inception was released in 2010.")
	require.NoError(t, err)
	require.NotZero(t, id)

	require.Contains(t, store.chunks, id)
	require.Contains(t, store.embeddings, id)
	assert.Equal(t, "Inception was released in 2010.", store.chunks[id].Content)
}

func TestIngestEmptyContent(t *testing.T) {
	store := newMemStore()
	embedder := &stubEmbedder{}
	svc := newTestChunkService(store, embedder, nil)

	_, err := svc.Ingest(context.Background(), "   ")
	assert.Error(t, err)
	assert.Zero(t, embedder.calls)
}

func TestIngestEmbeddingFailureLeavesNoChunk(t *testing.T) {
	store := newMemStore()
	embedder := &stubEmbedder{err: errors.New("provider down")}
	svc := newTestChunkService(store, embedder, nil)

	_, err := svc.Ingest(context.Background(), "some fact")
	assert.Error(t, err)
	assert.Empty(t, store.chunks)
}

func TestIngestEmbeddingInsertFailureRollsBack(t *testing.T) {
	store := newMemStore()
	store.failEmbeddingCreate = true
	svc := newTestChunkService(store, &stubEmbedder{}, nil)

	_, err := svc.Ingest(context.Background(), "some fact")
	assert.Error(t, err)
	assert.Empty(t, store.chunks)
	assert.Empty(t, store.embeddings)
}

func TestUploadChunks(t *testing.T) {
	store := newMemStore()
	svc := newTestChunkService(store, &stubEmbedder{}, nil)

	res, err := svc.UploadChunks(context.Background(), &dto.UploadChunksRequest{
		Chunks: []string{"first fact", "second fact"},
	})
	require.NoError(t, err)
	assert.Len(t, res.ChunkIds, 2)
	assert.Len(t, store.chunks, 2)
}

func TestUploadDocsQueuesFragments(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	svc := newTestChunkService(store, &stubEmbedder{}, publisher)

	doc := strings.Repeat("some film trivia sentence. ", 10)
	res, err := svc.UploadDocs(context.Background(), &dto.UploadDocsRequest{Docs: []string{doc}})
	require.NoError(t, err)
	assert.Greater(t, res.QueuedFragments, 1)
	assert.Len(t, publisher.payloads, res.QueuedFragments)

	// Nothing is persisted until the consumer drains the queue.
	assert.Empty(t, store.chunks)

	var msg dto.PublishChunkFragmentMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.NotEmpty(t, msg.Content)
}

func TestDeleteRemovesChunkAndEmbedding(t *testing.T) {
	store := newMemStore()
	svc := newTestChunkService(store, &stubEmbedder{}, nil)

	id, err := svc.Ingest(context.Background(), "fact to delete")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, store.chunks)
	assert.Empty(t, store.embeddings)
}

func TestDeleteMissingChunk(t *testing.T) {
	store := newMemStore()
	svc := newTestChunkService(store, &stubEmbedder{}, nil)

	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSamples(t *testing.T) {
	store := newMemStore()
	svc := newTestChunkService(store, &stubEmbedder{}, nil)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.Ingest(context.Background(), content)
		require.NoError(t, err)
	}

	res, err := svc.Samples(context.Background(), &dto.SamplesRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}
