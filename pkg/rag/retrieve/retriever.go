package retrieve

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"film-assistant-be/internal/pkg/logger"
	"film-assistant-be/pkg/embedding"
	"film-assistant-be/pkg/events"
)

// Error classes surfaced by the retrieval pipeline. A reranker failure is
// deliberately NOT one of them: reranking degrades to first-stage order.
var (
	ErrEmbedding = errors.New("query embedding unavailable")
	ErrStore     = errors.New("chunk store query failed")
	ErrTimeout   = errors.New("retrieval timed out")
)

// Candidate is one retrieval result. Distance is the embedding space's native
// metric (lower = more similar). RerankScore, when present, is on an
// independent scale where higher = more relevant.
type Candidate struct {
	ChunkID     int64    `json:"id"`
	Content     string   `json:"content"`
	Distance    float64  `json:"distance"`
	RerankScore *float64 `json:"rerank_score,omitempty"`
}

// Store is the nearest-neighbor capability of the chunk store.
type Store interface {
	NearestChunks(ctx context.Context, vector []float32, k int) ([]Candidate, error)
}

// RerankResult is one entry of a reranker response. Content and Distance are
// optional revisions of the submitted candidate.
type RerankResult struct {
	ID          int64
	Content     *string
	Distance    *float64
	RerankScore float64
}

// Reranker refines the ranking of a candidate set.
type Reranker interface {
	Rerank(ctx context.Context, query string, topN int, candidates []Candidate) ([]RerankResult, error)
}

// Config encapsulates retrieval parameters.
type Config struct {
	DefaultLimit         int
	FirstStageMultiplier int
	FirstStageCap        int
}

// DefaultConfig returns the default retrieval configuration. The multiplier
// and cap are tuning heuristics, not invariants.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:         5,
		FirstStageMultiplier: 5,
		FirstStageCap:        50,
	}
}

// Retriever runs the two-stage search: embed the question, over-fetch nearest
// chunks by distance, optionally rerank, truncate to the requested limit.
type Retriever struct {
	embedder  embedding.EmbeddingProvider
	store     Store
	reranker  Reranker // nil when no reranker endpoint is configured
	publisher events.Publisher
	logger    logger.ILogger
	config    Config
}

func NewRetriever(
	embedder embedding.EmbeddingProvider,
	store Store,
	reranker Reranker,
	publisher events.Publisher,
	log logger.ILogger,
	config Config,
) *Retriever {
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if config.FirstStageMultiplier <= 0 {
		config.FirstStageMultiplier = DefaultConfig().FirstStageMultiplier
	}
	if config.FirstStageCap <= 0 {
		config.FirstStageCap = DefaultConfig().FirstStageCap
	}
	return &Retriever{
		embedder:  embedder,
		store:     store,
		reranker:  reranker,
		publisher: publisher,
		logger:    log,
		config:    config,
	}
}

// Retrieve returns at most limit candidates for the question, most relevant
// first. An empty question short-circuits to an empty result without touching
// the embedder. The returned order is final: nothing reorders it afterwards.
func (r *Retriever) Retrieve(ctx context.Context, question string, limit int) ([]Candidate, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = r.config.DefaultLimit
	}

	vector, err := r.embedder.Generate(ctx, question)
	if err != nil {
		return nil, r.classify(ErrEmbedding, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: provider returned a zero-length vector", ErrEmbedding)
	}

	firstStage := clamp(limit*r.config.FirstStageMultiplier, limit, r.config.FirstStageCap)

	candidates, err := r.store.NearestChunks(ctx, vector, firstStage)
	if err != nil {
		return nil, r.classify(ErrStore, err)
	}
	if len(candidates) == 0 {
		r.emit(ctx, events.RetrievalCompleted(0, false))
		return nil, nil
	}

	final, usedRerank := r.refine(ctx, question, limit, candidates)
	r.emit(ctx, events.RetrievalCompleted(len(final), usedRerank))
	return final, nil
}

// refine applies the optional second-stage rerank. Every failure mode falls
// back to the first-stage distance order; reranking is a quality enhancement,
// never a correctness requirement.
func (r *Retriever) refine(ctx context.Context, question string, limit int, candidates []Candidate) ([]Candidate, bool) {
	if r.reranker == nil {
		return truncate(candidates, limit), false
	}

	results, err := r.reranker.Rerank(ctx, question, limit, candidates)
	if err != nil {
		r.logger.Warn("Retriever", "Reranker unavailable, falling back to first-stage order", map[string]interface{}{
			"error": err.Error(),
		})
		return truncate(candidates, limit), false
	}

	indexByID := make(map[int64]int, len(candidates))
	for i, c := range candidates {
		indexByID[c.ChunkID] = i
	}

	type ranked struct {
		candidate Candidate
		origIndex int
	}
	var merged []ranked

	for _, res := range results {
		idx, ok := indexByID[res.ID]
		if !ok {
			// The reranker must not invent candidates.
			r.logger.Warn("Retriever", "Dropping reranked result with unknown id", map[string]interface{}{
				"id": res.ID,
			})
			continue
		}
		c := candidates[idx]
		if res.Content != nil {
			c.Content = *res.Content
		}
		if res.Distance != nil {
			c.Distance = *res.Distance
		}
		score := res.RerankScore
		c.RerankScore = &score
		merged = append(merged, ranked{candidate: c, origIndex: idx})
	}

	if len(merged) == 0 {
		r.logger.Warn("Retriever", "Rerank merge produced no usable results, falling back", nil)
		return truncate(candidates, limit), false
	}

	sort.SliceStable(merged, func(i, j int) bool {
		si, sj := *merged[i].candidate.RerankScore, *merged[j].candidate.RerankScore
		if si != sj {
			return si > sj
		}
		return merged[i].origIndex < merged[j].origIndex
	})

	out := make([]Candidate, 0, len(merged))
	for _, m := range merged {
		out = append(out, m.candidate)
	}
	return truncate(out, limit), true
}

func (r *Retriever) classify(class error, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", class, err)
}

func (r *Retriever) emit(ctx context.Context, event events.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Debug("Retriever", "Failed to publish telemetry event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func truncate(candidates []Candidate, limit int) []Candidate {
	if len(candidates) <= limit {
		return candidates
	}
	return candidates[:limit]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
