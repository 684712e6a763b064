package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"film-assistant-be/pkg/rag/retrieve"
)

// Client calls an external cross-encoder reranking service over HTTP.
// Implements retrieve.Reranker.
type Client struct {
	endpoint string
	client   *http.Client
}

var _ retrieve.Reranker = &Client{}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type rerankCandidate struct {
	ID       int64   `json:"id"`
	Content  string  `json:"content"`
	Distance float64 `json:"distance"`
}

type rerankRequest struct {
	Query      string            `json:"query"`
	TopN       int               `json:"top_n"`
	Candidates []rerankCandidate `json:"candidates"`
}

type rerankResponse struct {
	Results []struct {
		ID          int64    `json:"id"`
		Content     *string  `json:"content"`
		Distance    *float64 `json:"distance"`
		RerankScore *float64 `json:"rerank_score"`
	} `json:"results"`
}

// Rerank posts the query and first-stage candidates and returns the refined
// ranking. Any transport failure, non-200 status, or malformed body is an
// error; the caller treats every error as "reranker unavailable".
func (c *Client) Rerank(ctx context.Context, query string, topN int, candidates []retrieve.Candidate) ([]retrieve.RerankResult, error) {
	payload := rerankRequest{
		Query:      query,
		TopN:       topN,
		Candidates: make([]rerankCandidate, len(candidates)),
	}
	for i, cand := range candidates {
		payload.Candidates[i] = rerankCandidate{
			ID:       cand.ChunkID,
			Content:  cand.Content,
			Distance: cand.Distance,
		}
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rerank error: status %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rerank response: %w", err)
	}

	var parsed rerankResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("malformed rerank response: %w", err)
	}
	if parsed.Results == nil {
		return nil, fmt.Errorf("rerank response missing results array")
	}

	results := make([]retrieve.RerankResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		score := 0.0
		if r.RerankScore != nil {
			score = *r.RerankScore
		}
		results = append(results, retrieve.RerankResult{
			ID:          r.ID,
			Content:     r.Content,
			Distance:    r.Distance,
			RerankScore: score,
		})
	}
	return results, nil
}
