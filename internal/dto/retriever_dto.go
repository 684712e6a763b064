package dto

// Eval-facing payloads. External benchmark jobs call these endpoints to pull
// random samples and to exercise the retrieval pipeline directly.

type SamplesRequest struct {
	Limit int `json:"limit"`
}

type SampleChunk struct {
	Id      int64  `json:"id"`
	Content string `json:"content"`
}

type SamplesResponse struct {
	Items []SampleChunk `json:"items"`
}

type RetrieverRequest struct {
	Question string `json:"question" validate:"required"`
	TopK     int    `json:"topK"`
}

type RetrieverResult struct {
	Id          int64    `json:"id"`
	Content     string   `json:"content"`
	Distance    float64  `json:"distance"`
	RerankScore *float64 `json:"rerank_score,omitempty"`
}

type RetrieverResponse struct {
	Results []RetrieverResult `json:"results"`
}
