package dto

type UploadChunksRequest struct {
	Chunks []string `json:"chunks" validate:"required,min=1,dive,required"`
}

type UploadChunksResponse struct {
	ChunkIds []int64 `json:"chunk_ids"`
}

type UploadDocsRequest struct {
	Docs []string `json:"docs" validate:"required,min=1,dive,required"`
}

type UploadDocsResponse struct {
	QueuedFragments int `json:"queued_fragments"`
}

type DeleteChunkResponse struct {
	Id int64 `json:"id"`
}

// PublishChunkFragmentMessage is the queue payload for one document fragment
// awaiting embedding and persistence.
type PublishChunkFragmentMessage struct {
	Content string `json:"content"`
}
