package events

import (
	"context"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RETRIEVAL_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to the bus. Delivery is best-effort: the emitting
// code must not depend on it succeeding.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent is the common implementation used by all concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeRetrievalCompleted = "RETRIEVAL_COMPLETED"
	TypeToolDispatched     = "TOOL_DISPATCHED"
	TypeChunkIngested      = "CHUNK_INGESTED"
	TypeChunkDeleted       = "CHUNK_DELETED"
)

// RetrievalCompleted is emitted after every retrieval pipeline run.
func RetrievalCompleted(candidateCount int, usedRerank bool) Event {
	return BaseEvent{
		Type: TypeRetrievalCompleted,
		Data: map[string]interface{}{
			"candidate_count": candidateCount,
			"used_rerank":     usedRerank,
		},
		OccurredAt: time.Now(),
	}
}

// ToolDispatched is emitted for every tool call the orchestrator dispatches.
func ToolDispatched(name, outcome string) Event {
	return BaseEvent{
		Type: TypeToolDispatched,
		Data: map[string]interface{}{
			"tool":    name,
			"outcome": outcome,
		},
		OccurredAt: time.Now(),
	}
}

// ChunkIngested is emitted when a chunk and its embedding are persisted.
func ChunkIngested(chunkID int64, contentLength int) Event {
	return BaseEvent{
		Type: TypeChunkIngested,
		Data: map[string]interface{}{
			"chunk_id":       chunkID,
			"content_length": contentLength,
		},
		OccurredAt: time.Now(),
	}
}

// ChunkDeleted is emitted when a chunk (and, by cascade, its embedding) is removed.
func ChunkDeleted(chunkID int64) Event {
	return BaseEvent{
		Type: TypeChunkDeleted,
		Data: map[string]interface{}{
			"chunk_id": chunkID,
		},
		OccurredAt: time.Now(),
	}
}
