package orchestrate

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"film-assistant-be/internal/constant"
	"film-assistant-be/internal/pkg/logger"
	"film-assistant-be/pkg/events"
	"film-assistant-be/pkg/llm"
	"film-assistant-be/pkg/rag/retrieve"
	"film-assistant-be/pkg/rag/tool"
)

// State is the conversation-turn lifecycle. Every turn ends in one of the
// terminal states: FINAL, REJECTED, EXHAUSTED, or MODEL_FAILURE.
type State string

const (
	StateAwaitingModel State = "AWAITING_MODEL"
	StateToolRequested State = "TOOL_REQUESTED"
	StateToolExecuted  State = "TOOL_EXECUTED"
	StateFinal         State = "FINAL"
	StateRejected      State = "REJECTED"
	StateExhausted     State = "EXHAUSTED"
	StateModelFailure  State = "MODEL_FAILURE"
)

// Ingestor persists a new piece of knowledge and returns its chunk id.
type Ingestor interface {
	Ingest(ctx context.Context, content string) (int64, error)
}

// Retriever is the search capability the getInformation tool dispatches to.
type Retriever interface {
	Retrieve(ctx context.Context, question string, limit int) ([]retrieve.Candidate, error)
}

// Config encapsulates turn-level parameters.
type Config struct {
	MaxSteps         int
	RetrievalLimit   int
	RetrievalTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxSteps:         constant.DefaultMaxSteps,
		RetrievalLimit:   constant.DefaultRetrievalLimit,
		RetrievalTimeout: 15 * time.Second,
	}
}

// Result is the outcome of one conversation turn.
type Result struct {
	Reply string
	State State
	Steps int
}

// Orchestrator drives the model/tool loop for a single turn. At most one tool
// dispatch is allowed per turn; once a tool has run, the model is asked to
// answer in plain text and further tool requests are refused.
type Orchestrator struct {
	model     llm.LLMProvider
	retriever Retriever
	ingestor  Ingestor
	publisher events.Publisher
	logger    logger.ILogger
	config    Config
}

func NewOrchestrator(
	model llm.LLMProvider,
	retriever Retriever,
	ingestor Ingestor,
	publisher events.Publisher,
	log logger.ILogger,
	config Config,
) *Orchestrator {
	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultConfig().MaxSteps
	}
	if config.RetrievalLimit <= 0 {
		config.RetrievalLimit = DefaultConfig().RetrievalLimit
	}
	if config.RetrievalTimeout <= 0 {
		config.RetrievalTimeout = DefaultConfig().RetrievalTimeout
	}
	return &Orchestrator{
		model:     model,
		retriever: retriever,
		ingestor:  ingestor,
		publisher: publisher,
		logger:    log,
		config:    config,
	}
}

// toolResult is the JSON payload fed back to the model after a dispatch.
// Failures are delivered in the same shape so the model can respond
// gracefully instead of the turn aborting.
type toolResult struct {
	OK      bool                 `json:"ok"`
	Error   string               `json:"error,omitempty"`
	Results []retrieve.Candidate `json:"results,omitempty"`
}

func (t toolResult) encode() string {
	b, err := json.Marshal(t)
	if err != nil {
		return `{"ok":false,"error":"internal encoding failure"}`
	}
	return string(b)
}

// Respond runs one turn against the provided conversation history. The
// history must end with the user message being answered. The returned error
// is non-nil only for programming mistakes; model and tool failures resolve
// to a Result with a fixed user-safe reply.
func (o *Orchestrator) Respond(ctx context.Context, history []llm.Message) (*Result, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.AssistantSystemPromptV1,
	})
	messages = append(messages, history...)

	toolUsed := false

	for step := 1; step <= o.config.MaxSteps; step++ {
		choice := llm.ToolChoiceAuto
		if toolUsed {
			choice = llm.ToolChoiceNone
		}

		resp, err := o.model.Chat(ctx, messages,
			llm.WithTools(tool.Definitions()),
			llm.WithToolChoice(choice),
		)
		if err != nil {
			o.logger.Error("Orchestrator", "Model call failed", map[string]interface{}{
				"step":  step,
				"error": err.Error(),
			})
			return &Result{Reply: constant.ReplyModelFailure, State: StateModelFailure, Steps: step}, nil
		}

		if len(resp.ToolCalls) == 0 {
			reply := strings.TrimSpace(resp.Content)
			if reply == "" {
				reply = constant.ReplyInsufficientInformation
			}
			return &Result{Reply: reply, State: StateFinal, Steps: step}, nil
		}

		if toolUsed {
			// The single tool turn is spent; refuse rather than loop.
			return &Result{Reply: constant.ReplyToolBudgetExceeded, State: StateRejected, Steps: step}, nil
		}
		if len(resp.ToolCalls) > 1 {
			o.logger.Warn("Orchestrator", "Model requested multiple tools in one response", map[string]interface{}{
				"requested": len(resp.ToolCalls),
			})
		}
		// All calls in one response count as a single logical tool step.
		toolUsed = true

		messages = append(messages, llm.Message{
			Role:      constant.ChatMessageRoleAssistant,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			result, done := o.dispatch(ctx, call)
			if done != nil {
				done.Steps = step
				return done, nil
			}
			messages = append(messages, llm.Message{
				Role:       constant.ChatMessageRoleTool,
				Content:    result.encode(),
				ToolCallID: call.ID,
			})
		}
	}

	o.logger.Warn("Orchestrator", "Step budget exhausted without a final answer", map[string]interface{}{
		"max_steps": o.config.MaxSteps,
	})
	return &Result{Reply: constant.ReplyStepsExhausted, State: StateExhausted, Steps: o.config.MaxSteps}, nil
}

// dispatch executes one tool call. It returns either a toolResult to feed
// back to the model, or a terminal Result that short-circuits the turn.
func (o *Orchestrator) dispatch(ctx context.Context, call llm.ToolCall) (toolResult, *Result) {
	action, err := tool.Decode(call)
	if err != nil {
		o.emit(ctx, events.ToolDispatched(call.Name, "invalid_arguments"))
		return toolResult{OK: false, Error: err.Error()}, nil
	}

	switch a := action.(type) {
	case tool.AddResource:
		chunkID, err := o.ingestor.Ingest(ctx, a.Content)
		if err != nil {
			o.logger.Error("Orchestrator", "Resource ingestion failed", map[string]interface{}{
				"error": err.Error(),
			})
			o.emit(ctx, events.ToolDispatched(tool.NameAddResource, "error"))
			return toolResult{OK: false, Error: "failed to save the resource"}, nil
		}
		o.logger.Info("Orchestrator", "Resource saved", map[string]interface{}{
			"chunk_id": chunkID,
		})
		o.emit(ctx, events.ToolDispatched(tool.NameAddResource, "ok"))
		// A successful save needs no further model round-trip.
		return toolResult{}, &Result{Reply: constant.ReplyResourceSaved, State: StateFinal}

	case tool.GetInformation:
		rctx, cancel := context.WithTimeout(ctx, o.config.RetrievalTimeout)
		defer cancel()

		candidates, err := o.retriever.Retrieve(rctx, a.Question, o.config.RetrievalLimit)
		if err != nil {
			o.logger.Error("Orchestrator", "Retrieval failed", map[string]interface{}{
				"error": err.Error(),
			})
			o.emit(ctx, events.ToolDispatched(tool.NameGetInformation, "error"))
			return toolResult{OK: false, Error: "information lookup failed"}, nil
		}
		if candidates == nil {
			candidates = []retrieve.Candidate{}
		}
		o.emit(ctx, events.ToolDispatched(tool.NameGetInformation, "ok"))
		return toolResult{OK: true, Results: candidates}, nil

	case tool.Unknown:
		o.logger.Warn("Orchestrator", "Model requested an unknown tool", map[string]interface{}{
			"tool": a.Name,
		})
		o.emit(ctx, events.ToolDispatched(a.Name, "unknown_tool"))
		return toolResult{OK: false, Error: "Unknown tool: " + a.Name}, nil
	}

	return toolResult{OK: false, Error: "unhandled tool action"}, nil
}

func (o *Orchestrator) emit(ctx context.Context, event events.Event) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(ctx, event); err != nil {
		o.logger.Debug("Orchestrator", "Failed to publish telemetry event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
