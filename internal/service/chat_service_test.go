package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"film-assistant-be/internal/constant"
	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/pkg/serverutils"
	"film-assistant-be/pkg/llm"
	"film-assistant-be/pkg/rag/orchestrate"
	"film-assistant-be/pkg/rag/retrieve"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// echoModel answers with the last user message, prefixed.
type echoModel struct {
	lastHistory []llm.Message
}

func (m *echoModel) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Response, error) {
	m.lastHistory = history
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == constant.ChatMessageRoleUser {
			return &llm.Response{Content: "echo: " + history[i].Content}, nil
		}
	}
	return &llm.Response{Content: "echo:"}, nil
}

type noRetriever struct{}

func (noRetriever) Retrieve(ctx context.Context, question string, limit int) ([]retrieve.Candidate, error) {
	return nil, nil
}

type noIngestor struct{}

func (noIngestor) Ingest(ctx context.Context, content string) (int64, error) {
	return 0, nil
}

func newEchoChatService(model *echoModel) IChatService {
	orchestrator := orchestrate.NewOrchestrator(model, noRetriever{}, noIngestor{}, nil, nopLogger{}, orchestrate.DefaultConfig())
	return NewChatService(orchestrator, nopLogger{})
}

func TestRespondFlattensPartsMessages(t *testing.T) {
	model := &echoModel{}
	svc := newEchoChatService(model)

	reply, err := svc.Respond(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "user", Parts: []dto.ChatMessagePart{
				{Type: "text", Text: "Who directed "},
				{Type: "text", Text: "Inception?"},
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "echo: Who directed Inception?", reply)
}

func TestRespondAcceptsFlatContent(t *testing.T) {
	svc := newEchoChatService(&echoModel{})

	reply, err := svc.Respond(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "user", Content: "hello"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", reply)
}

func TestRespondMapsModelRoleToAssistant(t *testing.T) {
	model := &echoModel{}
	svc := newEchoChatService(model)

	_, err := svc.Respond(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "user", Content: "first"},
			{Role: "model", Content: "answer"},
			{Role: "user", Content: "second"},
		},
	})
	require.NoError(t, err)

	// history = system + 3 turns
	require.Len(t, model.lastHistory, 4)
	assert.Equal(t, constant.ChatMessageRoleAssistant, model.lastHistory[2].Role)
}

func TestRespondEmptyLastUserMessage(t *testing.T) {
	svc := newEchoChatService(&echoModel{})

	_, err := svc.Respond(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "user", Content: "   "},
		},
	})

	var validationErr *serverutils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, constant.ReplyEmptyQuestion, validationErr.Message)
}

func TestRespondHistoryNotEndingWithUser(t *testing.T) {
	svc := newEchoChatService(&echoModel{})

	_, err := svc.Respond(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})

	var validationErr *serverutils.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
