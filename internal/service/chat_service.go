package service

import (
	"context"
	"strings"

	"film-assistant-be/internal/constant"
	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/pkg/logger"
	"film-assistant-be/internal/pkg/serverutils"
	"film-assistant-be/pkg/llm"
	"film-assistant-be/pkg/rag/orchestrate"
)

type IChatService interface {
	// Respond runs one conversation turn and returns the plain-text reply.
	Respond(ctx context.Context, req *dto.ChatRequest) (string, error)
}

type chatService struct {
	orchestrator *orchestrate.Orchestrator
	logger       logger.ILogger
}

func NewChatService(orchestrator *orchestrate.Orchestrator, log logger.ILogger) IChatService {
	return &chatService{
		orchestrator: orchestrator,
		logger:       log,
	}
}

func (c *chatService) Respond(ctx context.Context, req *dto.ChatRequest) (string, error) {
	history := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := m.Role
		if role == "model" {
			role = constant.ChatMessageRoleAssistant
		}
		history = append(history, llm.Message{
			Role:    role,
			Content: m.Text(),
		})
	}

	// Input problems are rejected here, before any model or store call.
	if len(history) == 0 || history[len(history)-1].Role != constant.ChatMessageRoleUser {
		return "", &serverutils.ValidationError{Message: constant.ReplyEmptyQuestion}
	}
	if strings.TrimSpace(history[len(history)-1].Content) == "" {
		return "", &serverutils.ValidationError{Message: constant.ReplyEmptyQuestion}
	}

	result, err := c.orchestrator.Respond(ctx, history)
	if err != nil {
		return "", err
	}

	c.logger.Info("ChatService", "Turn completed", map[string]interface{}{
		"state": string(result.State),
		"steps": result.Steps,
	})
	return result.Reply, nil
}
