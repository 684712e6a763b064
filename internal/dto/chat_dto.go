package dto

import "strings"

// ChatMessagePart mirrors the part-based message shape some frontends send.
type ChatMessagePart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatMessage accepts either a flat content string or a parts array.
type ChatMessage struct {
	Role    string            `json:"role" validate:"required"`
	Content string            `json:"content"`
	Parts   []ChatMessagePart `json:"parts"`
}

// Text flattens the message to plain text.
func (m ChatMessage) Text() string {
	if m.Content != "" {
		return m.Content
	}
	var sb strings.Builder
	for _, p := range m.Parts {
		if p.Type == "" || p.Type == "text" {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1"`
}
