package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"film-assistant-be/pkg/llm"
)

// Tool capability names exposed to the model. No other capabilities exist.
const (
	NameAddResource    = "addResource"
	NameGetInformation = "getInformation"
)

// Action is the closed set of tool invocations. Loose tool-call JSON is
// decoded into exactly one of these variants at the dispatch boundary.
type Action interface {
	isAction()
}

// AddResource appends new knowledge to the corpus.
type AddResource struct {
	Content string `json:"content"`
}

// GetInformation retrieves grounding chunks for a question.
type GetInformation struct {
	Question string `json:"question"`
}

// Unknown is produced for tool names outside the defined set. The orchestrator
// converts it into an error-shaped tool result, never a runtime failure.
type Unknown struct {
	Name string
}

func (AddResource) isAction()    {}
func (GetInformation) isAction() {}
func (Unknown) isAction()        {}

// Decode turns a raw model tool call into an Action.
func Decode(call llm.ToolCall) (Action, error) {
	switch call.Name {
	case NameAddResource:
		var a AddResource
		if err := json.Unmarshal([]byte(call.Arguments), &a); err != nil {
			return nil, fmt.Errorf("invalid addResource arguments: %w", err)
		}
		if strings.TrimSpace(a.Content) == "" {
			return nil, fmt.Errorf("addResource requires non-empty content")
		}
		return a, nil
	case NameGetInformation:
		var g GetInformation
		if err := json.Unmarshal([]byte(call.Arguments), &g); err != nil {
			return nil, fmt.Errorf("invalid getInformation arguments: %w", err)
		}
		if strings.TrimSpace(g.Question) == "" {
			return nil, fmt.Errorf("getInformation requires non-empty question")
		}
		return g, nil
	default:
		return Unknown{Name: call.Name}, nil
	}
}

// Definitions returns the two-tool schema advertised to the model.
func Definitions() []llm.Tool {
	return []llm.Tool{
		{
			Name:        NameAddResource,
			Description: "Add a new piece of knowledge to the knowledge base. Use when the user states a fact worth remembering.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "The content to store in the knowledge base",
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        NameGetInformation,
			Description: "Search the knowledge base for information relevant to the user's question. Always call this before answering factual questions.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question": map[string]interface{}{
						"type":        "string",
						"description": "The question to search for",
					},
				},
				"required": []string{"question"},
			},
		},
	}
}
