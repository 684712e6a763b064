package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
	ChatMessageRoleTool      = "tool"

	// AssistantSystemPromptV1 forces grounded answers: the model must call a
	// tool before answering and must admit ignorance when retrieval is empty.
	AssistantSystemPromptV1 = `You are a helpful assistant that answers questions about films using a knowledge base.

RULES:

1. TOOLS FIRST
   - Before answering any factual question, call getInformation with the user's question.
   - Only answer from information returned by tool calls. Never use outside knowledge.

2. SAVING KNOWLEDGE
   - When the user states a new fact (not a question), call addResource with that fact.

3. WHEN RETRIEVAL IS EMPTY
   - If getInformation returns no relevant results, respond exactly: "` + ReplyInsufficientInformation + `"

4. RESPONSE STYLE
   - Answer directly in 1-3 sentences.
   - Do not mention tools, the knowledge base, or your process.`

	// Fixed user-facing replies. Returned verbatim so callers and tests can
	// match on them.
	ReplyResourceSaved           = "Saved."
	ReplyToolBudgetExceeded      = "Unable to provide additional tool output at this time."
	ReplyStepsExhausted          = "Unable to produce a final answer."
	ReplyModelFailure            = "Sorry, I'm having trouble responding right now. Please try again."
	ReplyInsufficientInformation = "Sorry, I don't have enough information to answer that."
	ReplyEmptyQuestion           = "Please ask a question."

	DefaultMaxSteps       = 3
	DefaultRetrievalLimit = 5
	DefaultSampleLimit    = 50
)
