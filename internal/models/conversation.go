package models

// ConversationTurn is one input/output exchange with the generative model.
type ConversationTurn struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ContextInitializedTurn is the first turn of every conversation history.
var ContextInitializedTurn = ConversationTurn{Input: "static_context_saved", Output: "true"}
