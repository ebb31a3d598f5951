package chat

// ChatRequest is the payload for POST /v1/chat. ConversationID is empty
// for the first turn of a new conversation.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Model          string `json:"model" binding:"required"`
	Prompt         string `json:"prompt" binding:"required"`
}
