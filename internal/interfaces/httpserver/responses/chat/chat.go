package chat

// ModelResponse is one backend's contribution to a turn.
type ModelResponse struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

// Metadata describes the turn that produced the responses.
type Metadata struct {
	ConversationID string `json:"conversation_id"`
	MessageType    string `json:"message_type"`
}

// ChatResponse is the body of POST /v1/chat. MessageType is "multiple"
// when both backends answered, "single" otherwise.
type ChatResponse struct {
	Responses []ModelResponse `json:"responses"`
	Metadata  Metadata        `json:"metadata"`
}
