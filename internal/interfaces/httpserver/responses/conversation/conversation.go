package conversation

// Summary is one row of GET /conversations: the public id plus a short
// preview of the opening user message.
type Summary struct {
	IDConv  string `json:"id_conv"`
	Content string `json:"content"`
}
