package models

// Chat roles understood by the generation endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in the ordered message list sent to the
// generation endpoint.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
