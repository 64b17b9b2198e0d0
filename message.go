package ollama

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn. Role is one of the Role constants by
// convention; it is passed to the server as-is, not validated.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
