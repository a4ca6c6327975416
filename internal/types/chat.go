package types

// Chat transcript roles
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatRequest struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// ChatReply covers both reply shapes the assistant endpoint produces.
type ChatReply struct {
	Reply   string `json:"reply"`
	Message string `json:"message"`
}
