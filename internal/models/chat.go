package models

// Chat roles as the generative API names them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of a coach conversation.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Citation is a web source the coach used when search grounding was on.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CoachReply is a free-text answer with optional sources.
type CoachReply struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}
