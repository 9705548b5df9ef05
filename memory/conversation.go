package memory

// Role tags who authored a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Conversation is the ordered history of one interactive session.
// It has a single owner and is not safe for concurrent writers.
type Conversation struct {
	msgs []Message
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds m to the end of the history. No dedup, no cap.
func (c *Conversation) Append(m Message) {
	c.msgs = append(c.msgs, m)
}

// AppendTurn records a completed exchange: the user message, then the reply.
func (c *Conversation) AppendTurn(user, reply string) {
	c.Append(User(user))
	c.Append(Assistant(reply))
}

// Snapshot returns a copy of the history, oldest first.
// Returns nil for an empty (or nil) conversation.
func (c *Conversation) Snapshot() []Message {
	if c == nil || len(c.msgs) == 0 {
		return nil
	}
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Len reports the number of stored messages.
func (c *Conversation) Len() int {
	if c == nil {
		return 0
	}
	return len(c.msgs)
}

// Reset drops all history, as if the session had just started.
func (c *Conversation) Reset() {
	if c == nil {
		return
	}
	c.msgs = nil
}
