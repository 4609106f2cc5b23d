package types

// Message roles accepted on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UserPreferences struct {
	Name               string   `json:"name,omitempty"`
	Age                int      `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	CommunicationStyle string   `json:"communication_style,omitempty"`
	PreferredTopics    []string `json:"preferred_topics,omitempty"`
}

type ChatRequest struct {
	Messages        []ChatMessage    `json:"messages"`
	Section         string           `json:"section,omitempty"`
	UserPreferences *UserPreferences `json:"user_preferences,omitempty"`
	SessionID       string           `json:"sessionId,omitempty"`
	UserID          string           `json:"userId,omitempty"`
}

// LastUserMessage returns the content of the most recent user turn.
func LastUserMessage(messages []ChatMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content, true
		}
	}
	return "", false
}

// Reply sources
const (
	SourceModel         = "model"
	SourceDeflection    = "deflection"
	SourceRelief        = "relief"
	SourceClarification = "clarification"
)

// Completion mirrors the OpenAI chat completion object so clients parse
// model replies and synthesized replies the same way.
type Completion struct {
	ID                 string             `json:"id"`
	Object             string             `json:"object"`
	Created            int64              `json:"created"`
	Model              string             `json:"model"`
	Choices            []CompletionChoice `json:"choices"`
	Usage              *CompletionUsage   `json:"usage,omitempty"`
	Emotion            Emotion            `json:"emotion"`
	Source             string             `json:"source"`
	ClarificationLevel int                `json:"clarification_level,omitempty"`
	Language           string             `json:"language,omitempty"`
	SessionID          string             `json:"session_id,omitempty"`
}

type CompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type CompletionUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Text returns the first choice's content.
func (c *Completion) Text() string {
	if c == nil || len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error"`
	ErrorDetails string `json:"errorDetails,omitempty"`
}
