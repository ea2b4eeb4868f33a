// Package llm provides the wire representations exchanged between the chat
// client, the relay, and the upstream chat-completion provider.
package llm

// Message roles. The system role is only ever injected by the relay;
// clients send user and assistant turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}
