package llm

// ChatRequest is the body a client POSTs to the relay: the full visible
// transcript, excluding the system prompt (the relay injects that).
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// UpstreamRequest is the chat-completion request the relay forwards to the
// upstream provider (OpenAI-compatible). Stream is always true; the relay
// only speaks incremental delivery.
type UpstreamRequest struct {
	Model    string    `json:"model"`
	Stream   bool      `json:"stream"`
	Messages []Message `json:"messages"` // [system, ...client transcript]
}
