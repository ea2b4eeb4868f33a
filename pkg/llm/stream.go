package llm

// StreamChunk is one decoded event from the upstream's incremental response.
type StreamChunk struct {
	Choices []StreamChoice `json:"choices"`
}

// StreamChoice holds one candidate's incremental delta.
type StreamChoice struct {
	Delta Delta `json:"delta"`
}

// Delta carries the text fragment for a single event. Content is empty for
// role-announcement and keep-alive events.
type Delta struct {
	Content string `json:"content,omitempty"`
}

// Fragment returns the incremental text carried by the chunk, or the empty
// string when the event carries none.
func (c *StreamChunk) Fragment() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}
