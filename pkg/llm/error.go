package llm

// ErrorResponse is the JSON body the relay returns for non-streaming
// failures. Details carries the upstream's raw error body when present.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
