// Package chat implements the client side of the relay exchange: a
// transcript of role-tagged turns and the streaming consumer that grows
// the latest assistant turn as fragments arrive.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/foliodev/folio/pkg/llm"
)

// State is the exchange lifecycle: Idle between exchanges, Sending from
// submission until the response opens, Streaming while fragments arrive.
type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
)

// FallbackMessage replaces the assistant turn whenever an exchange fails,
// whether before the first fragment or after several. The transcript
// never shows a half-streamed answer that looks complete.
const FallbackMessage = "Sorry, I couldn't connect right now. Please try again or use the contact form."

// Client owns a conversation transcript and drives exchanges against the
// relay's chat endpoint. At most one exchange is in flight at a time; a
// Submit while Sending or Streaming is a no-op.
type Client struct {
	endpoint   string
	httpClient *http.Client

	mu         sync.Mutex
	state      State
	transcript []llm.Message
}

// NewClient creates a client for the given chat endpoint
// (e.g., "http://localhost:8080/api/chat").
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
}

// State returns the current exchange state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transcript returns a copy of the conversation so far.
func (c *Client) Transcript() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Submit sends text as a new user turn and streams the reply into a fresh
// assistant turn, invoking onChunk (if non-nil) for every received
// fragment. Blank input and submissions while an exchange is in flight
// are no-ops. Submit blocks until the exchange completes; on any failure
// the assistant turn's content is replaced with FallbackMessage and the
// error is returned.
func (c *Client) Submit(ctx context.Context, text string, onChunk func(string)) error {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}

	// Both turns are appended before any I/O so a late failure has a
	// well-defined slot to overwrite.
	c.transcript = append(c.transcript,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: ""},
	)
	c.state = StateSending

	// Outbound body: everything except the assistant placeholder.
	outbound := make([]llm.Message, len(c.transcript)-1)
	copy(outbound, c.transcript[:len(c.transcript)-1])
	c.mu.Unlock()

	body, err := json.Marshal(llm.ChatRequest{Messages: outbound})
	if err != nil {
		c.fail()
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.fail()
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.fail()
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.fail()
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	c.setState(StateStreaming)

	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			c.appendToAssistant(chunk)
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			c.fail()
			return fmt.Errorf("read stream: %w", readErr)
		}
	}

	c.setState(StateIdle)
	return nil
}

// appendToAssistant grows the pending assistant turn with one fragment.
func (c *Client) appendToAssistant(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := len(c.transcript) - 1
	c.transcript[last].Content += chunk
}

// fail discards whatever was streamed into the assistant turn, substitutes
// the fallback message, and returns to Idle.
func (c *Client) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := len(c.transcript) - 1
	c.transcript[last].Content = FallbackMessage
	c.state = StateIdle
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}
