// Package sse decodes the upstream provider's server-sent-event style
// response body into a flat sequence of assistant text fragments.
//
// The upstream framing is line-oriented: meaningful lines carry a
// "data: " prefix followed by a JSON chat-completion chunk, and the
// literal payload "[DONE]" marks the end of the stream. Anything else
// (blank keep-alive lines, comments, malformed JSON) is skipped rather
// than treated as an error, so a single bad event can never abort an
// otherwise healthy stream.
package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/foliodev/folio/pkg/llm"
)

const (
	dataPrefix = "data: "
	doneMarker = "[DONE]"
)

// Decoder is a pull-based decoder over an upstream event stream. It is
// single-use: once Next returns io.EOF the decoder is exhausted, and any
// bytes after the sentinel are never read.
type Decoder struct {
	scanner *bufio.Scanner
	done    bool
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: bufio.NewScanner(r)}
}

// Next returns the next non-empty text fragment from the stream. It returns
// io.EOF when the sentinel is seen or the underlying stream ends, and the
// underlying reader's error if a read fails mid-stream.
func (d *Decoder) Next() (string, error) {
	if d.done {
		return "", io.EOF
	}

	for d.scanner.Scan() {
		line := d.scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		payload := strings.TrimSpace(line[len(dataPrefix):])
		if payload == doneMarker {
			d.done = true
			return "", io.EOF
		}

		var chunk llm.StreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// Malformed fragments degrade to a skip, never a failure.
			continue
		}

		if fragment := chunk.Fragment(); fragment != "" {
			return fragment, nil
		}
	}

	d.done = true
	if err := d.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
