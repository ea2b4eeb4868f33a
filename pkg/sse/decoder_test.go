package sse_test

import (
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foliodev/folio/pkg/sse"
)

// event builds a well-formed data line carrying the given delta content.
func event(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

// drain reads fragments until io.EOF and returns them concatenated.
func drain(d *sse.Decoder) (string, error) {
	var out strings.Builder
	for {
		fragment, err := d.Next()
		if err == io.EOF {
			return out.String(), nil
		}
		if err != nil {
			return out.String(), err
		}
		out.WriteString(fragment)
	}
}

var _ = Describe("Decoder", func() {
	Describe("Next", func() {
		It("yields fragments in stream order", func() {
			d := sse.NewDecoder(strings.NewReader(
				event("Hi") + event(" there") + "data: [DONE]\n",
			))

			out, err := drain(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("Hi there"))
		})

		It("returns io.EOF once the sentinel is seen", func() {
			d := sse.NewDecoder(strings.NewReader("data: [DONE]\n"))

			_, err := d.Next()
			Expect(err).To(Equal(io.EOF))
		})

		It("does not read past the sentinel", func() {
			d := sse.NewDecoder(strings.NewReader(
				event("A") + "data: [DONE]\n" + event("never"),
			))

			out, err := drain(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("A"))
		})

		It("keeps returning io.EOF after exhaustion", func() {
			d := sse.NewDecoder(strings.NewReader("data: [DONE]\n"))

			_, err := d.Next()
			Expect(err).To(Equal(io.EOF))
			_, err = d.Next()
			Expect(err).To(Equal(io.EOF))
		})

		It("skips lines without the data prefix", func() {
			d := sse.NewDecoder(strings.NewReader(
				": keep-alive\n" + event("A") + "event: ping\n" + event("B") + "data: [DONE]\n",
			))

			out, err := drain(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("AB"))
		})

		It("skips malformed JSON payloads without altering the output", func() {
			d := sse.NewDecoder(strings.NewReader(
				event("A") + "data: {not json}\n" + event("B") + "data: [DONE]\n",
			))

			out, err := drain(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("AB"))
		})

		It("skips events carrying no content", func() {
			d := sse.NewDecoder(strings.NewReader(
				`data: {"choices":[{"delta":{"role":"assistant"}}]}` + "\n" +
					event("Hello") +
					`data: {"choices":[]}` + "\n" +
					"data: [DONE]\n",
			))

			out, err := drain(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("Hello"))
		})

		It("treats a stream ending without a sentinel as exhaustion", func() {
			d := sse.NewDecoder(strings.NewReader(event("partial")))

			out, err := drain(d)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("partial"))
		})

		It("surfaces reader failures mid-stream", func() {
			boom := errors.New("connection reset")
			d := sse.NewDecoder(io.MultiReader(
				strings.NewReader(event("Hel")+event("lo")),
				&failingReader{err: boom},
			))

			out, err := drain(d)
			Expect(err).To(MatchError(boom))
			Expect(out).To(Equal("Hello"))
		})
	})
})

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
