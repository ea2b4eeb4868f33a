package contact_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/foliodev/folio/pkg/contact"
)

// Both drivers satisfy the same contract; run the shared behaviors
// against each.
var _ = Describe("Storer", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	drivers := map[string]func() contact.Storer{
		"MemoryStorer": func() contact.Storer {
			return contact.NewMemoryStorer()
		},
		"SQLiteStorer": func() contact.Storer {
			s, err := contact.NewSQLiteStorer(":memory:")
			Expect(err).NotTo(HaveOccurred())
			return s
		},
	}

	for name, newStorer := range drivers {
		Describe(name, func() {
			var storer contact.Storer

			BeforeEach(func() {
				storer = newStorer()
			})

			AfterEach(func() {
				storer.Close()
			})

			It("assigns an ID and timestamp on Put", func() {
				msg := &contact.Message{Name: "Ada", Email: "ada@example.com", Body: "Hello"}

				Expect(storer.Put(ctx, msg)).To(Succeed())
				Expect(msg.ID).NotTo(BeZero())
				Expect(msg.CreatedAt).NotTo(BeZero())
			})

			It("retrieves a stored message by ID", func() {
				msg := &contact.Message{Name: "Ada", Email: "ada@example.com", Body: "Hello"}
				Expect(storer.Put(ctx, msg)).To(Succeed())

				got, err := storer.Get(ctx, msg.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(got.Name).To(Equal("Ada"))
				Expect(got.Email).To(Equal("ada@example.com"))
				Expect(got.Body).To(Equal("Hello"))
			})

			It("returns ErrNotFound for a missing ID", func() {
				_, err := storer.Get(ctx, 42)
				Expect(err).To(BeAssignableToTypeOf(contact.ErrNotFound{}))
			})

			It("lists messages newest first", func() {
				first := &contact.Message{Name: "A", Email: "a@example.com", Body: "first"}
				second := &contact.Message{Name: "B", Email: "b@example.com", Body: "second"}
				Expect(storer.Put(ctx, first)).To(Succeed())
				Expect(storer.Put(ctx, second)).To(Succeed())

				msgs, err := storer.List(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(msgs).To(HaveLen(2))
				Expect(msgs[0].Body).To(Equal("second"))
				Expect(msgs[1].Body).To(Equal("first"))
			})

			It("lists nothing when empty", func() {
				msgs, err := storer.List(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(msgs).To(BeEmpty())
			})
		})
	}
})

var _ = Describe("SQLiteStorer", func() {
	It("creates the database file on disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "contact.db")

		s, err := contact.NewSQLiteStorer(path)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		_, err = os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
	})

	It("persists messages across reopens", func() {
		path := filepath.Join(GinkgoT().TempDir(), "contact.db")
		ctx := context.Background()

		s, err := contact.NewSQLiteStorer(path)
		Expect(err).NotTo(HaveOccurred())
		msg := &contact.Message{Name: "Ada", Email: "ada@example.com", Body: "Hello"}
		Expect(s.Put(ctx, msg)).To(Succeed())
		Expect(s.Close()).To(Succeed())

		reopened, err := contact.NewSQLiteStorer(path)
		Expect(err).NotTo(HaveOccurred())
		defer reopened.Close()

		got, err := reopened.Get(ctx, msg.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Body).To(Equal("Hello"))
	})
})
