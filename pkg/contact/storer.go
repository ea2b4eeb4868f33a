// Package contact persists messages submitted through the site's contact
// form so they survive until the owner reads them.
package contact

import (
	"context"
	"time"
)

// Message is one contact-form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Storer persists contact messages. Implementations must assign ID and
// CreatedAt on Put and return messages from List newest first.
type Storer interface {
	// Put stores a message and fills in its ID and CreatedAt.
	Put(ctx context.Context, msg *Message) error

	// Get retrieves a message by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*Message, error)

	// List returns all stored messages, newest first.
	List(ctx context.Context) ([]*Message, error)

	// Close closes the store and releases any resources.
	Close() error
}

// ErrNotFound is returned when a message doesn't exist in the store.
type ErrNotFound struct {
	ID int64
}

func (e ErrNotFound) Error() string {
	return "contact message not found"
}
