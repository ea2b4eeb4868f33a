package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorer persists contact messages in a SQLite database file.
type SQLiteStorer struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	body       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// NewSQLiteStorer opens (creating if needed) a SQLite-backed store at path.
// Use ":memory:" for an in-memory database.
func NewSQLiteStorer(path string) (*SQLiteStorer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStorer{db: db}, nil
}

func (s *SQLiteStorer) Put(ctx context.Context, msg *Message) error {
	msg.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, body, created_at) VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	msg.ID = id
	return nil
}

func (s *SQLiteStorer) Get(ctx context.Context, id int64) (*Message, error) {
	var msg Message
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, body, created_at FROM contact_messages WHERE id = ?`, id,
	).Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Body, &msg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("query message: %w", err)
	}
	return &msg, nil
}

func (s *SQLiteStorer) List(ctx context.Context) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, body, created_at FROM contact_messages ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

func (s *SQLiteStorer) Close() error {
	return s.db.Close()
}
