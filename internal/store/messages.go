package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SaveMessage persists a direct message between two known users
func (p *Postgres) SaveMessage(ctx context.Context, sender, receiver, content string) (Message, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content)
		SELECT s.id, r.id, $3
		FROM users s, users r
		WHERE s.username = $1 AND r.username = $2
		RETURNING id, sent_at
	`, sender, receiver, content)

	m := Message{Sender: sender, Receiver: receiver, Content: content}
	if err := row.Scan(&m.ID, &m.SentAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	p.log.Debug("message.saved", "id", m.ID, "receiver", receiver)
	return m, nil
}

// Conversation returns all messages between two users, oldest first
func (p *Postgres) Conversation(ctx context.Context, a, b string) ([]Message, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT m.id, s.username, r.username, m.content, m.sent_at
		FROM messages m
		JOIN users s ON s.id = m.sender_id
		JOIN users r ON r.id = m.receiver_id
		WHERE (s.username = $1 AND r.username = $2)
		   OR (s.username = $2 AND r.username = $1)
		ORDER BY m.sent_at ASC
	`, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Content, &m.SentAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UserExists reports whether a username is registered
func (p *Postgres) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	return exists, err
}
