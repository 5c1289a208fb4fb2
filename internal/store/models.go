package store

import "time"

type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

type Message struct {
	ID       int64
	Sender   string
	Receiver string
	Content  string
	SentAt   time.Time
}
