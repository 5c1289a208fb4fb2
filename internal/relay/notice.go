package relay

import (
	"encoding/json"
	"time"
)

// Wire shapes for the three outbound notice kinds. Field names are part of
// the client protocol.
type systemNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type messageNotice struct {
	Type string `json:"type"`
	Room string `json:"room"`
	User string `json:"user"`
	Text string `json:"text"`
	TS   string `json:"ts"`
}

type errorNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func encodeSystem(msg string) []byte {
	b, _ := json.Marshal(systemNotice{Type: "system", Message: msg})
	return b
}

func encodeMessage(m Membership, text string, at time.Time) []byte {
	b, _ := json.Marshal(messageNotice{
		Type: "message",
		Room: m.Room,
		User: m.User,
		Text: text,
		TS:   at.UTC().Format(time.RFC3339),
	})
	return b
}

func encodeError(msg string) []byte {
	b, _ := json.Marshal(errorNotice{Type: "error", Message: msg})
	return b
}
