package httpx

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"chat-relay/internal/push"
	"chat-relay/internal/store"
	"chat-relay/pkg/auth"
)

type ChatAPI struct {
	DB     *store.Postgres
	Push   *push.Publisher
	Tokens *push.TokenIssuer
	Log    *slog.Logger
}

type sendMessageReq struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

type messageDTO struct {
	ID       int64  `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	SentAt   string `json:"sentAt"`
}

// SearchUsers returns users matching ?q=, excluding the caller
func (a *ChatAPI) SearchUsers(w http.ResponseWriter, r *http.Request) {
	me := auth.Username(r.Context())
	q := r.URL.Query().Get("q")

	users, err := a.DB.SearchUsers(r.Context(), q, me, 20)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]map[string]string, 0, len(users))
	for _, u := range users {
		resp = append(resp, map[string]string{"username": u.Username})
	}
	writeJSON(w, resp)
}

// SendMessage persists a direct message and publishes it to the receiver's
// push channel
func (a *ChatAPI) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Receiver == "" || req.Content == "" {
		http.Error(w, "receiver and content required", http.StatusBadRequest)
		return
	}

	me := auth.Username(r.Context())
	m, err := a.DB.SaveMessage(r.Context(), me, req.Receiver, req.Content)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "receiver not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Out-of-band delivery; persistence already succeeded
	if err := a.Push.Publish(r.Context(), push.Notification{
		ID:       m.ID,
		Sender:   m.Sender,
		Receiver: m.Receiver,
		Content:  m.Content,
		SentAt:   push.SentAtFormat(m.SentAt),
	}); err != nil {
		a.Log.Warn("push.publish", "receiver", m.Receiver, "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     m.ID,
		"sentAt": push.SentAtFormat(m.SentAt),
	})
}

// History returns the conversation between the caller and {username}
func (a *ChatAPI) History(w http.ResponseWriter, r *http.Request) {
	other := r.PathValue("username")
	if other == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}

	exists, err := a.DB.UserExists(r.Context(), other)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	me := auth.Username(r.Context())
	msgs, err := a.DB.Conversation(r.Context(), me, other)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, messageDTO{
			ID: m.ID, Sender: m.Sender, Receiver: m.Receiver,
			Content: m.Content, SentAt: push.SentAtFormat(m.SentAt),
		})
	}
	writeJSON(w, resp)
}

// PushToken mints a subscriber token for the caller's notification channel
func (a *ChatAPI) PushToken(w http.ResponseWriter, r *http.Request) {
	me := auth.Username(r.Context())
	tok, err := a.Tokens.Issue(me)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"token": tok})
}
