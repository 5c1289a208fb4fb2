package httpx

import (
	"net/http"

	"log/slog"

	"chat-relay/internal/app"
	"chat-relay/internal/push"
	"chat-relay/internal/store"
	"chat-relay/internal/ws"
	"chat-relay/pkg/auth"
	"chat-relay/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, gw *ws.Gateway, db *store.Postgres, pub *push.Publisher) http.Handler {
	mw := NewMiddleware(cfg)

	authAPI := &AuthAPI{DB: db, JWT: auth.New(cfg.JWTSecret)}
	chatAPI := &ChatAPI{
		DB:     db,
		Push:   pub,
		Tokens: push.NewTokenIssuer(cfg.PushSecret),
		Log:    logger,
	}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket relay endpoint
	mux.Handle("/ws", http.HandlerFunc(gw.ServeWS))

	// Auth endpoints
	mux.Handle("POST /api/auth/register", http.HandlerFunc(authAPI.Register))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(authAPI.Login))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authAPI.Logout))
	mux.Handle("GET /api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// Chat endpoints (JWT-protected)
	mux.Handle("GET /api/users/search", mw.Auth(http.HandlerFunc(chatAPI.SearchUsers)))
	mux.Handle("POST /api/messages", mw.Auth(http.HandlerFunc(chatAPI.SendMessage)))
	mux.Handle("GET /api/messages/{username}", mw.Auth(http.HandlerFunc(chatAPI.History)))
	mux.Handle("GET /api/push/token", mw.Auth(http.HandlerFunc(chatAPI.PushToken)))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
