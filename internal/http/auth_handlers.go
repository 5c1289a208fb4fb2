package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"chat-relay/internal/store"
	"chat-relay/pkg/auth"
)

type AuthAPI struct {
	DB  *store.Postgres
	JWT *auth.JWT
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type tokenResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register handles user signup and returns a session JWT
func (a *AuthAPI) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	// Basic validation
	if req.Username == "" || len(req.Password) < 8 {
		http.Error(w, "username required and password must be 8+ chars", http.StatusBadRequest)
		return
	}

	// Create user
	u, err := a.DB.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, "username already taken", http.StatusConflict)
		return
	}

	// Issue token for 24hrs
	tok, _ := a.JWT.Sign(u.Username, 24*time.Hour)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(tokenResp{Token: tok, Username: u.Username})
}

// Login verifies credentials and returns a session JWT
func (a *AuthAPI) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	// Check credentials
	u, err := a.DB.VerifyUser(r.Context(), req.Username, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Issue token (24h)
	tok, _ := a.JWT.Sign(u.Username, 24*time.Hour)
	writeJSON(w, tokenResp{Token: tok, Username: u.Username})
}

// Logout exists for client symmetry; session tokens are stateless
func (a *AuthAPI) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"message": "logged out"})
}

// Me returns the authenticated username
func (a *AuthAPI) Me(w http.ResponseWriter, r *http.Request) {
	name := auth.Username(r.Context())
	if name == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"username": name})
}

// send JSON with proper headers
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
