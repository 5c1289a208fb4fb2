package push

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints short-lived subscriber tokens scoping a client to its
// own notification channel.
type TokenIssuer struct{ secret []byte }

// NewTokenIssuer creates an issuer around the push channel secret
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue creates a token allowing username to subscribe to its own channel,
// valid for one hour.
func (t *TokenIssuer) Issue(username string) (string, error) {
	if username == "" {
		return "", errors.New("empty username")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      username,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
		"channels": []string{channel(username)},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Verify checks a subscriber token and returns the channels it grants.
func (t *TokenIssuer) Verify(token string) ([]string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	raw, _ := claims["channels"].([]any)
	if len(raw) == 0 {
		return nil, errors.New("no channels")
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
