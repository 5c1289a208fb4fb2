package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	channels, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"chat:alice"}, channels)
}

func TestTokenIssuer_EmptyUsername(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	_, err := issuer.Issue("")
	assert.Error(t, err)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("secret-a").Issue("alice")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Verify(tok)
	assert.Error(t, err)
}
