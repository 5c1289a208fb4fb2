package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_SignVerify(t *testing.T) {
	j := New("test-secret")

	tok, err := j.Sign("alice", time.Hour)
	require.NoError(t, err)

	name, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestJWT_RejectsExpired(t *testing.T) {
	j := New("test-secret")

	tok, err := j.Sign("alice", -time.Minute)
	require.NoError(t, err)

	_, err = j.Verify(tok)
	assert.Error(t, err)
}

func TestUsernameContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, Username(ctx))

	ctx = WithUsername(ctx, "alice")
	assert.Equal(t, "alice", Username(ctx))
}
