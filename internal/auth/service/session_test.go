package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()

	token := m.Issue("user-1")
	require.NotEmpty(t, token)

	userID, ok := m.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)

	_, ok = m.Resolve("unknown-token")
	assert.False(t, ok)

	// Токены уникальны даже для одного пользователя.
	other := m.Issue("user-1")
	assert.NotEqual(t, token, other)

	m.Revoke(token)
	_, ok = m.Resolve(token)
	assert.False(t, ok)

	_, ok = m.Resolve(other)
	assert.True(t, ok)
}
