package jwthelper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/domain/entities"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	key := []byte("test-signing-key")
	user := &entities.User{ID: uuid.New(), Role: entities.RoleAdmin}

	token, err := GenerateToken(key, user, time.Hour)
	require.NoError(t, err)

	userID, role, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entities.RoleAdmin, role)
}

func TestParseToken_WrongKey(t *testing.T) {
	t.Parallel()

	user := &entities.User{ID: uuid.New(), Role: entities.RoleClient}
	token, err := GenerateToken([]byte("key-one"), user, time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken([]byte("key-two"), token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	key := []byte("test-signing-key")
	user := &entities.User{ID: uuid.New(), Role: entities.RoleClient}

	token, err := GenerateToken(key, user, -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken(key, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	_, _, err := ParseToken([]byte("key"), "not-a-token")
	assert.Error(t, err)
}
