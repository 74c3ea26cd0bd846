package utils

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	sessionID := uuid.New()

	token, err := m.GenerateAccessToken(sessionID, "thungan01", "staff")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, "thungan01", claims.Username)
	assert.Equal(t, "staff", claims.Role)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("wrong_secret", func(t *testing.T) {
		other := NewJWTManager("another-secret", time.Hour)
		token, err := other.GenerateAccessToken(uuid.New(), "a", "")
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken(uuid.New(), "a", "")
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("no_session", func(t *testing.T) {
		token, err := m.GenerateAccessToken(uuid.Nil, "a", "")
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateAccessToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestSealer(t *testing.T) {
	s, err := NewSealer("seal-secret")
	require.NoError(t, err)

	sealed, err := s.Seal("upstream-token", "session-1")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "upstream-token")

	plain, err := s.Open(sealed, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "upstream-token", plain)

	_, err = s.Open(sealed, "session-2")
	assert.ErrorIs(t, err, ErrSealedValueInvalid)

	_, err = s.Open("%%%", "session-1")
	assert.ErrorIs(t, err, ErrSealedValueInvalid)

	_, err = NewSealer("")
	assert.Error(t, err)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "65A1B2C3", ShortID("65a1b2c3d4e5f6"))
	assert.Equal(t, "ABC", ShortID("abc"))
	assert.Equal(t, "0F8FAD5B", ShortID("0f8fad5b-d9cb-469f-a165-70867728950e"))

	short := ShortID("hóađơn-số-123")
	assert.True(t, utf8.ValidString(short))
	assert.Equal(t, 8, utf8.RuneCountInString(short))
}
