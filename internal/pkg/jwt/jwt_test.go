package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	svc := New("topsecret", time.Hour)

	token, err := svc.GenerateToken(7, 1, "team_leader")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.EqualValues(t, 1, claims.ClientID)
	assert.Equal(t, "team_leader", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := New("topsecret", time.Hour).GenerateToken(7, 1, "mch")
	require.NoError(t, err)

	_, err = New("othersecret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := New("topsecret", -time.Minute).GenerateToken(7, 1, "mch")
	require.NoError(t, err)

	_, err = New("topsecret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := New("topsecret", time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}
