package webserver

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueJWTClaims(t *testing.T) {
	secret := []byte("test-secret")

	signed, err := issueJWT("user_1", secret)
	require.NoError(t, err)

	tok, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "user_1", claims["sub"])
	assert.NotEmpty(t, claims["jti"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(sessionTTL), exp.Time, time.Minute)
}

func TestIssueJWTUniqueTokenIDs(t *testing.T) {
	secret := []byte("test-secret")

	a, err := issueJWT("user_1", secret)
	require.NoError(t, err)
	b, err := issueJWT("user_1", secret)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	signed, err := issueJWT("user_1", []byte("right"))
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) { return []byte("wrong"), nil })
	assert.Error(t, err)
}
