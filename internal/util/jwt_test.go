package util

import (
	"testing"
	"time"

	"math_quiz_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("민수", model.RoleUser, "secret-1", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret-1")
	require.NoError(t, err)
	assert.Equal(t, "민수", claims.Name)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("민수", model.RoleUser, "secret-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-2")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT("민수", model.RoleAdmin, "secret-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-1")
	assert.Error(t, err)
}
