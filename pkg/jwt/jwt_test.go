package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casavidal/ferreteria-api/pkg/jwt"
)

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "ADMIN", "ferreteria-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "ADMIN", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "VENDEDOR", "ferreteria-api", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	require.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "VENDEDOR", "ferreteria-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	require.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "ADMIN", "ferreteria-api", 60)
	require.Error(t, err)
}
