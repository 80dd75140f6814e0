package jwt_test

import (
	"testing"

	"github.com/jhoicas/menu-admin-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	in := jwt.Payload{UserID: "u1", Email: "admin@resto.pe", Role: "ADMIN", TenantID: "t1"}
	token, err := jwt.Generate("secret", "menu-admin-api", 60, in)
	require.NoError(t, err)

	out, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secret", "x", 60, jwt.Payload{UserID: "u1"})
	require.NoError(t, err)
	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secret", "x", -5, jwt.Payload{UserID: "u1"})
	require.NoError(t, err)
	_, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "x", 60, jwt.Payload{})
	assert.Error(t, err)
}
