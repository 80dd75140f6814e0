package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc("swagger")
	require.NoError(t, err)

	var openapi struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &openapi))
	for _, p := range []string{"/api/orders/public", "/api/orders/{id}/status", "/api/superadmin/tenants", "/api/logs/recent", "/api/admin/users", "/api/logs/action/{action}"} {
		assert.Contains(t, openapi.Paths, p)
	}
}
