package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/pkg/jwt"
)

// Locals keys del usuario autenticado y del tenant resuelto en Fiber.
const (
	LocalPrincipal = "principal"
	LocalTenant    = "tenant"
	LocalRequestID = "requestid"
)

// AuthMiddleware valida el Bearer Token JWT y deja el Principal en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		p, reason := parseBearer(jwtSecret, authHeader)
		if p == nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", reason)
		}
		if p.Role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// OptionalAuth carga el Principal si viene un token válido; sin token o con token inválido sigue como anónimo.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if h := c.Get(fiber.HeaderAuthorization); h != "" {
			if p, _ := parseBearer(jwtSecret, h); p != nil && p.Role != "" {
				c.Locals(LocalPrincipal, p)
			}
		}
		return c.Next()
	}
}

func parseBearer(secret, header string) (*entity.Principal, string) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "formato: Bearer <token>"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, "token vacío"
	}
	payload, err := jwt.Parse(secret, tokenString)
	if err != nil {
		return nil, "token inválido o expirado"
	}
	return &entity.Principal{
		ID:       payload.UserID,
		Email:    payload.Email,
		Role:     payload.Role,
		TenantID: payload.TenantID,
	}, ""
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "usuario no autenticado")
		}
		if _, ok := allowed[p.Role]; !ok {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "no tienes permisos para esta acción")
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el usuario autenticado (nil si anónimo).
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.ID
	}
	return ""
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}
