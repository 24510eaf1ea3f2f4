package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
	"github.com/jhoicas/gestor-farma-api/pkg/jwt"
)

// LocalClaims chave de c.Locals com os claims do token validado.
const LocalClaims = "claims"

const (
	apiPrefix   = "/api"
	setupPrefix = "/api/setup"
)

// Rotas da API que não exigem token.
var publicPaths = map[string]struct{}{
	"/api/auth/login":    {},
	"/api/auth/register": {},
	"/api/test":          {},
}

// TokenParser valida um token e devolve os claims.
type TokenParser interface {
	Parse(token string) (*jwt.Claims, error)
}

// RequestGate exige "Authorization: Bearer <token>" em toda rota /api que não seja
// pública. Caminhos fora de /api passam direto.
func RequestGate(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := normalizePath(c.Path())
		if !underPrefix(path, apiPrefix) || IsPublicPath(path) {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Token de autenticação requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "Formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "Token de autenticação requerido")
		}
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "Token inválido ou expirado")
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// IsPublicPath informa se o caminho dispensa autenticação.
func IsPublicPath(path string) bool {
	path = normalizePath(path)
	if _, ok := publicPaths[path]; ok {
		return true
	}
	return underPrefix(path, setupPrefix)
}

// GetClaims devolve os claims do token (nil em rotas públicas).
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// underPrefix casa o prefixo por segmento: "/api/setup" e "/api/setup/x", não "/api/setupx".
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// O roteador do fiber ignora caixa e barra final por padrão; a comparação também.
func normalizePath(path string) string {
	path = strings.ToLower(path)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
