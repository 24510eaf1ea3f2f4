package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-farma-api/internal/application/auth"
	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
)

// AuthHandler endpoints de autenticação.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler constrói o handler de autenticação.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Login com email e senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Email e senha são obrigatórios")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "Erro no login")
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identidade do token apresentado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jwt.Identity
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return unauthorized(c, "MISSING_TOKEN", "Token de autenticação requerido")
	}
	return c.JSON(fiber.Map{
		"usuario":    claims.Identity,
		"expires_at": claims.ExpiresAt.Time,
	})
}
