package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
)

// DBClock consulta a hora do servidor de banco.
type DBClock interface {
	Now(ctx context.Context) (time.Time, error)
}

// DiagnosticoHandler GET /api/test: verifica a conexão com o banco.
type DiagnosticoHandler struct {
	db         DBClock
	env        string
	production bool
	log        zerolog.Logger
}

// NewDiagnosticoHandler constrói o handler; em produção os detalhes do erro não são expostos.
func NewDiagnosticoHandler(db DBClock, env string, production bool, log zerolog.Logger) *DiagnosticoHandler {
	return &DiagnosticoHandler{db: db, env: env, production: production, log: log}
}

// Test godoc
// @Summary      Diagnóstico de conexão com o banco
// @Tags         diagnostico
// @Produce      json
// @Success      200  {object}  dto.DiagnosticoResponse
// @Failure      500  {object}  dto.DiagnosticoErrorResponse
// @Router       /api/test [get]
func (h *DiagnosticoHandler) Test(c *fiber.Ctx) error {
	now, err := h.db.Now(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("erro ao conectar ao banco de dados")
		out := dto.DiagnosticoErrorResponse{Error: "Erro ao conectar ao banco de dados"}
		if !h.production {
			out.Details = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(out)
	}
	return c.JSON(dto.DiagnosticoResponse{
		Message:     "Conexão com o banco de dados bem-sucedida!",
		Time:        now,
		Environment: h.env,
	})
}

// Health GET /health: liveness + ping do banco.
func Health(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
