package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-farma-api/internal/application/auth"
	"github.com/jhoicas/gestor-farma-api/internal/application/usecase"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	IndustriaUC *usecase.IndustriaUseCase
	Tokens      TokenParser
	DBClock     DBClock

	Env        string
	Production bool

	LoginPerMinute int
	LoginBurst     int

	Log zerolog.Logger
}

// Router registra as rotas da API. O RequestGate cobre todo o grupo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestGate(deps.Tokens))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginRateLimit(deps.LoginPerMinute, deps.LoginBurst), authHandler.Login)
	authGroup.Get("/me", authHandler.Me)

	// Diagnóstico (público)
	diag := NewDiagnosticoHandler(deps.DBClock, deps.Env, deps.Production, deps.Log)
	api.Get("/test", diag.Test)

	// Indústrias
	industriaHandler := NewIndustriaHandler(deps.IndustriaUC, deps.Log)
	industrias := api.Group("/industrias")
	industrias.Get("/", industriaHandler.List)
	industrias.Post("/", industriaHandler.Create)
	industrias.Get("/:id", industriaHandler.Get)
	industrias.Put("/:id", industriaHandler.Update)
	industrias.Delete("/:id", industriaHandler.Delete)
}
