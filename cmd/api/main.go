package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gestor-farma-api/internal/application/auth"
	"github.com/jhoicas/gestor-farma-api/internal/application/usecase"
	"github.com/jhoicas/gestor-farma-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestor-farma-api/internal/interfaces/http"
	"github.com/jhoicas/gestor-farma-api/pkg/config"
	"github.com/jhoicas/gestor-farma-api/pkg/jwt"
	"github.com/jhoicas/gestor-farma-api/pkg/logger"
	"github.com/jhoicas/gestor-farma-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New("gestor_farma")
	db := postgres.NewDB(pool, logger.Component(log, "db"), m)

	tokens, err := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationMinutes)*time.Minute, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar JWT")
	}

	usuarioRepo := postgres.NewUsuarioRepository(db.Executor)
	industriaRepo := postgres.NewIndustriaRepository(db.Executor)
	pbmRepo := postgres.NewPBMRepository(db.Executor)
	produtoRepo := postgres.NewProdutoRepository(db.Executor)
	diagRepo := postgres.NewDiagnosticoRepository(db.Executor)
	txRunner := postgres.NewTxRunner(db)

	authUC := auth.NewAuthUseCase(usuarioRepo, tokens, logger.Component(log, "auth"))
	industriaUC := usecase.NewIndustriaUseCase(industriaRepo, pbmRepo, produtoRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(logger.Component(log, "http")))
	app.Use(m.Middleware())

	// Swagger UI: http://localhost:<port>/docs
	if path := cfg.Docs.SwaggerPath; path != "" {
		if _, err := os.Stat(path); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: path,
				Path:     "docs",
				Title:    "Gestor Farma API",
			}))
		} else {
			log.Warn().Str("path", path).Msg("swagger.json não encontrado, /docs desativado")
		}
	}

	app.Get("/health", httpRouter.Health(db.Ping))
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		IndustriaUC:    industriaUC,
		Tokens:         tokens,
		DBClock:        diagRepo,
		Env:            cfg.App.Env,
		Production:     cfg.App.IsProduction(),
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		LoginBurst:     cfg.RateLimit.LoginBurst,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
