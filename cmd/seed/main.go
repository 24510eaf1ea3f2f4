package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-farma-api/internal/application/auth"
	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-farma-api/pkg/config"
	"github.com/jhoicas/gestor-farma-api/pkg/logger"
)

var (
	nome   string
	email  string
	senha  string
	perfil string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Cria um usuário inicial (por padrão, admin)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&nome, "nome", "Administrador", "nome do usuário")
	rootCmd.Flags().StringVar(&email, "email", "", "email de login (obrigatório)")
	rootCmd.Flags().StringVar(&senha, "senha", os.Getenv("SEED_SENHA"), "senha em texto (ou SEED_SENHA)")
	rootCmd.Flags().StringVar(&perfil, "perfil", entity.PerfilAdmin, "admin, industria, farmacia ou pbm")
	_ = rootCmd.MarkFlagRequired("email")
}

func run(ctx context.Context) error {
	dbCfg, logCfg := config.LoadDB()
	log := logger.New(logger.Config{Env: "development", Level: logCfg.Level, App: "seed"})

	if strings.TrimSpace(senha) == "" {
		return fmt.Errorf("senha obrigatória (--senha ou SEED_SENHA)")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	db := postgres.NewDB(pool, logger.Component(log, "db"), nil)

	hash, err := auth.HashSenha(senha, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &entity.Usuario{
		Nome:      strings.TrimSpace(nome),
		Email:     strings.TrimSpace(email),
		SenhaHash: hash,
		Perfil:    perfil,
		Ativo:     true,
	}
	if err := postgres.NewUsuarioRepository(db.Executor).Create(ctx, u); err != nil {
		return err
	}
	log.Info().Int64("id", u.ID).Str("email", u.Email).Str("perfil", u.Perfil).Msg("usuário criado")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
