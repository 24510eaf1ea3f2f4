package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestor-farma-api/db/migrations"
	"github.com/jhoicas/gestor-farma-api/pkg/config"
	"github.com/jhoicas/gestor-farma-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Gerencia o schema do banco (goose)",
}

func init() {
	rootCmd.AddCommand(
		migrationCmd("up", "Aplica todas as migrações pendentes", migrations.Up),
		migrationCmd("down", "Desfaz a última migração aplicada", migrations.Down),
		migrationCmd("status", "Mostra o estado de cada migração", migrations.Status),
	)
}

func migrationCmd(use, short string, fn func(ctx context.Context, db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCfg, logCfg := config.LoadDB()
			log := logger.New(logger.Config{Env: "development", Level: logCfg.Level, App: "migrate"})

			db, err := sql.Open("pgx", dbCfg.ConnectionString())
			if err != nil {
				return fmt.Errorf("abrir conexão: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			start := time.Now()
			if err := fn(ctx, db); err != nil {
				return err
			}
			log.Info().Str("cmd", use).Dur("elapsed", time.Since(start)).Msg("migração concluída")
			return nil
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
