package postgres

import (
	"context"

	"github.com/jhoicas/gestor-farma-api/internal/application/usecase"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
)

var _ usecase.IndustriaTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks numa transação PostgreSQL com repositórios ligados a ela.
type TxRunner struct {
	db *DB
}

// NewTxRunner constrói o runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunIndustria abre a transação e entrega um IndustriaRepository ligado a ela.
func (r *TxRunner) RunIndustria(ctx context.Context, fn func(repo repository.IndustriaRepository) error) error {
	return r.db.Transaction(ctx, func(tx *Executor) error {
		return fn(NewIndustriaRepository(tx))
	})
}
