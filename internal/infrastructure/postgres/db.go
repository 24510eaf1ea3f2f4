package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Pool é a parte do *pgxpool.Pool usada aqui.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB expõe Query/QueryOne/Execute sobre o pool e abre transações.
type DB struct {
	*Executor
	pool Pool
}

// NewDB constrói o acesso ao banco. obs pode ser nil.
func NewDB(pool Pool, log zerolog.Logger, obs Observer) *DB {
	return &DB{Executor: NewExecutor(pool, log, obs), pool: pool}
}

// Transaction executa fn dentro de BEGIN/COMMIT. O Executor recebido por fn está
// ligado à conexão da transação; usá-lo fora de fn é erro.
// Se fn falhar (ou entrar em pânico) é feito ROLLBACK e o erro original é devolvido.
func (db *DB) Transaction(ctx context.Context, fn func(tx *Executor) error) error {
	start := time.Now()
	tx, err := db.pool.Begin(ctx)
	db.observe("begin", start, err)
	if err != nil {
		db.log.Error().Err(err).Msg("erro ao iniciar transação")
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		db.rollback(ctx, tx)
	}()

	if err := fn(NewExecutor(tx, db.log, db.obs)); err != nil {
		db.rollback(ctx, tx)
		done = true
		db.log.Error().Err(err).Msg("erro na transação SQL, rollback executado")
		return err
	}

	start = time.Now()
	err = tx.Commit(ctx)
	db.observe("commit", start, err)
	if err != nil {
		db.log.Error().Err(err).Msg("erro no commit da transação")
		return fmt.Errorf("commit transaction: %w", err)
	}
	done = true
	return nil
}

func (db *DB) rollback(ctx context.Context, tx pgx.Tx) {
	start := time.Now()
	err := tx.Rollback(context.WithoutCancel(ctx))
	db.observe("rollback", start, err)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		db.log.Warn().Err(err).Msg("erro no rollback da transação")
	}
}

// InTx executa fn numa transação e devolve o seu resultado.
func InTx[T any](ctx context.Context, db *DB, fn func(tx *Executor) (T, error)) (T, error) {
	var out T
	err := db.Transaction(ctx, func(tx *Executor) error {
		v, err := fn(tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Ping verifica a conexão com uma consulta trivial.
func (db *DB) Ping(ctx context.Context) error {
	_, err := db.Execute(ctx, "SELECT 1")
	return err
}
