package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Querier é a superfície comum de *pgxpool.Pool e pgx.Tx usada pelo Executor.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Observer recebe a duração e o resultado de cada instrução (métricas).
type Observer interface {
	ObserveStatement(op string, d time.Duration, err error)
}

// Record é uma linha indexada pelo nome da coluna.
type Record map[string]any

// Executor executa SQL parametrizado ($n) sobre uma conexão: o pool ou uma transação.
// Erros do driver são registrados e devolvidos sem alteração; não há retry.
type Executor struct {
	q   Querier
	log zerolog.Logger
	obs Observer
}

// NewExecutor constrói um executor ligado a q.
func NewExecutor(q Querier, log zerolog.Logger, obs Observer) *Executor {
	return &Executor{q: q, log: log, obs: obs}
}

// Query devolve todas as linhas, na ordem em que o banco as devolveu.
func (e *Executor) Query(ctx context.Context, text string, params ...Param) ([]Record, error) {
	rows, err := e.rows(ctx, "query", text, params)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		m, err := pgx.RowToMap(row)
		return Record(m), err
	})
	if err != nil {
		e.fail("query", text, err)
		return nil, err
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

// QueryOne devolve a primeira linha; ok=false quando não há linhas (nunca é erro).
func (e *Executor) QueryOne(ctx context.Context, text string, params ...Param) (Record, bool, error) {
	rows, err := e.Query(ctx, text, params...)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}

// Execute devolve a contagem de linhas informada pelo banco (command tag).
// Para UPDATE/DELETE é o número de linhas afetadas.
func (e *Executor) Execute(ctx context.Context, text string, params ...Param) (int64, error) {
	args, err := bindParams(params)
	if err != nil {
		e.fail("execute", text, err)
		return 0, err
	}
	start := time.Now()
	tag, err := e.q.Exec(ctx, text, args...)
	e.observe("execute", start, err)
	if err != nil {
		e.fail("execute", text, err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Select mapeia as linhas em T pelo nome das colunas (tag `db`).
func Select[T any](ctx context.Context, e *Executor, text string, params ...Param) ([]T, error) {
	rows, err := e.rows(ctx, "query", text, params)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		e.fail("query", text, err)
		return nil, err
	}
	return out, nil
}

// Get devolve a primeira linha mapeada em T, ou nil quando não há linhas.
func Get[T any](ctx context.Context, e *Executor, text string, params ...Param) (*T, error) {
	list, err := Select[T](ctx, e, text, params...)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (e *Executor) rows(ctx context.Context, op, text string, params []Param) (pgx.Rows, error) {
	args, err := bindParams(params)
	if err != nil {
		e.fail(op, text, err)
		return nil, err
	}
	start := time.Now()
	rows, err := e.q.Query(ctx, text, args...)
	e.observe(op, start, err)
	if err != nil {
		e.fail(op, text, err)
		return nil, err
	}
	return rows, nil
}

func (e *Executor) observe(op string, start time.Time, err error) {
	if e.obs != nil {
		e.obs.ObserveStatement(op, time.Since(start), err)
	}
}

func (e *Executor) fail(op, text string, err error) {
	ev := e.log.Error().Err(err).Str("op", op).Str("sql", compactSQL(text))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		ev = ev.Str("sqlstate", pgErr.Code)
	}
	ev.Msg("erro na consulta SQL")
}

// compactSQL reduz espaços para o log ficar numa linha.
func compactSQL(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
