package postgres

import (
	"context"
	"fmt"
	"time"
)

// DiagnosticoRepo consulta a hora do banco para o endpoint de diagnóstico.
type DiagnosticoRepo struct {
	db *Executor
}

func NewDiagnosticoRepository(db *Executor) *DiagnosticoRepo {
	return &DiagnosticoRepo{db: db}
}

// Now devolve NOW() do servidor de banco.
func (r *DiagnosticoRepo) Now(ctx context.Context) (time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT NOW() AS time`)
	if err != nil {
		return time.Time{}, err
	}
	if len(rows) == 0 {
		return time.Time{}, fmt.Errorf("SELECT NOW() sem linhas")
	}
	t, ok := rows[0]["time"].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("tipo inesperado para NOW(): %T", rows[0]["time"])
	}
	return t, nil
}
