package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-farma-api/internal/domain"
)

func newTestExecutor(c *fakeConn, obs Observer) *Executor {
	return NewExecutor(c, zerolog.Nop(), obs)
}

func TestQuery_DevolveLinhasNaOrdem(t *testing.T) {
	conn := &fakeConn{rows: newFakeRows([]string{"id", "nome"},
		[]any{int64(2), "Beta"},
		[]any{int64(1), "Alfa"},
	)}
	obs := &fakeObserver{}
	exec := newTestExecutor(conn, obs)

	rows, err := exec.Query(context.Background(), "SELECT id, nome FROM industrias WHERE ativo = $1", Bool(true))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Record{"id": int64(2), "nome": "Beta"}, rows[0])
	assert.Equal(t, Record{"id": int64(1), "nome": "Alfa"}, rows[1])
	assert.Equal(t, []any{true}, conn.args[0])
	assert.Equal(t, []string{"query"}, obs.ops)
}

func TestQuery_SemLinhasDevolveListaVazia(t *testing.T) {
	exec := newTestExecutor(&fakeConn{}, nil)

	rows, err := exec.Query(context.Background(), "SELECT 1 WHERE false")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestQueryOne_AusenteNaoEhErro(t *testing.T) {
	exec := newTestExecutor(&fakeConn{rows: newFakeRows([]string{"id"})}, nil)

	row, ok, err := exec.QueryOne(context.Background(), "SELECT id FROM usuarios WHERE email = $1", Text("x@y.z"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, row)
}

func TestQueryOne_PrimeiraLinha(t *testing.T) {
	exec := newTestExecutor(&fakeConn{rows: newFakeRows([]string{"id"},
		[]any{int64(10)}, []any{int64(11)},
	)}, nil)

	row, ok, err := exec.QueryOne(context.Background(), "SELECT id FROM industrias")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(10), row["id"])
}

func TestQuery_ErroDoDriverPropagado(t *testing.T) {
	driverErr := &pgconn.PgError{Code: "42P01", Message: `relation "x" does not exist`}
	obs := &fakeObserver{}
	exec := newTestExecutor(&fakeConn{err: driverErr}, obs)

	_, err := exec.Query(context.Background(), "SELECT * FROM x")
	require.Error(t, err)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "42P01", pgErr.Code)
	assert.Equal(t, 1, obs.failed)
}

func TestQuery_ErroDuranteIteracao(t *testing.T) {
	rows := newFakeRows([]string{"id"}, []any{int64(1)})
	rows.err = errors.New("conexão perdida")
	exec := newTestExecutor(&fakeConn{rows: rows}, nil)

	_, err := exec.Query(context.Background(), "SELECT id FROM industrias")
	assert.EqualError(t, err, "conexão perdida")
}

func TestExecute_DevolveLinhasAfetadas(t *testing.T) {
	conn := &fakeConn{tag: pgconn.NewCommandTag("UPDATE 3")}
	obs := &fakeObserver{}
	exec := newTestExecutor(conn, obs)

	n, err := exec.Execute(context.Background(), "UPDATE industrias SET ativo = false WHERE cidade = $1", Text("Recife"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []string{"execute"}, obs.ops)
}

func TestExecute_ParametroInvalidoNaoChegaAoBanco(t *testing.T) {
	conn := &fakeConn{}
	exec := newTestExecutor(conn, nil)

	_, err := exec.Execute(context.Background(), "UPDATE t SET ids = $1", Array(Int(1), Text("a")))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
	assert.Zero(t, conn.calls())

	_, err = exec.Query(context.Background(), "SELECT $1", Array())
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
	assert.Zero(t, conn.calls())
}

type linhaTeste struct {
	ID   int64   `db:"id"`
	Nome string  `db:"nome"`
	Obs  *string `db:"obs"`
}

func TestSelectEGet(t *testing.T) {
	obs := "x"
	conn := &fakeConn{rows: newFakeRows([]string{"id", "nome", "obs"},
		[]any{int64(1), "Alfa", &obs},
		[]any{int64(2), "Beta", nil},
	)}
	exec := newTestExecutor(conn, nil)

	list, err := Select[linhaTeste](context.Background(), exec, "SELECT id, nome, obs FROM t")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].Nome)
	require.NotNil(t, list[0].Obs)
	assert.Equal(t, "x", *list[0].Obs)
	assert.Nil(t, list[1].Obs)

	empty := newTestExecutor(&fakeConn{rows: newFakeRows([]string{"id", "nome", "obs"})}, nil)
	got, err := Get[linhaTeste](context.Background(), empty, "SELECT id, nome, obs FROM t WHERE id = $1", Int(9))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompactSQL(t *testing.T) {
	assert.Equal(t, "SELECT id FROM t WHERE a = $1", compactSQL("\n\tSELECT id\n\t  FROM t\n WHERE a = $1 "))
}
