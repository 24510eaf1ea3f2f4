package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-farma-api/internal/application/auth"
	"github.com/jhoicas/gestor-farma-api/internal/application/usecase"
	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
	apphttp "github.com/jhoicas/gestor-farma-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gestor-farma-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "gestor-farma-test"
	testSenha     = "segredo123"
)

type memUsuarios struct {
	byEmail map[string]*entity.Usuario
	err     error
}

func (m *memUsuarios) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsuarios) TouchUltimoAcesso(_ context.Context, id int64) error {
	for _, u := range m.byEmail {
		if u.ID == id {
			now := time.Now()
			u.UltimoAcesso = &now
		}
	}
	return nil
}

func (m *memUsuarios) Create(_ context.Context, u *entity.Usuario) error {
	m.byEmail[u.Email] = u
	return nil
}

type memIndustrias struct {
	rows   map[int64]entity.Industria
	nextID int64
}

func (m *memIndustrias) Create(_ context.Context, ind *entity.Industria) error {
	m.nextID++
	ind.ID = m.nextID
	ind.DataCadastro = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m.rows[ind.ID] = *ind
	return nil
}

func (m *memIndustrias) GetByID(_ context.Context, id int64) (*entity.Industria, error) {
	ind, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &ind, nil
}

func (m *memIndustrias) List(_ context.Context, f repository.IndustriaFilter) ([]*entity.Industria, error) {
	ativo := true
	if f.Ativo != nil {
		ativo = *f.Ativo
	}
	out := []*entity.Industria{}
	for _, ind := range m.rows {
		if ind.Ativo != ativo {
			continue
		}
		if f.Nome != "" && !strings.Contains(strings.ToLower(ind.Nome), strings.ToLower(f.Nome)) {
			continue
		}
		ind := ind
		out = append(out, &ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (m *memIndustrias) Update(_ context.Context, ind *entity.Industria) error {
	m.rows[ind.ID] = *ind
	return nil
}

func (m *memIndustrias) Deactivate(_ context.Context, id int64) (bool, error) {
	ind, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	ind.Ativo = false
	m.rows[id] = ind
	return true, nil
}

func (m *memIndustrias) ExistsCodigoGestor(_ context.Context, codigo string, excludeID int64) (bool, error) {
	for id, ind := range m.rows {
		if id != excludeID && ind.CodigoGestor == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (m *memIndustrias) ExistsCNPJ(_ context.Context, cnpj string, excludeID int64) (bool, error) {
	for id, ind := range m.rows {
		if id != excludeID && ind.CNPJ == cnpj {
			return true, nil
		}
	}
	return false, nil
}

type memTx struct{ repo *memIndustrias }

func (t memTx) RunIndustria(_ context.Context, fn func(repo repository.IndustriaRepository) error) error {
	return fn(t.repo)
}

type emptyPBMs struct{}

func (emptyPBMs) ListByIndustria(context.Context, int64) ([]*entity.PBM, error) { return nil, nil }

type emptyProdutos struct{}

func (emptyProdutos) ListByIndustria(context.Context, int64) ([]*entity.Produto, error) {
	return nil, nil
}

type fakeClock struct {
	now time.Time
	err error
}

func (f fakeClock) Now(context.Context) (time.Time, error) { return f.now, f.err }

type testEnv struct {
	app        *fiber.App
	tokens     *pkgjwt.Manager
	usuarios   *memUsuarios
	industrias *memIndustrias
}

type envOption func(*apphttp.RouterDeps)

func withClock(c apphttp.DBClock) envOption {
	return func(d *apphttp.RouterDeps) { d.DBClock = c }
}

func withProduction() envOption {
	return func(d *apphttp.RouterDeps) {
		d.Production = true
		d.Env = "production"
	}
}

func withLoginLimit(perMinute, burst int) envOption {
	return func(d *apphttp.RouterDeps) {
		d.LoginPerMinute = perMinute
		d.LoginBurst = burst
	}
}

// newTestEnv monta a aplicação completa sobre repositórios em memória.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	hash, err := auth.HashSenha(testSenha, bcrypt.MinCost)
	require.NoError(t, err)

	usuarios := &memUsuarios{byEmail: map[string]*entity.Usuario{
		"admin@farma.com": {ID: 1, Nome: "Admin", Email: "admin@farma.com", SenhaHash: hash, Perfil: entity.PerfilAdmin, Ativo: true},
	}}
	industrias := &memIndustrias{rows: map[int64]entity.Industria{}}

	tokens, err := pkgjwt.NewManager(testJWTSecret, pkgjwt.DefaultTTL, testIssuer)
	require.NoError(t, err)

	log := zerolog.Nop()
	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(usuarios, tokens, log),
		IndustriaUC: usecase.NewIndustriaUseCase(industrias, emptyPBMs{}, emptyProdutos{}, memTx{repo: industrias}),
		Tokens:      tokens,
		DBClock:     fakeClock{now: time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)},
		Env:         "test",
		Log:         log,
	}
	for _, o := range opts {
		o(&deps)
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	apphttp.Router(app, deps)

	return &testEnv{app: app, tokens: tokens, usuarios: usuarios, industrias: industrias}
}

// bearer emite um token válido para o admin.
func (e *testEnv) bearer(t *testing.T) string {
	t.Helper()
	tok, _, err := e.tokens.Generate(pkgjwt.Identity{UsuarioID: 1, Nome: "Admin", Email: "admin@farma.com", Perfil: entity.PerfilAdmin})
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rdr = strings.NewReader(string(raw))
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(readBody(t, resp), &out))
	return out
}

var errBanco = errors.New("dial tcp 10.0.0.5:5432: connection refused")
