package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
	apphttp "github.com/jhoicas/gestor-farma-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gestor-farma-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Caminhos públicos
// ──────────────────────────────────────────────────────────────────────────────

func TestIsPublicPath(t *testing.T) {
	cases := map[string]bool{
		"/api/auth/login":    true,
		"/api/auth/login/":   true,
		"/api/auth/login//":  false,
		"/API/Auth/Login":    true,
		"/api/auth/register": true,
		"/api/test":          true,
		"/api/setup":         true,
		"/api/setup/db":      true,
		"/api/setupx":        false,
		"/api/auth/me":       false,
		"/api/industrias":    false,
		"/api/auth/login/x":  false,
		"/api/industrias/1":  false,
	}
	for path, want := range cases {
		assert.Equal(t, want, apphttp.IsPublicPath(path), path)
	}
}

func TestGate_RotasPublicasNaoExigemToken(t *testing.T) {
	env := newTestEnv(t)

	// login sem corpo chega ao handler (400), não é barrado pelo gate (401)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/test", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// sem rota registrada: 404, e não 401
	resp = env.do(t, http.MethodGet, "/api/setup/inicial", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGate_ForaDaAPINaoEhInterceptado(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/apidocs", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verificação do token
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_SemTokenRetorna401(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/industrias", "/api/auth/me", "/api/setupx", "/api/rota-inexistente"} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "MISSING_TOKEN", body.Code)
	}
}

func TestGate_FormatoInvalido(t *testing.T) {
	env := newTestEnv(t)

	for _, header := range []string{"Token abc", "Bearer", "Bearer    ", "abc"} {
		resp := env.do(t, http.MethodGet, "/api/industrias", header, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestGate_AssinaturaInvalida(t *testing.T) {
	env := newTestEnv(t)
	other, err := pkgjwt.NewManager("outro-segredo", pkgjwt.DefaultTTL, testIssuer)
	require.NoError(t, err)
	tok, _, err := other.Generate(pkgjwt.Identity{UsuarioID: 1})
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/industrias", "Bearer "+tok, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_TOKEN", body.Code)
}

func TestGate_TokenExpirado(t *testing.T) {
	env := newTestEnv(t)
	old := env.tokens.WithClock(func() time.Time { return time.Now().Add(-8*time.Hour - time.Minute) })
	tok, _, err := old.Generate(pkgjwt.Identity{UsuarioID: 1})
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/industrias", "Bearer "+tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGate_TokenValidoPopulaClaims(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/auth/me", env.bearer(t), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	type meResponse struct {
		Usuario pkgjwt.Identity `json:"usuario"`
	}
	body := decode[meResponse](t, resp)
	assert.Equal(t, int64(1), body.Usuario.UsuarioID)
	assert.Equal(t, "admin", body.Usuario.Perfil)
}

func TestGate_EsquemaBearerSemCaixa(t *testing.T) {
	env := newTestEnv(t)
	tok := env.bearer(t)[len("Bearer "):]

	resp := env.do(t, http.MethodGet, "/api/industrias", "bearer "+tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
