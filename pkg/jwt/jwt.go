package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL validade fixa do token de sessão.
const DefaultTTL = 8 * time.Hour

var (
	ErrEmptySecret  = errors.New("jwt: segredo vazio")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Identity é o retrato do usuário gravado no token no momento da emissão.
// Nunca contém o hash da senha.
type Identity struct {
	UsuarioID       int64   `json:"id"`
	Nome            string  `json:"nome"`
	Email           string  `json:"email"`
	Perfil          string  `json:"perfil"`
	IndustriaID     *int64  `json:"industria_id"`
	FarmaciaID      *int64  `json:"farmacia_id"`
	PBMID           *int64  `json:"pbm_id"`
	IndustriaCodigo *string `json:"industria_codigo"`
	FarmaciaCodigo  *string `json:"farmacia_codigo"`
	PBMCodigo       *string `json:"pbm_codigo"`
}

// Claims inclui os claims padrão JWT mais a identidade do usuário.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// Manager emite e valida tokens HS256 com um segredo mantido pelo servidor.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewManager constrói o emissor. Falha se o segredo estiver vazio; ttl <= 0 usa DefaultTTL.
func NewManager(secret string, ttl time.Duration, issuer string) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// WithClock substitui o relógio usado na emissão e na validação.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	cp := *m
	cp.now = now
	return &cp
}

// TTL devolve a validade configurada.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Generate assina um token para a identidade e devolve também o instante de expiração.
func (m *Manager) Generate(id Identity) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(id.UsuarioID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("assinar token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida assinatura, emissor e expiração e devolve os claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
