package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
	"github.com/jhoicas/gestor-farma-api/internal/domain"
	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
	"github.com/jhoicas/gestor-farma-api/pkg/jwt"
)

// MsgCredenciaisInvalidas é a única resposta para email desconhecido, usuário inativo ou senha errada.
const MsgCredenciaisInvalidas = "Credenciais inválidas"

// TokenIssuer emite o JWT de sessão.
type TokenIssuer interface {
	Generate(id jwt.Identity) (string, time.Time, error)
}

// dummyHash é comparado quando o usuário não existe, para que o tempo de resposta
// não revele se o email está cadastrado.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("gestor-farma/usuario-inexistente"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt dummy hash: %v", err))
	}
	return h
})

// AuthUseCase login com email e senha.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	tokens   TokenIssuer
	log      zerolog.Logger
}

// NewAuthUseCase constrói o caso de uso de autenticação.
func NewAuthUseCase(usuarios repository.UsuarioRepository, tokens TokenIssuer, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, tokens: tokens, log: log}
}

// Login verifica as credenciais, registra o último acesso e emite o token.
// Erros sem mensagem pública (falha de banco, assinatura) são internos.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Senha == "" {
		return nil, domain.Validation("Email e senha são obrigatórios")
	}

	u, err := uc.usuarios.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	if u == nil || !u.Ativo {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Senha))
		return nil, domain.Unauthorized(MsgCredenciaisInvalidas)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(in.Senha)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warn().Err(err).Int64("usuario_id", u.ID).Msg("hash de senha inválido no banco")
		}
		return nil, domain.Unauthorized(MsgCredenciaisInvalidas)
	}

	if err := uc.usuarios.TouchUltimoAcesso(ctx, u.ID); err != nil {
		return nil, err
	}
	// a resposta reflete o acesso atual, não o anterior
	now := time.Now()
	u.UltimoAcesso = &now

	token, exp, err := uc.tokens.Generate(identityOf(u))
	if err != nil {
		return nil, fmt.Errorf("gerar token: %w", err)
	}
	return &dto.LoginResponse{
		Usuario:   toUsuarioResponse(u),
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// HashSenha gera o hash bcrypt de uma senha nova.
func HashSenha(senha string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(senha), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func identityOf(u *entity.Usuario) jwt.Identity {
	return jwt.Identity{
		UsuarioID:       u.ID,
		Nome:            u.Nome,
		Email:           u.Email,
		Perfil:          u.Perfil,
		IndustriaID:     u.IndustriaID,
		FarmaciaID:      u.FarmaciaID,
		PBMID:           u.PBMID,
		IndustriaCodigo: u.IndustriaCodigo,
		FarmaciaCodigo:  u.FarmaciaCodigo,
		PBMCodigo:       u.PBMCodigo,
	}
}

func toUsuarioResponse(u *entity.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:              u.ID,
		Nome:            u.Nome,
		Email:           u.Email,
		Perfil:          u.Perfil,
		IndustriaID:     u.IndustriaID,
		FarmaciaID:      u.FarmaciaID,
		PBMID:           u.PBMID,
		IndustriaCodigo: u.IndustriaCodigo,
		FarmaciaCodigo:  u.FarmaciaCodigo,
		PBMCodigo:       u.PBMCodigo,
		Ativo:           u.Ativo,
		UltimoAcesso:    u.UltimoAcesso,
	}
}
