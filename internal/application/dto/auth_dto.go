package dto

import "time"

// LoginRequest credenciais do login. Validadas no caso de uso para manter a mensagem original.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// UsuarioResponse usuário autenticado, sem a senha.
type UsuarioResponse struct {
	ID              int64      `json:"id"`
	Nome            string     `json:"nome"`
	Email           string     `json:"email"`
	Perfil          string     `json:"perfil"`
	IndustriaID     *int64     `json:"industria_id"`
	FarmaciaID      *int64     `json:"farmacia_id"`
	PBMID           *int64     `json:"pbm_id"`
	IndustriaCodigo *string    `json:"industria_codigo"`
	FarmaciaCodigo  *string    `json:"farmacia_codigo"`
	PBMCodigo       *string    `json:"pbm_codigo"`
	Ativo           bool       `json:"ativo"`
	UltimoAcesso    *time.Time `json:"ultimo_acesso,omitempty"`
}

// LoginResponse usuário e token JWT.
type LoginResponse struct {
	Usuario   UsuarioResponse `json:"usuario"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}
