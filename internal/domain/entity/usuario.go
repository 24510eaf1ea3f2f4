package entity

import "time"

// Perfis de usuário.
const (
	PerfilAdmin     = "admin"
	PerfilIndustria = "industria"
	PerfilFarmacia  = "farmacia"
	PerfilPBM       = "pbm"
)

// Usuario do sistema com no máximo um vínculo (indústria, farmácia ou PBM).
// Os códigos de vínculo vêm do JOIN com a tabela correspondente.
type Usuario struct {
	ID              int64      `db:"id"`
	Nome            string     `db:"nome"`
	Email           string     `db:"email"`
	SenhaHash       string     `db:"senha"` // bcrypt, nunca sai do servidor
	Perfil          string     `db:"perfil"`
	IndustriaID     *int64     `db:"industria_id"`
	FarmaciaID      *int64     `db:"farmacia_id"`
	PBMID           *int64     `db:"pbm_id"`
	IndustriaCodigo *string    `db:"industria_codigo"`
	FarmaciaCodigo  *string    `db:"farmacia_codigo"`
	PBMCodigo       *string    `db:"pbm_codigo"`
	Ativo           bool       `db:"ativo"`
	UltimoAcesso    *time.Time `db:"ultimo_acesso"`
}
