package entity

import "time"

// Industria representa uma indústria farmacêutica cadastrada.
// CodigoGestor e CNPJ são únicos; Ativo=false marca a exclusão lógica.
type Industria struct {
	ID           int64     `db:"id"`
	Nome         string    `db:"nome"`
	CodigoGestor string    `db:"codigo_gestor"`
	CNPJ         string    `db:"cnpj"`
	RazaoSocial  *string   `db:"razao_social"`
	Endereco     *string   `db:"endereco"`
	Cidade       *string   `db:"cidade"`
	Estado       *string   `db:"estado"`
	CEP          *string   `db:"cep"`
	Telefone     *string   `db:"telefone"`
	Email        *string   `db:"email"`
	Website      *string   `db:"website"`
	LogoURL      *string   `db:"logo_url"`
	DataCadastro time.Time `db:"data_cadastro"`
	Ativo        bool      `db:"ativo"`
}
