package entity

import "time"

// PBM (Pharmacy Benefit Manager) vinculado a uma indústria.
type PBM struct {
	ID           int64     `db:"id"`
	IndustriaID  *int64    `db:"industria_id"`
	Nome         string    `db:"nome"`
	CodigoGestor string    `db:"codigo_gestor"`
	CNPJ         *string   `db:"cnpj"`
	DataCadastro time.Time `db:"data_cadastro"`
	Ativo        bool      `db:"ativo"`
}
