package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto fabricado por uma indústria.
type Produto struct {
	ID           int64               `db:"id"`
	IndustriaID  int64               `db:"industria_id"`
	Nome         string              `db:"nome"`
	CodigoBarras *string             `db:"codigo_barras"` // EAN-13
	Apresentacao *string             `db:"apresentacao"`
	PrecoFabrica decimal.NullDecimal `db:"preco_fabrica"` // PF, pode ser nulo
	DataCadastro time.Time           `db:"data_cadastro"`
	Ativo        bool                `db:"ativo"`
}
