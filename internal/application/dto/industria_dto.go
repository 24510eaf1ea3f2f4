package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIndustriaRequest entrada para cadastrar uma indústria.
type CreateIndustriaRequest struct {
	Nome         string  `json:"nome" validate:"max=200"`
	CodigoGestor string  `json:"codigo_gestor" validate:"max=50"`
	CNPJ         string  `json:"cnpj" validate:"max=18"`
	RazaoSocial  *string `json:"razao_social" validate:"omitempty,max=200"`
	Endereco     *string `json:"endereco" validate:"omitempty,max=255"`
	Cidade       *string `json:"cidade" validate:"omitempty,max=100"`
	Estado       *string `json:"estado" validate:"omitempty,len=2"`
	CEP          *string `json:"cep" validate:"omitempty,max=9"`
	Telefone     *string `json:"telefone" validate:"omitempty,max=20"`
	Email        *string `json:"email" validate:"omitempty,email,max=150"`
	Website      *string `json:"website" validate:"omitempty,max=200"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,max=500"`
	Ativo        *bool   `json:"ativo"`
}

// UpdateIndustriaRequest atualização parcial: campos ausentes (nil) ficam como estão.
type UpdateIndustriaRequest struct {
	Nome         *string `json:"nome" validate:"omitempty,min=1,max=200"`
	CodigoGestor *string `json:"codigo_gestor" validate:"omitempty,min=1,max=50"`
	CNPJ         *string `json:"cnpj" validate:"omitempty,min=1,max=18"`
	RazaoSocial  *string `json:"razao_social" validate:"omitempty,max=200"`
	Endereco     *string `json:"endereco" validate:"omitempty,max=255"`
	Cidade       *string `json:"cidade" validate:"omitempty,max=100"`
	Estado       *string `json:"estado" validate:"omitempty,len=2"`
	CEP          *string `json:"cep" validate:"omitempty,max=9"`
	Telefone     *string `json:"telefone" validate:"omitempty,max=20"`
	Email        *string `json:"email" validate:"omitempty,email,max=150"`
	Website      *string `json:"website" validate:"omitempty,max=200"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,max=500"`
	Ativo        *bool   `json:"ativo"`
}

// IndustriaListQuery filtros de GET /api/industrias.
type IndustriaListQuery struct {
	Nome         string `query:"nome"`
	CodigoGestor string `query:"codigo_gestor"`
	CNPJ         string `query:"cnpj"`
	Ativo        *bool
	PageRequest
}

// IndustriaResponse saída de uma indústria.
type IndustriaResponse struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	CodigoGestor string    `json:"codigo_gestor"`
	CNPJ         string    `json:"cnpj"`
	RazaoSocial  *string   `json:"razao_social"`
	Endereco     *string   `json:"endereco"`
	Cidade       *string   `json:"cidade"`
	Estado       *string   `json:"estado"`
	CEP          *string   `json:"cep"`
	Telefone     *string   `json:"telefone"`
	Email        *string   `json:"email"`
	Website      *string   `json:"website"`
	LogoURL      *string   `json:"logo_url"`
	DataCadastro time.Time `json:"data_cadastro"`
	Ativo        bool      `json:"ativo"`
}

// IndustriaDetailResponse indústria com seus PBMs e produtos (listas nunca nulas).
type IndustriaDetailResponse struct {
	IndustriaResponse
	PBMs     []PBMResponse     `json:"pbms"`
	Produtos []ProdutoResponse `json:"produtos"`
}

// PBMResponse item de PBM no detalhe da indústria.
type PBMResponse struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	CodigoGestor string    `json:"codigo_gestor"`
	CNPJ         *string   `json:"cnpj"`
	DataCadastro time.Time `json:"data_cadastro"`
	Ativo        bool      `json:"ativo"`
}

// ProdutoResponse item de produto no detalhe da indústria.
type ProdutoResponse struct {
	ID           int64               `json:"id"`
	Nome         string              `json:"nome"`
	CodigoBarras *string             `json:"codigo_barras"`
	Apresentacao *string             `json:"apresentacao"`
	PrecoFabrica decimal.NullDecimal `json:"preco_fabrica"`
	DataCadastro time.Time           `json:"data_cadastro"`
	Ativo        bool                `json:"ativo"`
}
