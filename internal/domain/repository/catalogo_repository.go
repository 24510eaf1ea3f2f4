package repository

import (
	"context"

	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
)

// PBMRepository leitura dos PBMs de uma indústria.
type PBMRepository interface {
	ListByIndustria(ctx context.Context, industriaID int64) ([]*entity.PBM, error)
}

// ProdutoRepository leitura dos produtos de uma indústria.
type ProdutoRepository interface {
	ListByIndustria(ctx context.Context, industriaID int64) ([]*entity.Produto, error)
}
