package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
)

var (
	_ repository.PBMRepository     = (*PBMRepo)(nil)
	_ repository.ProdutoRepository = (*ProdutoRepo)(nil)
)

// PBMRepo leitura de PBMs.
type PBMRepo struct {
	db *Executor
}

func NewPBMRepository(db *Executor) *PBMRepo {
	return &PBMRepo{db: db}
}

// ListByIndustria lista os PBMs da indústria ordenados por nome.
func (r *PBMRepo) ListByIndustria(ctx context.Context, industriaID int64) ([]*entity.PBM, error) {
	list, err := Select[entity.PBM](ctx, r.db, `
		SELECT id, industria_id, nome, codigo_gestor, cnpj, data_cadastro, ativo
		FROM pbms WHERE industria_id = $1 ORDER BY nome, id`, Int(industriaID))
	if err != nil {
		return nil, fmt.Errorf("list pbms: %w", err)
	}
	return pointers(list), nil
}

// ProdutoRepo leitura de produtos.
type ProdutoRepo struct {
	db *Executor
}

func NewProdutoRepository(db *Executor) *ProdutoRepo {
	return &ProdutoRepo{db: db}
}

// ListByIndustria lista os produtos da indústria ordenados por nome.
func (r *ProdutoRepo) ListByIndustria(ctx context.Context, industriaID int64) ([]*entity.Produto, error) {
	list, err := Select[entity.Produto](ctx, r.db, `
		SELECT id, industria_id, nome, codigo_barras, apresentacao, preco_fabrica, data_cadastro, ativo
		FROM produtos WHERE industria_id = $1 ORDER BY nome, id`, Int(industriaID))
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	return pointers(list), nil
}

func pointers[T any](list []T) []*T {
	out := make([]*T, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out
}
