package repository

import (
	"context"

	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
)

// IndustriaFilter filtros da listagem. Ativo nil significa "somente ativas".
type IndustriaFilter struct {
	Nome         string
	CodigoGestor string
	CNPJ         string
	Ativo        *bool
	Limit        int
	Offset       int
}

// IndustriaRepository define o porto de persistência para Industria.
// A implementação vive em infrastructure e pode estar ligada ao pool ou a uma transação.
type IndustriaRepository interface {
	// Create insere e preenche ID e DataCadastro.
	Create(ctx context.Context, ind *entity.Industria) error
	// GetByID devolve nil, nil quando não existe (inclusive inativas).
	GetByID(ctx context.Context, id int64) (*entity.Industria, error)
	List(ctx context.Context, f IndustriaFilter) ([]*entity.Industria, error)
	Update(ctx context.Context, ind *entity.Industria) error
	// Deactivate marca ativo=false; false quando o id não existe.
	Deactivate(ctx context.Context, id int64) (bool, error)
	// ExistsCodigoGestor/ExistsCNPJ ignoram o registro excludeID (0 = nenhum).
	ExistsCodigoGestor(ctx context.Context, codigo string, excludeID int64) (bool, error)
	ExistsCNPJ(ctx context.Context, cnpj string, excludeID int64) (bool, error)
}
