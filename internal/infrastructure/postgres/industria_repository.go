package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/gestor-farma-api/internal/domain"
	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
)

var _ repository.IndustriaRepository = (*IndustriaRepo)(nil)

const industriaColumns = `id, nome, codigo_gestor, cnpj, razao_social, endereco, cidade, estado,
	cep, telefone, email, website, logo_url, data_cadastro, ativo`

// IndustriaRepo implementação do porto IndustriaRepository (pool ou transação).
type IndustriaRepo struct {
	db *Executor
}

// NewIndustriaRepository constrói o adaptador. Passe o executor do pool ou de uma transação.
func NewIndustriaRepository(db *Executor) *IndustriaRepo {
	return &IndustriaRepo{db: db}
}

// Create insere a indústria e preenche ID e DataCadastro via RETURNING.
func (r *IndustriaRepo) Create(ctx context.Context, ind *entity.Industria) error {
	query := `
		INSERT INTO industrias (
			nome, codigo_gestor, cnpj, razao_social, endereco, cidade, estado,
			cep, telefone, email, website, logo_url, ativo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + industriaColumns
	created, err := Get[entity.Industria](ctx, r.db, query,
		Text(ind.Nome), Text(ind.CodigoGestor), Text(ind.CNPJ),
		OptText(ind.RazaoSocial), OptText(ind.Endereco), OptText(ind.Cidade), OptText(ind.Estado),
		OptText(ind.CEP), OptText(ind.Telefone), OptText(ind.Email), OptText(ind.Website),
		OptText(ind.LogoURL), Bool(ind.Ativo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uniqueConflict(err)
		}
		return fmt.Errorf("insert industria: %w", err)
	}
	*ind = *created
	return nil
}

// GetByID obtém a indústria por ID, ativa ou não.
func (r *IndustriaRepo) GetByID(ctx context.Context, id int64) (*entity.Industria, error) {
	ind, err := Get[entity.Industria](ctx, r.db,
		`SELECT `+industriaColumns+` FROM industrias WHERE id = $1`, Int(id))
	if err != nil {
		return nil, fmt.Errorf("get industria: %w", err)
	}
	return ind, nil
}

// List aplica os filtros e ordena por nome. Sem filtro de ativo, lista só as ativas.
func (r *IndustriaRepo) List(ctx context.Context, f repository.IndustriaFilter) ([]*entity.Industria, error) {
	var (
		sb     strings.Builder
		params []Param
	)
	sb.WriteString(`SELECT ` + industriaColumns + ` FROM industrias WHERE 1=1`)
	add := func(cond string, p Param) {
		params = append(params, p)
		sb.WriteString(" AND " + cond + " $" + strconv.Itoa(len(params)))
	}

	if f.Nome != "" {
		add("nome ILIKE", Text("%"+f.Nome+"%"))
	}
	if f.CodigoGestor != "" {
		add("codigo_gestor =", Text(f.CodigoGestor))
	}
	if f.CNPJ != "" {
		add("cnpj =", Text(f.CNPJ))
	}
	ativo := true
	if f.Ativo != nil {
		ativo = *f.Ativo
	}
	add("ativo =", Bool(ativo))

	sb.WriteString(" ORDER BY nome, id")
	if f.Limit > 0 {
		params = append(params, Int(int64(f.Limit)))
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(params)))
	}
	if f.Offset > 0 {
		params = append(params, Int(int64(f.Offset)))
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(params)))
	}

	list, err := Select[entity.Industria](ctx, r.db, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("list industrias: %w", err)
	}
	return pointers(list), nil
}

// Update grava todos os campos editáveis; ErrNotFound se o id não existir.
func (r *IndustriaRepo) Update(ctx context.Context, ind *entity.Industria) error {
	query := `
		UPDATE industrias SET
			nome = $2, codigo_gestor = $3, cnpj = $4, razao_social = $5, endereco = $6,
			cidade = $7, estado = $8, cep = $9, telefone = $10, email = $11,
			website = $12, logo_url = $13, ativo = $14
		WHERE id = $1`
	n, err := r.db.Execute(ctx, query,
		Int(ind.ID), Text(ind.Nome), Text(ind.CodigoGestor), Text(ind.CNPJ),
		OptText(ind.RazaoSocial), OptText(ind.Endereco), OptText(ind.Cidade), OptText(ind.Estado),
		OptText(ind.CEP), OptText(ind.Telefone), OptText(ind.Email), OptText(ind.Website),
		OptText(ind.LogoURL), Bool(ind.Ativo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uniqueConflict(err)
		}
		return fmt.Errorf("update industria: %w", err)
	}
	if n == 0 {
		return domain.NotFound("Indústria não encontrada")
	}
	return nil
}

// Deactivate faz a exclusão lógica.
func (r *IndustriaRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	n, err := r.db.Execute(ctx, `UPDATE industrias SET ativo = false WHERE id = $1`, Int(id))
	if err != nil {
		return false, fmt.Errorf("deactivate industria: %w", err)
	}
	return n > 0, nil
}

// ExistsCodigoGestor informa se outro registro já usa o código gestor.
func (r *IndustriaRepo) ExistsCodigoGestor(ctx context.Context, codigo string, excludeID int64) (bool, error) {
	return r.exists(ctx, "codigo_gestor", codigo, excludeID)
}

// ExistsCNPJ informa se outro registro já usa o CNPJ.
func (r *IndustriaRepo) ExistsCNPJ(ctx context.Context, cnpj string, excludeID int64) (bool, error) {
	return r.exists(ctx, "cnpj", cnpj, excludeID)
}

// column vem sempre de uma constante interna.
func (r *IndustriaRepo) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM industrias WHERE ` + column + ` = $1 AND id <> $2) AS existe`
	row, ok, err := r.db.QueryOne(ctx, query, Text(value), Int(excludeID))
	if err != nil {
		return false, fmt.Errorf("check %s: %w", column, err)
	}
	if !ok {
		return false, nil
	}
	existe, _ := row["existe"].(bool)
	return existe, nil
}

func uniqueConflict(err error) error {
	switch uniqueConstraint(err) {
	case "industrias_cnpj_key":
		return domain.Conflict("CNPJ já está em uso")
	case "industrias_codigo_gestor_key":
		return domain.Conflict("Código gestor já está em uso")
	default:
		return domain.Conflict("Registro duplicado")
	}
}
