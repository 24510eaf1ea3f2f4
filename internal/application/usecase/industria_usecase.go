package usecase

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
	"github.com/jhoicas/gestor-farma-api/internal/domain"
	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
)

// IndustriaTxRunner executa fn numa transação com um repositório ligado a ela.
type IndustriaTxRunner interface {
	RunIndustria(ctx context.Context, fn func(repo repository.IndustriaRepository) error) error
}

// IndustriaUseCase regras de negócio do cadastro de indústrias.
type IndustriaUseCase struct {
	repo     repository.IndustriaRepository
	pbms     repository.PBMRepository
	produtos repository.ProdutoRepository
	tx       IndustriaTxRunner
}

// NewIndustriaUseCase constrói o caso de uso.
func NewIndustriaUseCase(
	repo repository.IndustriaRepository,
	pbms repository.PBMRepository,
	produtos repository.ProdutoRepository,
	tx IndustriaTxRunner,
) *IndustriaUseCase {
	return &IndustriaUseCase{repo: repo, pbms: pbms, produtos: produtos, tx: tx}
}

// Create valida, verifica unicidade de código gestor e CNPJ e insere, tudo na mesma transação.
func (uc *IndustriaUseCase) Create(ctx context.Context, in dto.CreateIndustriaRequest) (*dto.IndustriaResponse, error) {
	ind := &entity.Industria{
		Nome:         normalize(in.Nome),
		CodigoGestor: normalize(in.CodigoGestor),
		CNPJ:         normalize(in.CNPJ),
		RazaoSocial:  optional(in.RazaoSocial),
		Endereco:     optional(in.Endereco),
		Cidade:       optional(in.Cidade),
		Estado:       upper(optional(in.Estado)),
		CEP:          optional(in.CEP),
		Telefone:     optional(in.Telefone),
		Email:        optional(in.Email),
		Website:      optional(in.Website),
		LogoURL:      optional(in.LogoURL),
		Ativo:        true,
	}
	if in.Ativo != nil {
		ind.Ativo = *in.Ativo
	}
	if ind.Nome == "" || ind.CodigoGestor == "" || ind.CNPJ == "" {
		return nil, domain.Validation("Nome, código gestor e CNPJ são obrigatórios")
	}

	err := uc.tx.RunIndustria(ctx, func(repo repository.IndustriaRepository) error {
		if err := checkUnique(ctx, repo, ind, 0); err != nil {
			return err
		}
		return repo.Create(ctx, ind)
	})
	if err != nil {
		return nil, err
	}
	return toIndustriaResponse(ind), nil
}

// Get devolve a indústria com PBMs e produtos. Inativas continuam acessíveis por id.
func (uc *IndustriaUseCase) Get(ctx context.Context, id int64) (*dto.IndustriaDetailResponse, error) {
	ind, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ind == nil {
		return nil, domain.NotFound("Indústria não encontrada")
	}
	pbms, err := uc.pbms.ListByIndustria(ctx, id)
	if err != nil {
		return nil, err
	}
	produtos, err := uc.produtos.ListByIndustria(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &dto.IndustriaDetailResponse{
		IndustriaResponse: *toIndustriaResponse(ind),
		PBMs:              make([]dto.PBMResponse, 0, len(pbms)),
		Produtos:          make([]dto.ProdutoResponse, 0, len(produtos)),
	}
	for _, p := range pbms {
		out.PBMs = append(out.PBMs, dto.PBMResponse{
			ID:           p.ID,
			Nome:         p.Nome,
			CodigoGestor: p.CodigoGestor,
			CNPJ:         p.CNPJ,
			DataCadastro: p.DataCadastro,
			Ativo:        p.Ativo,
		})
	}
	for _, p := range produtos {
		out.Produtos = append(out.Produtos, dto.ProdutoResponse{
			ID:           p.ID,
			Nome:         p.Nome,
			CodigoBarras: p.CodigoBarras,
			Apresentacao: p.Apresentacao,
			PrecoFabrica: p.PrecoFabrica,
			DataCadastro: p.DataCadastro,
			Ativo:        p.Ativo,
		})
	}
	return out, nil
}

// List aplica os filtros; sem "ativo" lista só as ativas, ordenadas por nome.
func (uc *IndustriaUseCase) List(ctx context.Context, q dto.IndustriaListQuery) ([]dto.IndustriaResponse, error) {
	list, err := uc.repo.List(ctx, repository.IndustriaFilter{
		Nome:         strings.TrimSpace(q.Nome),
		CodigoGestor: strings.TrimSpace(q.CodigoGestor),
		CNPJ:         strings.TrimSpace(q.CNPJ),
		Ativo:        q.Ativo,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.IndustriaResponse, 0, len(list))
	for _, ind := range list {
		items = append(items, *toIndustriaResponse(ind))
	}
	return items, nil
}

// Update aplica os campos presentes e revalida a unicidade, na mesma transação.
func (uc *IndustriaUseCase) Update(ctx context.Context, id int64, in dto.UpdateIndustriaRequest) (*dto.IndustriaResponse, error) {
	var out *entity.Industria
	err := uc.tx.RunIndustria(ctx, func(repo repository.IndustriaRepository) error {
		ind, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ind == nil {
			return domain.NotFound("Indústria não encontrada")
		}
		if err := applyUpdate(ind, in); err != nil {
			return err
		}
		if err := checkUnique(ctx, repo, ind, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, ind); err != nil {
			return err
		}
		out = ind
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toIndustriaResponse(out), nil
}

// Delete faz a exclusão lógica (ativo = false).
func (uc *IndustriaUseCase) Delete(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	ok, err := uc.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("Indústria não encontrada")
	}
	return &dto.MessageResponse{Message: "Indústria desativada com sucesso", ID: id}, nil
}

func applyUpdate(ind *entity.Industria, in dto.UpdateIndustriaRequest) error {
	if in.Nome != nil {
		ind.Nome = normalize(*in.Nome)
	}
	if in.CodigoGestor != nil {
		ind.CodigoGestor = normalize(*in.CodigoGestor)
	}
	if in.CNPJ != nil {
		ind.CNPJ = normalize(*in.CNPJ)
	}
	if ind.Nome == "" || ind.CodigoGestor == "" || ind.CNPJ == "" {
		return domain.Validation("Nome, código gestor e CNPJ não podem ficar vazios")
	}
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = optional(src)
		}
	}
	set(&ind.RazaoSocial, in.RazaoSocial)
	set(&ind.Endereco, in.Endereco)
	set(&ind.Cidade, in.Cidade)
	if in.Estado != nil {
		ind.Estado = upper(optional(in.Estado))
	}
	set(&ind.CEP, in.CEP)
	set(&ind.Telefone, in.Telefone)
	set(&ind.Email, in.Email)
	set(&ind.Website, in.Website)
	set(&ind.LogoURL, in.LogoURL)
	if in.Ativo != nil {
		ind.Ativo = *in.Ativo
	}
	return nil
}

// checkUnique confere código gestor e CNPJ contra os demais registros (excludeID = próprio id).
func checkUnique(ctx context.Context, repo repository.IndustriaRepository, ind *entity.Industria, excludeID int64) error {
	exists, err := repo.ExistsCodigoGestor(ctx, ind.CodigoGestor, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("Código gestor já está em uso")
	}
	exists, err = repo.ExistsCNPJ(ctx, ind.CNPJ, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("CNPJ já está em uso")
	}
	return nil
}

// normalize remove espaços das pontas e compõe acentos (NFC), para que nomes
// digitados em teclados diferentes comparem igual.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// optional trata string vazia como ausente.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := normalize(*s)
	if v == "" {
		return nil
	}
	return &v
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(*s)
	return &v
}

func toIndustriaResponse(ind *entity.Industria) *dto.IndustriaResponse {
	if ind == nil {
		return nil
	}
	return &dto.IndustriaResponse{
		ID:           ind.ID,
		Nome:         ind.Nome,
		CodigoGestor: ind.CodigoGestor,
		CNPJ:         ind.CNPJ,
		RazaoSocial:  ind.RazaoSocial,
		Endereco:     ind.Endereco,
		Cidade:       ind.Cidade,
		Estado:       ind.Estado,
		CEP:          ind.CEP,
		Telefone:     ind.Telefone,
		Email:        ind.Email,
		Website:      ind.Website,
		LogoURL:      ind.LogoURL,
		DataCadastro: ind.DataCadastro,
		Ativo:        ind.Ativo,
	}
}
