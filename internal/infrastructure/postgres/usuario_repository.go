package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-farma-api/internal/domain"
	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
	"github.com/jhoicas/gestor-farma-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação do porto UsuarioRepository.
type UsuarioRepo struct {
	db *Executor
}

// NewUsuarioRepository constrói o adaptador de usuários.
func NewUsuarioRepository(db *Executor) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

// FindByEmail busca o usuário e resolve o código gestor do vínculo.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `
		SELECT u.id, u.nome, u.email, u.senha, u.perfil,
		       u.industria_id, u.farmacia_id, u.pbm_id,
		       i.codigo_gestor AS industria_codigo,
		       f.codigo_gestor AS farmacia_codigo,
		       p.codigo_gestor AS pbm_codigo,
		       u.ativo, u.ultimo_acesso
		FROM usuarios u
		LEFT JOIN industrias i ON u.industria_id = i.id
		LEFT JOIN farmacias f ON u.farmacia_id = f.id
		LEFT JOIN pbms p ON u.pbm_id = p.id
		WHERE u.email = $1`
	u, err := Get[entity.Usuario](ctx, r.db, query, Text(email))
	if err != nil {
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// TouchUltimoAcesso registra o instante do login.
func (r *UsuarioRepo) TouchUltimoAcesso(ctx context.Context, id int64) error {
	_, err := r.db.Execute(ctx, `UPDATE usuarios SET ultimo_acesso = CURRENT_TIMESTAMP WHERE id = $1`, Int(id))
	if err != nil {
		return fmt.Errorf("update ultimo_acesso: %w", err)
	}
	return nil
}

// Create insere o usuário (senha já em hash) e preenche o ID.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (nome, email, senha, perfil, industria_id, farmacia_id, pbm_id, ativo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	row, ok, err := r.db.QueryOne(ctx, query,
		Text(u.Nome), Text(u.Email), Text(u.SenhaHash), Text(u.Perfil),
		OptInt(u.IndustriaID), OptInt(u.FarmaciaID), OptInt(u.PBMID), Bool(u.Ativo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Email já cadastrado")
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	if ok {
		switch id := row["id"].(type) {
		case int32:
			u.ID = int64(id)
		case int64:
			u.ID = id
		}
	}
	return nil
}
