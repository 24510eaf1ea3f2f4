package repository

import (
	"context"

	"github.com/jhoicas/gestor-farma-api/internal/domain/entity"
)

// UsuarioRepository porto de persistência usado pela autenticação.
type UsuarioRepository interface {
	// FindByEmail devolve o usuário com os códigos de vínculo resolvidos, ou nil.
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	TouchUltimoAcesso(ctx context.Context, id int64) error
	// Create é usado apenas pelo comando de seed.
	Create(ctx context.Context, u *entity.Usuario) error
}
