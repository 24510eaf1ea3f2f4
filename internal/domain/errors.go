package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("não autorizado")
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrConflict     = errors.New("conflito com registro existente")
	ErrInvalidParam = errors.New("parâmetro SQL inválido")
)

// Error associa um erro de domínio a uma mensagem segura para o cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// Validation erro de entrada (400).
func Validation(msg string) error { return &Error{Kind: ErrInvalidInput, Message: msg} }

// Unauthorized falha de autenticação (401).
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

// NotFound recurso inexistente (404).
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

// Conflict campo único já utilizado (400).
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

// PublicMessage devolve a mensagem destinada ao cliente, se o erro tiver uma.
func PublicMessage(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message, true
	}
	return "", false
}
