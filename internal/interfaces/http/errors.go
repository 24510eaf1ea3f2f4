package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
	"github.com/jhoicas/gestor-farma-api/internal/domain"
)

// writeError traduz erros de domínio em status HTTP. Erros internos são registrados
// por completo e o cliente recebe apenas fallback.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error, fallback string) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusBadRequest, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	}

	msg, ok := domain.PublicMessage(err)
	if status == fiber.StatusInternalServerError || !ok {
		msg = fallback
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(fallback)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// newValidator usa o nome JSON dos campos nas mensagens.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage resume os erros do validator numa frase.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Dados inválidos"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("campo %s é obrigatório", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("campo %s deve ser um email válido", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("campo %s excede %s caracteres", fe.Field(), fe.Param()))
		case "len":
			msgs = append(msgs, fmt.Sprintf("campo %s deve ter %s caracteres", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("campo %s é inválido", fe.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}

// ErrorHandler é o handler final do fiber: erros não tratados viram 500 genérico.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro não tratado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Erro interno do servidor"})
	}
}
