package http

import (
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-farma-api/internal/application/dto"
	"github.com/jhoicas/gestor-farma-api/internal/application/usecase"
)

// IndustriaHandler CRUD de /api/industrias.
type IndustriaHandler struct {
	uc       *usecase.IndustriaUseCase
	validate *validator.Validate
	log      zerolog.Logger
}

// NewIndustriaHandler constrói o handler com o caso de uso injetado.
func NewIndustriaHandler(uc *usecase.IndustriaUseCase, log zerolog.Logger) *IndustriaHandler {
	return &IndustriaHandler{uc: uc, validate: newValidator(), log: log}
}

// List godoc
// @Summary      Listar indústrias
// @Tags         industrias
// @Produce      json
// @Security     BearerAuth
// @Param        nome           query  string  false  "Filtro por nome (contém, sem caixa)"
// @Param        codigo_gestor  query  string  false  "Código gestor exato"
// @Param        cnpj           query  string  false  "CNPJ exato"
// @Param        ativo          query  bool    false  "Padrão true"
// @Param        limit          query  int     false  "Limite"
// @Param        offset         query  int     false  "Offset"
// @Success      200  {array}   dto.IndustriaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/industrias [get]
func (h *IndustriaHandler) List(c *fiber.Ctx) error {
	q := dto.IndustriaListQuery{
		Nome:         c.Query("nome"),
		CodigoGestor: c.Query("codigo_gestor"),
		CNPJ:         c.Query("cnpj"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 0),
			Offset: c.QueryInt("offset", 0),
		},
	}
	if raw := c.Query("ativo"); raw != "" {
		ativo := raw == "true"
		q.Ativo = &ativo
	}
	if err := h.validate.Struct(q.PageRequest); err != nil {
		return badRequest(c, "VALIDATION", validationMessage(err))
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err, "Erro ao buscar indústrias")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar indústria
// @Tags         industrias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateIndustriaRequest  true  "Dados da indústria"
// @Success      201   {object}  dto.IndustriaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/industrias [post]
func (h *IndustriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIndustriaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Corpo da requisição inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", validationMessage(err))
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "Erro ao criar indústria")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obter indústria com PBMs e produtos
// @Tags         industrias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da indústria"
// @Success      200  {object}  dto.IndustriaDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/industrias/{id} [get]
func (h *IndustriaHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "ID inválido")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err, "Erro ao buscar indústria")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar indústria (parcial)
// @Tags         industrias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "ID da indústria"
// @Param        body  body      dto.UpdateIndustriaRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.IndustriaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/industrias/{id} [put]
func (h *IndustriaHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "ID inválido")
	}
	var in dto.UpdateIndustriaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "Corpo da requisição inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", validationMessage(err))
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err, "Erro ao atualizar indústria")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desativar indústria (exclusão lógica)
// @Tags         industrias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da indústria"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/industrias/{id} [delete]
func (h *IndustriaHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "ID inválido")
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err, "Erro ao excluir indústria")
	}
	return c.JSON(out)
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
