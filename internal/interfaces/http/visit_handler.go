package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
)

// VisitHandler maneja las peticiones HTTP para visitas (protegido).
type VisitHandler struct {
	uc *usecase.VisitUseCase
}

// NewVisitHandler construye el handler.
func NewVisitHandler(uc *usecase.VisitUseCase) *VisitHandler {
	return &VisitHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar visita desde el móvil
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VisitSubmitRequest  true  "Datos de la visita"
// @Success      201   {object}  dto.VisitSubmitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/visits/submit [post]
func (h *VisitHandler) Submit(c *fiber.Ctx) error {
	var in dto.VisitSubmitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El envío siempre es del usuario autenticado.
	in.UserID = GetUserID(c)
	out, err := h.uc.Submit(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar visitas
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        userId   query  int  false  "Filtrar por usuario"
// @Param        storeId  query  int  false  "Filtrar por tienda"
// @Success      200      {array}  dto.VisitResponse
// @Router       /api/visits [get]
func (h *VisitHandler) List(c *fiber.Ctx) error {
	var userID, storeID *int64
	if v := c.QueryInt("userId", 0); v != 0 {
		id := int64(v)
		userID = &id
	}
	if v := c.QueryInt("storeId", 0); v != 0 {
		id := int64(v)
		storeID = &id
	}
	out, err := h.uc.List(userID, storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Listar visitas de un usuario
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        userId  path  int  true  "ID del usuario"
// @Success      200     {array}  dto.VisitResponse
// @Router       /api/visits/user/{userId} [get]
func (h *VisitHandler) ListByUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "userId inválido"})
	}
	userID := int64(id)
	out, err := h.uc.List(&userID, nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByStore godoc
// @Summary      Listar visitas de una tienda
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Success      200      {array}  dto.VisitResponse
// @Router       /api/visits/store/{storeId} [get]
func (h *VisitHandler) ListByStore(c *fiber.Ctx) error {
	id, err := c.ParamsInt("storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	storeID := int64(id)
	out, err := h.uc.List(nil, &storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener visita por ID
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la visita"
// @Success      200  {object}  dto.VisitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [get]
func (h *VisitHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "visita no encontrada"})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Validar o rechazar una visita
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        id      path   int     true  "ID de la visita"
// @Param        status  query  string  true  "VALIDATED | REJECTED"
// @Success      200     {object}  dto.VisitResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/status [put]
func (h *VisitHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.UpdateStatus(int64(id), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      KPIs de visitas
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VisitStatsResponse
// @Router       /api/visits/stats [get]
func (h *VisitHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddSellout godoc
// @Summary      Registrar línea de venta en una visita
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la visita"
// @Param        body  body  dto.SelloutCreateRequest  true  "Línea de venta"
// @Success      201   {object}  dto.SelloutResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/sellouts [post]
func (h *VisitHandler) AddSellout(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.SelloutCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddSellout(int64(id), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddSelloutBatch godoc
// @Summary      Registrar varias líneas de venta en una visita
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la visita"
// @Param        body  body  []dto.SelloutCreateRequest  true  "Líneas de venta"
// @Success      201   {array}  dto.SelloutResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/sellouts/batch [post]
func (h *VisitHandler) AddSelloutBatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var ins []dto.SelloutCreateRequest
	if err := c.BodyParser(&ins); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := make([]dto.SelloutResponse, 0, len(ins))
	for _, in := range ins {
		line, err := h.uc.AddSellout(int64(id), in)
		if err != nil {
			return writeError(c, err)
		}
		out = append(out, *line)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSellouts godoc
// @Summary      Listar líneas de venta de una visita
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la visita"
// @Success      200  {array}  dto.SelloutResponse
// @Router       /api/visits/{id}/sellouts [get]
func (h *VisitHandler) ListSellouts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.ListSellouts(int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSellout godoc
// @Summary      Eliminar línea de venta de una visita
// @Tags         visits
// @Security     Bearer
// @Param        id         path  int  true  "ID de la visita"
// @Param        selloutId  path  int  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/sellouts/{selloutId} [delete]
func (h *VisitHandler) DeleteSellout(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	selloutID, err := c.ParamsInt("selloutId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "selloutId inválido"})
	}
	if err := h.uc.DeleteSellout(int64(id), int64(selloutID)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddInteraction godoc
// @Summary      Registrar interacción con cliente en una visita
// @Tags         visits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la visita"
// @Param        body  body  dto.InteractionCreateRequest  true  "Interacción"
// @Success      201   {object}  dto.InteractionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/interactions [post]
func (h *VisitHandler) AddInteraction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.InteractionCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddInteraction(int64(id), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInteractions godoc
// @Summary      Listar interacciones de una visita
// @Tags         visits
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la visita"
// @Success      200  {array}  dto.InteractionResponse
// @Router       /api/visits/{id}/interactions [get]
func (h *VisitHandler) ListInteractions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.ListInteractions(int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
