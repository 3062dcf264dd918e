package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
)

// AssignmentHandler maneja las peticiones HTTP para asignaciones (protegido).
type AssignmentHandler struct {
	uc *usecase.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        date     query  string  false  "YYYY-MM-DD"
// @Param        userId   query  int     false  "Filtrar por usuario"
// @Param        storeId  query  int     false  "Filtrar por tienda"
// @Param        page     query  int     false  "Página (desde 0)"  default(0)
// @Param        size     query  int     false  "Tamaño de página"  default(20)
// @Success      200      {object}  dto.Page[dto.AssignmentResponse]
// @Router       /api/assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	var userID, storeID *int64
	if v := c.QueryInt("userId", 0); v != 0 {
		id := int64(v)
		userID = &id
	}
	if v := c.QueryInt("storeId", 0); v != 0 {
		id := int64(v)
		storeID = &id
	}
	out, err := h.uc.List(c.Query("date"), userID, storeID, c.QueryInt("page", 0), c.QueryInt("size", 20))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// My godoc
// @Summary      Asignaciones del usuario autenticado
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.Page[dto.AssignmentResponse]
// @Router       /api/assignments/my [get]
func (h *AssignmentHandler) My(c *fiber.Ctx) error {
	out, err := h.uc.My(GetUserID(c), c.Query("date"), c.QueryInt("page", 0), c.QueryInt("size", 20))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Team godoc
// @Summary      Asignaciones del equipo de un SFOS
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200   {array}  dto.AssignmentResponse
// @Router       /api/assignments/team [get]
func (h *AssignmentHandler) Team(c *fiber.Ctx) error {
	out, err := h.uc.Team(GetUserID(c), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener asignación por ID
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la asignación"
// @Success      200  {object}  dto.AssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id} [get]
func (h *AssignmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "asignación no encontrada"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear asignación
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignmentCreateRequest  true  "Datos de la asignación"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AssignmentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBulk godoc
// @Summary      Crear asignaciones en lote
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.AssignmentCreateRequest  true  "Asignaciones a crear"
// @Success      201   {array}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments/bulk [post]
func (h *AssignmentHandler) CreateBulk(c *fiber.Ctx) error {
	var ins []dto.AssignmentCreateRequest
	if err := c.BodyParser(&ins); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBulk(c.UserContext(), ins)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar asignación
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la asignación"
// @Param        body  body  dto.AssignmentCreateRequest  true  "Datos de la asignación"
// @Success      200   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assignments/{id} [put]
func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.AssignmentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateTasks godoc
// @Summary      Actualizar estados de tareas de una asignación
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la asignación"
// @Param        body  body  []dto.TaskItemUpdateRequest  true  "Actualizaciones de estado"
// @Success      200   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assignments/{id}/tasks [patch]
func (h *AssignmentHandler) UpdateTasks(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var updates []dto.TaskItemUpdateRequest
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateTaskStatuses(int64(id), updates)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar asignación
// @Tags         assignments
// @Security     Bearer
// @Param        id  path  int  true  "ID de la asignación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
