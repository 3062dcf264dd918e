package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/importer"
)

// ImportHandler maneja los imports masivos por CSV (protegido, solo SUPERVISOR).
// El archivo llega como multipart/form-data en el campo "file", o como CSV
// crudo en el cuerpo de la petición.
type ImportHandler struct {
	svc *importer.Service
}

// NewImportHandler construye el handler.
func NewImportHandler(svc *importer.Service) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// Users godoc
// @Summary      Import masivo de usuarios por CSV
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV: name,email,password,role,region,managerId"
// @Success      200   {object}  dto.ImportReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/users [post]
func (h *ImportHandler) Users(c *fiber.Ctx) error {
	return h.handle(c, h.svc.ImportUsers)
}

// Stores godoc
// @Summary      Import masivo de tiendas por CSV
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV: name,type,city,latitude,longitude,address"
// @Success      200   {object}  dto.ImportReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/stores [post]
func (h *ImportHandler) Stores(c *fiber.Ctx) error {
	return h.handle(c, h.svc.ImportStores)
}

// Assignments godoc
// @Summary      Import masivo de asignaciones por CSV
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV: date,userEmail,storeName,tasks (tasks separadas por ;)"
// @Success      200   {object}  dto.ImportReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/assignments [post]
func (h *ImportHandler) Assignments(c *fiber.Ctx) error {
	return h.handle(c, h.svc.ImportAssignments)
}

// Products godoc
// @Summary      Import masivo de productos por CSV
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV: name,sku,category,subCategory,imageUrl"
// @Success      200   {object}  dto.ImportReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/products [post]
func (h *ImportHandler) Products(c *fiber.Ctx) error {
	return h.handle(c, h.svc.ImportProducts)
}

func (h *ImportHandler) handle(c *fiber.Ctx, do importer.ImportFunc) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// Sin multipart: se acepta el CSV crudo en el cuerpo.
		if body := c.Body(); len(body) > 0 {
			report, err := do(c.UserContext(), bytes.NewReader(body))
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(report)
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo CSV requerido en el campo 'file'"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	report, err := do(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
