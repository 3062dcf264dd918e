package http

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/merchmaroc/merchandising-api/internal/application/dto"
	"github.com/merchmaroc/merchandising-api/internal/application/usecase"
)

// PhotoHandler recibe las fotos de visita del móvil, las persiste en disco y
// vincula su URL pública a la visita.
type PhotoHandler struct {
	uc       *usecase.VisitUseCase
	photoDir string
}

// NewPhotoHandler construye el handler. photoDir debe colgar del directorio
// servido estático bajo /uploads.
func NewPhotoHandler(uc *usecase.VisitUseCase, photoDir string) *PhotoHandler {
	return &PhotoHandler{uc: uc, photoDir: photoDir}
}

// Upload godoc
// @Summary      Subir foto de una visita
// @Tags         photos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        visitId  query     int   true  "ID de la visita"
// @Param        file     formData  file  true  "Foto (JPEG/PNG)"
// @Success      200      {object}  dto.PhotoUploadResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/photos/upload [post]
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	visitID := c.QueryInt("visitId", 0)
	if visitID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "visitId es requerido"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "foto requerida en el campo 'file'"})
	}

	// La visita debe existir antes de escribir nada en disco.
	visit, err := h.uc.GetByID(int64(visitID))
	if err != nil {
		return writeError(c, err)
	}
	if visit == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "visita no encontrada"})
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		// Las cámaras del móvil mandan la imagen sin extensión.
		ext = ".jpg"
	}
	name := fmt.Sprintf("visit-%d-%s%s", visitID, uuid.NewString()[:8], ext)
	if err := os.MkdirAll(h.photoDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo preparar el directorio de fotos"})
	}
	if err := c.SaveFile(fileHeader, filepath.Join(h.photoDir, name)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo guardar la foto"})
	}

	photoURL := "/" + path.Join(filepath.ToSlash(h.photoDir), name)
	if err := h.uc.AttachPhoto(int64(visitID), photoURL); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PhotoUploadResponse{PhotoURL: photoURL, FileName: name})
}
