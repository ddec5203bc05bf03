package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

type UploadHandler struct {
	service ports.UploadService
}

func NewUploadHandler(service ports.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/upload.
//
// @Summary      Upload an image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "JPEG, PNG or WebP, at most 5MB"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domain.NewValidationError("file", "No file uploaded")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart body")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := h.service.Upload(c.Request().Context(), ports.UploadInput{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}
