package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/api/metrics"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type deleteImagesRequest struct {
	Paths []string `json:"paths" validate:"required,min=1,dive,required"`
}

type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /images/upload.
//
// @Summary      Upload article images
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        picture     formData  file  false  "Article picture (max 3 MB)"
// @Param        coverImage  formData  file  false  "Article cover image (max 3 MB)"
// @Success      201         {object}  map[string]string
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /images/upload [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	var files []ports.UploadFile
	for field, headers := range form.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable file "+field)
			}
			defer closeQuietly(f)

			files = append(files, ports.UploadFile{
				Field:       field,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Body:        f,
			})
		}
	}

	urls, err := h.service.Upload(c.Request().Context(), files)
	if err != nil {
		return err
	}
	for field := range urls {
		metrics.ImagesUploadedTotal.WithLabelValues(field).Inc()
	}
	return c.JSON(http.StatusCreated, urls)
}

// Delete handles POST /images.
//
// @Summary      Delete stored images
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteImagesRequest  true  "Public URLs or object keys"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /images [post]
func (h *ImageHandler) Delete(c echo.Context) error {
	var req deleteImagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Delete(c.Request().Context(), req.Paths); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "images removed"})
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
