package handlers

import (
	"io"
	"log"
	"mime/multipart"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ImageField is the multipart field carrying product images.
const ImageField = "image"

// UploadHandler receives product images and forwards them to the media host.
type UploadHandler struct {
	service *services.MediaService
	timeout time.Duration
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.MediaService, timeout time.Duration) *UploadHandler {
	return &UploadHandler{service: service, timeout: timeout}
}

// RegisterRoutes registers the upload route.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	router.Post("/upload-img", withGuards(guards, h.HandleUpload)...)
}

// HandleUpload uploads every file in the image field and returns their URLs
// in submission order.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		headers = form.File[ImageField]
	} else {
		log.Printf("Upload request without multipart form: %v", err)
	}

	uploads := make([]services.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, services.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Open:        opener(fh),
		})
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	results, err := h.service.UploadAll(ctx, uploads)
	if err != nil {
		if !apperror.Is(err, apperror.KindUpload) {
			return respondError(c, err)
		}
		env := apperror.ToEnvelope(err)
		return c.Status(apperror.Status(env.Kind)).JSON(fiber.Map{
			"success": false,
			"kind":    env.Kind,
			"message": env.Message,
			"urls":    services.URLs(results),
			"results": results,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Images uploaded successfully",
		"urls":    services.URLs(results),
	})
}

func opener(fh *multipart.FileHeader) func() (io.ReadSeekCloser, error) {
	return func() (io.ReadSeekCloser, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
