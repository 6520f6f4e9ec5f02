package media

import (
	"errors"
	"net/http"

	"fieldops/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated media routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	media := rg.Group("/media")
	{
		media.POST("", h.Upload)
		media.GET("", h.ListMy)
		media.GET("/:id/signed-url", h.SignedURL)
		media.GET("/proxy", h.Proxy)
	}
}

// RegisterPublicRoutes mounts the routes that authenticate by signature
// instead of JWT.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/media/object/:id", h.Object)
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return
	}

	photo, err := h.service.Upload(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, photo)
}

func (h *Handler) ListMy(c *gin.Context) {
	views, err := h.service.ListByUser(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list photos")
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) SignedURL(c *gin.Context) {
	url, err := h.service.URL(c.Request.Context(), c.GetInt64("client_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build URL")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url})
}

func (h *Handler) Object(c *gin.Context) {
	photo, absPath, err := h.service.Object(c.Request.Context(), c.Param("id"), c.Query("exp"), c.Query("sig"))
	if err != nil {
		switch {
		case errors.Is(err, ErrLinkExpired):
			response.Error(c, http.StatusForbidden, "LINK_EXPIRED", "Link has expired")
		case errors.Is(err, ErrBadSignature):
			response.Error(c, http.StatusForbidden, "BAD_SIGNATURE", "Signature is invalid")
		case errors.Is(err, ErrPhotoNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to serve photo")
		}
		return
	}

	c.Header("Content-Type", photo.MimeType)
	c.Header("Cache-Control", "private, max-age=300")
	c.File(absPath)
}

func (h *Handler) Proxy(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing url parameter")
		return
	}

	body, contentType, err := h.service.Proxy(c.Request.Context(), rawURL)
	if err != nil {
		if errors.Is(err, ErrHostNotAllowed) {
			response.Error(c, http.StatusForbidden, "HOST_NOT_ALLOWED", "Host is not on the proxy allow list")
			return
		}
		response.Error(c, http.StatusBadGateway, "PROXY_ERROR", "Failed to fetch image")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, body)
}
