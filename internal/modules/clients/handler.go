package clients

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

// RegisterRoutes mounts the tenant RPC routes. The group must already carry
// the internal token middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/clients", h.Upsert)
	rg.GET("/clients/:code", h.GetByCode)
}

func (h *Handler) Upsert(c *gin.Context) {
	var in UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid client payload")
		return
	}

	cl, err := h.service.Upsert(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save client")
		return
	}

	response.Success(c, http.StatusOK, cl)
}

func (h *Handler) GetByCode(c *gin.Context) {
	cl, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Client not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load client")
		return
	}
	response.Success(c, http.StatusOK, cl)
}
