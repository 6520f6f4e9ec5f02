package prefs

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/prefs/:key", h.Get)
	rg.PUT("/prefs/:key", h.Set)
	rg.DELETE("/prefs", h.Clear)
}

func (h *Handler) Get(c *gin.Context) {
	value, ok, err := h.service.Get(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), c.Param("key"))
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			response.Error(c, http.StatusNotFound, "UNKNOWN_KEY", "Unknown preference key")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load preference")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": c.Param("key"), "value": value, "set": ok})
}

type setInput struct {
	Value string `json:"value"`
}

func (h *Handler) Set(c *gin.Context) {
	var in setInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid preference payload")
		return
	}

	err := h.service.Set(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), c.Param("key"), in.Value)
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			response.Error(c, http.StatusNotFound, "UNKNOWN_KEY", "Unknown preference key")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save preference")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"key": c.Param("key"), "value": in.Value})
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear preferences")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}
