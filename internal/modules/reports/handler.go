package reports

import (
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
	rg.GET("/reports", h.Tables)
	rg.GET("/reports/:table", h.List)
}

func (h *Handler) Tables(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"tables": Tables()})
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), c.GetInt64("client_id"), c.Param("table"), q)
	if err != nil {
		if err == ErrUnknownTable {
			response.Error(c, http.StatusNotFound, "UNKNOWN_TABLE", "Unknown report table")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list report")
		return
	}

	response.Success(c, http.StatusOK, res)
}
