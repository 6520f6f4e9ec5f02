package filters

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
	rg.POST("/filters/funnel", h.Funnel)
}

type funnelRequest struct {
	DateFrom   string     `json:"date_from"`
	DateTo     string     `json:"date_to"`
	Previous   Selections `json:"previous"`
	Selections Selections `json:"selections"`
}

func (h *Handler) Funnel(c *gin.Context) {
	var req funnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sel, opts := h.service.Funnel(
		c.Request.Context(),
		c.GetInt64("client_id"),
		req.DateFrom,
		req.DateTo,
		req.Previous,
		req.Selections,
	)

	response.Success(c, http.StatusOK, gin.H{
		"selections": sel,
		"options":    opts,
	})
}
