package visits

import (
	"net/http"

	"fieldops/internal/domain"
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
	rg.GET("/visits", h.List)
	rg.GET("/visits/summary", h.Summary)
}

func callerFrom(c *gin.Context) Caller {
	return Caller{
		UserID:   c.GetInt64("user_id"),
		ClientID: c.GetInt64("client_id"),
		Role:     domain.UserRole(c.GetString("role")),
	}
}

// echoRequestToken reflects the client's fetch token so a superseded response
// can be recognized and dropped on the other side.
func echoRequestToken(c *gin.Context) {
	if token := c.GetHeader("X-Request-Token"); token != "" {
		c.Header("X-Request-Token", token)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), callerFrom(c), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list visits")
		return
	}

	echoRequestToken(c)
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Summary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	res, err := h.service.Summary(c.Request.Context(), callerFrom(c), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build summary")
		return
	}

	echoRequestToken(c)
	response.Success(c, http.StatusOK, res)
}
