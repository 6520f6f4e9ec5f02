package notifications

import (
	"net/http"
	"strconv"

	"fieldops/internal/domain"
	"fieldops/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.POST("/notifications/:id/ack", h.Acknowledge)
	rg.GET("/ws/notifications", h.Feed)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications", h.Broadcast)
}

func (h *Handler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	n, err := h.service.Broadcast(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid target mode or empty target set")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create notification")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.service.ListForUser(
		c.Request.Context(),
		c.GetInt64("client_id"),
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		limit,
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": views})
}

func (h *Handler) Acknowledge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	n, err := h.service.Acknowledge(
		c.Request.Context(),
		c.GetInt64("client_id"),
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		id,
	)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		case ErrNotTarget:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Notification does not target this user")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to acknowledge notification")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notification": n})
}

func (h *Handler) Feed(c *gin.Context) {
	if err := h.hub.Serve(c.Writer, c.Request, c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusBadRequest, "WS_UPGRADE_FAILED", "Failed to upgrade connection")
	}
}
