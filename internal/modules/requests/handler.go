package requests

import (
	"net/http"
	"strconv"

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

// RegisterRoutes wires the listing and submit routes; decision routes go on
// the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/visit-requests", h.List)
	rg.POST("/visit-requests", h.Submit)
	rg.POST("/visit-requests/:id/cancel", h.Cancel)
	rg.GET("/markets", h.Markets)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/visit-requests/:id/approve", h.decide(true))
	rg.POST("/visit-requests/:id/reject", h.decide(false))
}

func (h *Handler) Submit(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	vr, err := h.service.Submit(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid market or visit date")
		case ErrMarketNotFound:
			response.Error(c, http.StatusNotFound, "MARKET_NOT_FOUND", "Market does not exist for this client")
		case ErrDuplicateRequest:
			response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "A pending request for this market and date already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit request")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": vr})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(
		c.Request.Context(),
		c.GetInt64("client_id"),
		c.GetInt64("user_id"),
		domain.UserRole(c.GetString("role")),
		c.Query("status"),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) Markets(c *gin.Context) {
	markets, err := h.service.Markets(c.Request.Context(), c.GetInt64("client_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list markets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"markets": markets})
}

func (h *Handler) decide(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
			return
		}

		var req DecideRequest
		_ = c.ShouldBindJSON(&req) // note is optional

		vr, err := h.service.Decide(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), id, approve, req.Note)
		if err != nil {
			writeRequestError(c, err)
			return
		}

		response.Success(c, http.StatusOK, gin.H{"request": vr})
	}
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	vr, err := h.service.Cancel(c.Request.Context(), c.GetInt64("client_id"), c.GetInt64("user_id"), id)
	if err != nil {
		writeRequestError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": vr})
}

func writeRequestError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Visit request not found")
	case ErrAlreadyDecided:
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Visit request is already in a terminal state")
	case ErrNotRequester:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the requester may cancel")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update request")
	}
}
