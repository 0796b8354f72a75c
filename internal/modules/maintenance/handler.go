package maintenance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"conectasonda/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/maintenance", h.List)
	rg.GET("/maintenance/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/maintenance", h.Schedule)
	rg.POST("/maintenance/:id/start", h.Start)
	rg.POST("/maintenance/:id/complete", h.Complete)
	rg.POST("/maintenance/:id/cancel", h.Cancel)
}

func (h *Handler) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case errors.Is(err, ErrConflict):
			response.Error(c, http.StatusConflict, "CONFLICT", "Maintenance already scheduled for this equipment")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing maintenance type or date")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to schedule maintenance")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": m})
}

func (h *Handler) Start(c *gin.Context) {
	h.transition(c, func(id int64) (any, error) {
		return h.service.Start(c.Request.Context(), id)
	})
}

func (h *Handler) Complete(c *gin.Context) {
	var body CompleteRequest
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var date time.Time
	if body.Date != nil {
		date = *body.Date
	}

	h.transition(c, func(id int64) (any, error) {
		return h.service.Complete(c.Request.Context(), id, date)
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, func(id int64) (any, error) {
		return h.service.Cancel(c.Request.Context(), id)
	})
}

func (h *Handler) transition(c *gin.Context, op func(id int64) (any, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	m, err := op(id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Maintenance request not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Request is not in a state that allows this transition")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update maintenance request")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": m})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Maintenance request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load maintenance request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": m})
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list maintenance requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": items})
}
