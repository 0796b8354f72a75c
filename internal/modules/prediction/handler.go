package prediction

import (
	"errors"
	"net/http"
	"strconv"

	"conectasonda/internal/domain"
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
	rg.GET("/predictions", h.List)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict/:equipment_id", h.Predict)
	rg.POST("/predictions/:id/acknowledge", h.Acknowledge)
}

func (h *Handler) Predict(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipment_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
		return
	}

	p, err := h.service.Predict(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case errors.Is(err, ErrScoringUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "SCORING_UNAVAILABLE", "Risk scoring is unavailable, try again later")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create prediction")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"prediction": p})
}

func (h *Handler) List(c *gin.Context) {
	var riskFilter *domain.RiskLevel
	if raw := c.Query("risk_level"); raw != "" && raw != "all" {
		r := domain.RiskLevel(raw)
		riskFilter = &r
	}

	items, err := h.service.List(c.Request.Context(), riskFilter)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown risk level")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list predictions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"predictions": items})
}

func (h *Handler) Acknowledge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid prediction id")
		return
	}

	p, err := h.service.Acknowledge(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Prediction not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Prediction is not active")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to acknowledge prediction")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"prediction": p})
}
