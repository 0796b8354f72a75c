package registry

import (
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
	rg.GET("/equipments", h.List)
	rg.GET("/equipments/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/equipments", h.Create)
	rg.POST("/equipments/:id/failures", h.RecordFailure)
}

func (h *Handler) List(c *gin.Context) {
	var typeFilter *domain.EquipmentType
	if raw := c.Query("type"); raw != "" && raw != "all" {
		t := domain.EquipmentType(raw)
		typeFilter = &t
	}

	items, err := h.service.List(c.Request.Context(), typeFilter)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown equipment type")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipments": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
		return
	}

	eq, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	eq, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment attributes")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create equipment")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"equipment": eq})
}

func (h *Handler) RecordFailure(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
		return
	}

	var req RecordFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var date = timeOrZero(req.Date)
	eq, rec, err := h.service.RecordFailure(c.Request.Context(), id, req.FailureType, date)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing failure type")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record failure")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"equipment": eq,
		"failure":   rec,
	})
}
