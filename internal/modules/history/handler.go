package history

import (
	"net/http"
	"strconv"

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
	rg.GET("/failures", h.Query)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/failures", h.Append)
	rg.POST("/failures/:id/resolve", h.Resolve)
}

func (h *Handler) Query(c *gin.Context) {
	var equipmentID *int64
	if raw := c.Query("equipment_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
			return
		}
		equipmentID = &id
	}

	items, err := h.service.Query(c.Request.Context(), equipmentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to query failure history")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"failures": items})
}

func (h *Handler) Append(c *gin.Context) {
	var req AppendFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rec, err := h.service.Append(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidReference:
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_REFERENCE", "Equipment does not exist")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing failure type")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to append failure record")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"failure": rec})
}

func (h *Handler) Resolve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid record id")
		return
	}

	rec, err := h.service.Resolve(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Failure record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve failure record")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"failure": rec})
}
