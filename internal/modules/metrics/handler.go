package metrics

import (
	"net/http"

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
	rg.GET("/metrics", h.Snapshot)
	rg.GET("/type-summary", h.TypeSummary)
	rg.GET("/status-summary", h.StatusSummary)
	rg.GET("/reports/generate", h.Report)
}

func (h *Handler) Snapshot(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute metrics")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"metrics": snap})
}

func (h *Handler) TypeSummary(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute summary")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": snap.TypeSummary})
}

func (h *Handler) StatusSummary(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute summary")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": snap.StatusSummary})
}

func (h *Handler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Query("report_type"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate report")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}
