package maintenance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timehair/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	m := protected.Group("/maintenance")
	{
		m.POST("/backup", h.Backup)
		m.POST("/restore", h.Restore)
		m.GET("/storage-path", h.StoragePath)
	}
}

func (h *Handler) Backup(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "path is required")
		return
	}

	info, err := h.svc.Backup(c.Request.Context(), req.Path)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) Restore(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "path is required")
		return
	}

	info, err := h.svc.Restore(c.Request.Context(), req.Path)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

func (h *Handler) StoragePath(c *gin.Context) {
	info, err := h.svc.StoragePath()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}
