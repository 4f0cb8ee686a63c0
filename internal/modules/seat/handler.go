package seat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timehair/internal/domain"
	"timehair/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	seats := protected.Group("/seats")
	{
		seats.GET("", h.List)
		seats.GET("/:id", h.Get)
		seats.POST("/:id/start", h.Start)
		seats.POST("/:id/complete", h.Complete)
		seats.POST("/:id/cancel", h.Cancel)
		seats.PUT("/:id/status", h.Hold)
	}
}

func seatID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid seat ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	seats, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, seats)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := seatID(c)
	if !ok {
		return
	}

	seat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, seat)
}

func (h *Handler) Start(c *gin.Context) {
	id, ok := seatID(c)
	if !ok {
		return
	}

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	seat, err := h.svc.StartService(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, seat)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := seatID(c)
	if !ok {
		return
	}

	result, err := h.svc.CompleteService(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := seatID(c)
	if !ok {
		return
	}

	seat, err := h.svc.CancelService(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, seat)
}

func (h *Handler) Hold(c *gin.Context) {
	id, ok := seatID(c)
	if !ok {
		return
	}

	var req HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}
	status, known := domain.ParseSeatStatus(req.Status)
	if !known {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown seat status")
		return
	}

	seat, err := h.svc.HoldSeat(c.Request.Context(), id, status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, seat)
}
