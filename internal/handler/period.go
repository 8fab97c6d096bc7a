package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/service"
	"github.com/aajcs/apiLionGym/pkg/util"

	"github.com/gin-gonic/gin"
)

// PeriodHandler handles financial period endpoints
type PeriodHandler struct {
	periodService *service.PeriodService
	log           *slog.Logger
}

func NewPeriodHandler(periodService *service.PeriodService, log *slog.Logger) *PeriodHandler {
	return &PeriodHandler{periodService: periodService, log: log}
}

// List returns all non-deleted periods (GET /api/periods)
func (h *PeriodHandler) List(c *gin.Context) {
	periods, total, err := h.periodService.List(c.Request.Context())
	if err != nil {
		h.log.Error("period list failed", "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "periods": periods})
}

// Get returns one period (GET /api/periods/:id)
func (h *PeriodHandler) Get(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid period id", ""))
		return
	}

	period, err := h.periodService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse("period not found", ""))
			return
		}
		h.log.Error("period get failed", "id", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, period)
}

// Create stores a new period (POST /api/periods)
func (h *PeriodHandler) Create(c *gin.Context) {
	var req model.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	period, err := h.periodService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
			return
		}
		h.log.Error("period create failed", "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusCreated, period)
}

// Update mutates a period (PUT /api/periods/:id)
func (h *PeriodHandler) Update(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid period id", ""))
		return
	}

	var req model.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	period, err := h.periodService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			c.JSON(http.StatusNotFound, model.NewErrorResponse("period not found", ""))
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		default:
			h.log.Error("period update failed", "id", id.Hex(), "error", err)
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, period)
}

// Delete soft-deletes a period (DELETE /api/periods/:id)
func (h *PeriodHandler) Delete(c *gin.Context) {
	id, err := util.ParseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("invalid period id", ""))
		return
	}

	period, err := h.periodService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse("period not found", ""))
			return
		}
		h.log.Error("period delete failed", "id", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, period)
}
