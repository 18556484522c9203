package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"motorent/internal/app/dto"
	motosvc "motorent/internal/app/services/moto"
	domainmoto "motorent/internal/domain/moto"
)

type MotoHandler struct {
	Service *motosvc.Service
	Logger  *slog.Logger
}

type registerMotoRequest struct {
	Year  int    `json:"year"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

type updatePlateRequest struct {
	Plate string `json:"plate"`
}

func (h MotoHandler) Register(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fleet service unavailable"})
		return
	}
	var req registerMotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m, err := h.Service.Register(c.Request.Context(), motosvc.RegisterParams{
		Year:  req.Year,
		Model: req.Model,
		Plate: req.Plate,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapMotoSummary(m))
}

func (h MotoHandler) List(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fleet service unavailable"})
		return
	}
	motos, err := h.Service.Search(c.Request.Context(), c.Query("plate"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapMotoCollection(motos))
}

func (h MotoHandler) UpdatePlate(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fleet service unavailable"})
		return
	}
	var req updatePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m, err := h.Service.UpdatePlate(c.Request.Context(), domainmoto.ID(c.Param("id")), req.Plate)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapMotoSummary(m))
}

func (h MotoHandler) Delete(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fleet service unavailable"})
		return
	}
	if err := h.Service.Remove(c.Request.Context(), domainmoto.ID(c.Param("id"))); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var _ MotoHTTP = (*MotoHandler)(nil)
