package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"motorent/internal/app/dto"
	rentsvc "motorent/internal/app/services/rent"
	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainrent "motorent/internal/domain/rent"
)

type RentHandler struct {
	Service *rentsvc.Service
	Budget  *rentsvc.BudgetService
	Logger  *slog.Logger
}

type createRentRequest struct {
	MotoID    string `json:"moto_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type returnRequest struct {
	Plate        string `json:"plate"`
	DeliveryDate string `json:"delivery_date"`
}

func (h RentHandler) Plans(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rent service unavailable"})
		return
	}
	plans, err := h.Service.Plans(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRentPlanCollection(plans))
}

func (h RentHandler) Create(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rent service unavailable"})
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req createRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	r, err := h.Service.Renting(c.Request.Context(), rentsvc.RentingParams{
		DelivererID: domaindeliverer.ID(p.ID),
		MotoID:      domainmoto.ID(req.MotoID),
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapRentSummary(r))
}

func (h RentHandler) List(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rent service unavailable"})
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	filter := domainrent.Filter{
		DelivererID: domaindeliverer.ID(p.ID),
		Plate:       domainmoto.NormalizePlate(c.Query("plate")),
		Status:      domainrent.Status(c.Query("status")),
	}
	page := domainrent.Page{
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}
	rents, err := h.Service.Paginate(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRentCollection(rents, page))
}

// ReturnBudget quotes the return cost without changing the rent.
func (h RentHandler) ReturnBudget(c *gin.Context) {
	if h.Budget == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rent service unavailable"})
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	plate := c.Query("plate")
	deliveryDate, err := parseDate(c.Query("delivery_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be YYYY-MM-DD"})
		return
	}
	budget, err := h.Budget.ExpectedReturn(c.Request.Context(), domaindeliverer.ID(p.ID), plate, deliveryDate)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReturnBudget(*budget))
}

func (h RentHandler) Return(c *gin.Context) {
	if h.Budget == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rent service unavailable"})
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be YYYY-MM-DD"})
		return
	}
	budget, err := h.Budget.Return(c.Request.Context(), domaindeliverer.ID(p.ID), req.Plate, deliveryDate)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReturnBudget(*budget))
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

var _ RentHTTP = (*RentHandler)(nil)
