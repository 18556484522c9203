package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"motorent/internal/app/dto"
	authsvc "motorent/internal/app/services/auth"
	deliverersvc "motorent/internal/app/services/deliverer"
	domaindeliverer "motorent/internal/domain/deliverer"
)

type DelivererHandler struct {
	Auth    *authsvc.Service
	Service *deliverersvc.Service
	Logger  *slog.Logger
}

type registerDelivererRequest struct {
	Name      string `json:"name"`
	CNPJ      string `json:"cnpj"`
	BirthDate string `json:"birth_date"`
	CNHNumber string `json:"cnh_number"`
	CNHType   string `json:"cnh_type"`
	Password  string `json:"password"`
}

func (h DelivererHandler) Register(c *gin.Context) {
	if h.Auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "deliverer registration unavailable"})
		return
	}
	var req registerDelivererRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}
	result, err := h.Auth.Register(c.Request.Context(), authsvc.RegisterParams{
		Name:      req.Name,
		CNPJ:      req.CNPJ,
		BirthDate: birthDate,
		CNHNumber: req.CNHNumber,
		CNHType:   req.CNHType,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, authsvc.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse(result.Deliverer, result.Token))
}

// UploadCNH receives the license picture as a multipart "file" part.
func (h DelivererHandler) UploadCNH(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cnh upload unavailable"})
		return
	}
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id != p.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot update another deliverer"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	d, err := h.Service.AttachCNHImage(c.Request.Context(), domaindeliverer.ID(id), fileHeader.Filename, file)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapDelivererProfile(d))
}

var _ DelivererHTTP = (*DelivererHandler)(nil)
