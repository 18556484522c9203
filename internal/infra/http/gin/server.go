package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"motorent/internal/infra/config"
	"motorent/internal/infra/obs"
)

type AuthHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type DelivererHTTP interface {
	Register(c *gin.Context)
	UploadCNH(c *gin.Context)
}

type MotoHTTP interface {
	Register(c *gin.Context)
	List(c *gin.Context)
	UpdatePlate(c *gin.Context)
	Delete(c *gin.Context)
}

type RentHTTP interface {
	Plans(c *gin.Context)
	Create(c *gin.Context)
	List(c *gin.Context)
	ReturnBudget(c *gin.Context)
	Return(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Deliverer      DelivererHTTP
	Moto           MotoHTTP
	Rent           RentHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Deliverer != nil {
		api.POST("/deliverers", h.Deliverer.Register)
		api.POST("/deliverers/:id/cnh", h.Deliverer.UploadCNH)
	}
	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Moto != nil {
		api.POST("/motos", h.Moto.Register)
		api.GET("/motos", h.Moto.List)
		api.PATCH("/motos/:id/plate", h.Moto.UpdatePlate)
		api.DELETE("/motos/:id", h.Moto.Delete)
	}
	if h.Rent != nil {
		api.GET("/rent-plans", h.Rent.Plans)
		api.POST("/rents", h.Rent.Create)
		api.GET("/rents", h.Rent.List)
		api.GET("/rents/return-budget", h.Rent.ReturnBudget)
		api.POST("/rents/return", h.Rent.Return)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
