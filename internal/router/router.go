package router

import (
	"context"
	"time"

	"serviciotecnico/internal/config"
	"serviciotecnico/internal/handler"
	"serviciotecnico/internal/infra"
	"serviciotecnico/internal/middleware"
	"serviciotecnico/internal/repository"
	"serviciotecnico/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Tickets *handler.TicketsHandler
	Equipos *handler.EquiposHandler
	Panel   *handler.PanelHandler
	Health  gin.HandlerFunc

	// CORSOrigins lists the origins allowed to call the API; "*" allows any.
	CORSOrigins []string
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// ctx bounds the background rate-limiter purge.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ── Infrastructure ───────────────────────────────────────────────────────
	redisCB := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "redis"})

	// ── Repositories ─────────────────────────────────────────────────────────
	ticketRepo := repository.NewTicketRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	revisionSvc := service.NewRevisionService(rdb, redisCB)
	equipoSvc := service.NewEquipoService(ticketRepo, rdb, redisCB, cfg.EquiposCacheTTL)
	ticketSvc := service.NewTicketService(ticketRepo, equipoSvc, revisionSvc)
	panelSvc := service.NewPanelService(ticketRepo, revisionSvc, cfg.NombreNegocio)

	// ── Handlers ─────────────────────────────────────────────────────────────
	h := Handlers{
		Tickets: handler.NewTicketsHandler(ticketSvc),
		Equipos: handler.NewEquiposHandler(equipoSvc),
		Panel:   handler.NewPanelHandler(panelSvc),
		Health:  handler.Health(db, rdb, redisCB),

		CORSOrigins: cfg.CORSOrigins,
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.RunPurge(ctx.Done())

	r := gin.New()
	Register(r, h, limiter)

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}

// Register installs the middleware chain and every route on r.
func Register(r *gin.Engine, h Handlers, limiter *middleware.RateLimiter) {
	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(h.CORSOrigins))
	r.Use(middleware.ErrorHandler())

	// Operational endpoints skip the rate limiter.
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("", limiter.Handler())
	{
		api.GET("/tickets", h.Tickets.Listar)
		api.POST("/tickets", h.Tickets.Crear)
		api.GET("/tickets/export", h.Panel.ExportarXLSX)
		api.PUT("/tickets/:id", h.Tickets.Actualizar)
		api.DELETE("/tickets/:id", h.Tickets.Eliminar)
		api.GET("/tickets/:id/pdf", h.Panel.OrdenServicioPDF)

		api.GET("/equipment", h.Equipos.Listar)

		api.GET("/dashboard", h.Panel.Panel)
		api.GET("/dashboard/revision", h.Panel.Revision)
	}
}
