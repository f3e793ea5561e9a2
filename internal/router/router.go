package router

import (
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/config"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/handler"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/infra"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/middleware"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/repository"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/service"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil: the price cache and document jobs are then disabled.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	var (
		prixCache  service.PrixCache
		dispatcher *worker.Dispatcher
	)
	if rdb != nil {
		prixCache = infra.NewPrixCache(rdb, time.Duration(cfg.PrixCacheTTLMinutes)*time.Minute)
		dispatcher = worker.NewDispatcher(rdb, cfg.DocumentQueue)
	}
	txOpts := service.TxOptions{Serializable: cfg.DBSerializable, MaxRetries: cfg.DBMaxRetries}

	// ── Repositories ─────────────────────────────────────────────────────────
	batimentRepo := repository.NewBatimentRepository(db)
	periodePrixRepo := repository.NewPeriodePrixRepository(db)
	conventionRepo := repository.NewConventionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	batimentSvc := service.NewBatimentService(batimentRepo)
	prixSvc := service.NewPeriodePrixService(periodePrixRepo, batimentRepo, prixCache, txOpts)
	conventionSvc := service.NewConventionService(conventionRepo, batimentRepo, dispatcher, txOpts)

	// ── Handlers ─────────────────────────────────────────────────────────────
	batimentsH := handler.NewBatimentHandler(batimentSvc)
	conventionsH := handler.NewConventionHandler(conventionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	lecture := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleGestionnaire, middleware.RoleLecteur)
	ecriture := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleGestionnaire)

	api := r.Group("", middleware.JWTAuth(cfg.JWTSecret))

	admin := api.Group("/admin")
	{
		admin.GET("/batiments", lecture, batimentsH.List)
		admin.POST("/batiments", middleware.RequireRole(middleware.RoleAdmin), batimentsH.Create)
		admin.GET("/batiments/:id/ugs", lecture, batimentsH.ListUGs)
		admin.POST("/batiments/:id/ugs", middleware.RequireRole(middleware.RoleAdmin), batimentsH.CreateUG)

		// One route family per price type: /admin/prix-pepiniere-ugs, ...
		for _, t := range model.TypesPrix {
			h := handler.NewPrixHandler(prixSvc, t)
			prix := admin.Group("/prix-" + string(t) + "-ugs")
			prix.GET("/:batiment", lecture, h.ListActive)
			prix.GET("/:batiment/historique", lecture, h.ListHistory)
			prix.GET("/:batiment/export", lecture, h.Export)
			prix.POST("/:batiment", ecriture, h.Create)
			prix.PUT("/:batiment/:periode", ecriture, h.Update)
		}
	}

	conv := api.Group("/convention")
	{
		conv.POST("", ecriture, conventionsH.Create)
		conv.POST("/avenant-local/:id/:version", ecriture, conventionsH.AvenantLocal)
		conv.POST("/avenant-equipement/:id/:version", ecriture, conventionsH.AvenantEquipement)
		conv.POST("/avenant-statut-juridique/:id/:version", ecriture, conventionsH.AvenantStatutJuridique)
		conv.POST("/avenant-entite/:id/:version", ecriture, conventionsH.AvenantEntite)
		conv.POST("/resiliation/:id/:version", ecriture, conventionsH.Resiliation)
		conv.GET("/infos/:id/:version", lecture, conventionsH.Infos)
		conv.GET("/versions/:id", lecture, conventionsH.Versions)
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
