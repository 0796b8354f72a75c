package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"conectasonda/internal/config"
	"conectasonda/internal/database"
	"conectasonda/internal/middleware"
	"conectasonda/internal/modules/alerts"
	"conectasonda/internal/modules/auth"
	"conectasonda/internal/modules/history"
	"conectasonda/internal/modules/maintenance"
	"conectasonda/internal/modules/metrics"
	"conectasonda/internal/modules/prediction"
	"conectasonda/internal/modules/registry"
	jwtsvc "conectasonda/internal/pkg/jwt"
	"conectasonda/internal/pkg/keymutex"
	"conectasonda/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	equipmentRepo := repository.NewEquipmentRepository(db)
	failureRepo := repository.NewFailureRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	userRepo := repository.NewUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	locks := keymutex.New()
	hub := alerts.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	registryService := registry.NewService(equipmentRepo, locks)
	registryHandler := registry.NewHandler(registryService)

	historyService := history.NewService(failureRepo, equipmentRepo)
	historyHandler := history.NewHandler(historyService)

	predictionService := prediction.NewService(
		predictionRepo,
		equipmentRepo,
		failureRepo,
		prediction.HeuristicScorer{},
		hub,
		locks,
		cfg.ScoringTimeout,
	)
	predictionHandler := prediction.NewHandler(predictionService)

	maintenanceService := maintenance.NewService(
		maintenanceRepo,
		equipmentRepo,
		predictionRepo,
		failureRepo,
		locks,
	)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)

	metricsService := metrics.NewService(
		equipmentRepo,
		predictionRepo,
		maintenanceRepo,
		cfg.SystemAccuracy,
		cfg.AvgResponseTime,
	)
	metricsHandler := metrics.NewHandler(metricsService)

	alertsHandler := alerts.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		registryHandler.RegisterRoutes(v1)
		historyHandler.RegisterRoutes(v1)
		predictionHandler.RegisterRoutes(v1)
		maintenanceHandler.RegisterRoutes(v1)
		metricsHandler.RegisterRoutes(v1)
		alertsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			registryHandler.RegisterProtectedRoutes(protected)
			historyHandler.RegisterProtectedRoutes(protected)
			predictionHandler.RegisterProtectedRoutes(protected)
			maintenanceHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
