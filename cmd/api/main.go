package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sc0723/PantryPlanner/internal/api"
	"github.com/sc0723/PantryPlanner/internal/auth"
	"github.com/sc0723/PantryPlanner/internal/config"
	"github.com/sc0723/PantryPlanner/internal/db"
	"github.com/sc0723/PantryPlanner/internal/grocery"
	"github.com/sc0723/PantryPlanner/internal/ingredient"
	"github.com/sc0723/PantryPlanner/internal/logging"
	"github.com/sc0723/PantryPlanner/internal/mealplan"
	"github.com/sc0723/PantryPlanner/internal/platform/spoonacular"
)

func main() {
	// Local development reads secrets from .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(conn); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	spoonClient := spoonacular.NewClient(
		cfg.Spoonacular.APIKey,
		cfg.Spoonacular.BaseURL,
		time.Duration(cfg.Spoonacular.TimeoutSeconds)*time.Second,
	)

	userStore := auth.NewPostgresUserStore(conn)
	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authSvc := auth.NewService(userStore, tokens)

	planSvc := mealplan.NewService(userStore, mealplan.NewPostgresStore(conn))
	aggregator := grocery.NewAggregator(
		planSvc,
		ingredient.NewPostgresStore(conn),
		spoonClient,
		ingredient.DefaultAliases(),
		logger,
	)

	handler := api.NewHandler(authSvc, spoonClient, planSvc, aggregator, logger)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.Routes(r, tokens)

	logger.Info("pantryplanner api listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
