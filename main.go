package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/omarmohsen179/advanced-habit-tracker/cache"
	"github.com/omarmohsen179/advanced-habit-tracker/config"
	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/handlers"
	"github.com/omarmohsen179/advanced-habit-tracker/middleware"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/services"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	utils.InitLogger(cfg.LogFile)
	defer utils.Logger.Sync()
	utils.InitMetrics()

	utils.Logger.Info("starting_application")

	if err := db.Connect(cfg.DSN()); err != nil {
		utils.Logger.Fatal("db_connection_failed", zap.Error(err))
	}
	if err := db.DB.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Habit{},
		&models.HabitCompletion{},
	); err != nil {
		utils.Logger.Fatal("migration_failed", zap.Error(err))
	}

	// Redis is best-effort: without it caching degrades to passthrough and
	// refresh-token revocation only holds within this process.
	if err := cache.InitRedis(cfg.RedisAddr(), utils.Logger); err != nil {
		utils.Logger.Warn("running_without_redis", zap.Error(err))
	}
	defer cache.Close()

	services.ConfigureAuth(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	if cfg.CSRFEnabled {
		r.Use(middleware.CSRFProtection([]byte(cfg.CSRFKey)))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r)

	startServer(r, cfg.Port)
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting_http_server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server_forced_shutdown", zap.Error(err))
	}

	utils.Logger.Info("server_stopped")
}
