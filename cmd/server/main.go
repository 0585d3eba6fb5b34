package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/api"
	"github.com/hackclub/shipwrecked-sub000/internal/auth"
	"github.com/hackclub/shipwrecked-sub000/internal/config"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

type serverApp struct {
	logger      internal.Logger
	projectRepo storage.ProjectRepository
	userRepo    storage.UserRepository
	orderRepo   storage.OrderRepository
}

func (a *serverApp) Logger() internal.Logger                { return a.logger }
func (a *serverApp) ProjectRepo() storage.ProjectRepository { return a.projectRepo }
func (a *serverApp) UserRepo() storage.UserRepository       { return a.userRepo }
func (a *serverApp) OrderRepo() storage.OrderRepository     { return a.orderRepo }

var _ api.App = (*serverApp)(nil)

func main() {
	cfg := config.Load()

	var zl *zap.Logger
	var err error
	if cfg.Env == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()
	logger := internal.NewZapLogger(zl.Sugar())

	var projectRepo storage.ProjectRepository
	var userRepo storage.UserRepository
	var orderRepo storage.OrderRepository
	switch cfg.DBType {
	case "postgres":
		projectRepo, userRepo, orderRepo, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
	default:
		if _, statErr := os.Stat("data"); os.IsNotExist(statErr) {
			_ = os.Mkdir("data", 0755)
		}
		projectRepo, userRepo, orderRepo, err = storage.NewFileRepositories(cfg.FileUsers, cfg.FileProjects, cfg.FileOrders, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(userRepo, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthURL, logger)
	}

	app := &serverApp{
		logger:      logger,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(api.RateLimitMiddleware(cfg.RateLimitRPS))

	// Protected routes
	r.Use(auth.AuthMiddleware(provider, cfg))
	r.POST("/projects", api.PostProject(app))
	r.GET("/projects", api.GetProjects(app))
	r.POST("/projects/:id/links", api.PostProjectLink(app))
	r.GET("/progress", api.GetProgress(app))
	r.GET("/leaderboard", api.GetLeaderboard(app))
	r.POST("/api/shop/orders", api.PostOrder(app))
	r.GET("/api/shop/orders", api.GetOrders(app))

	admin := r.Group("/api/admin", auth.RequireAdmin())
	admin.PUT("/projects/:id/override", api.PutHoursOverride(app))
	admin.PUT("/projects/:id/status", api.PutProjectStatus(app))
	admin.POST("/adjustments", api.PostShellAdjustment(app))

	logger.Infof("Server running on :8088 (env=%s, storage=%s)", cfg.Env, cfg.DBType)
	if err := r.Run(":8088"); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
