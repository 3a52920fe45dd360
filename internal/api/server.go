package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"menusync/internal/api/handlers"
	"menusync/internal/api/middleware"
	"menusync/internal/cache"
	"menusync/internal/config"
	"menusync/internal/menu"
	"menusync/internal/registry"
	"menusync/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	config *config.Config
	log    *logrus.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, log *logrus.Logger, providers *registry.Registry, c *cache.Cache, m *menu.Service, o *syncer.Orchestrator) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(c, providers, log)
	menuHandler := handlers.NewMenuHandler(m, log)
	syncHandler := handlers.NewSyncHandler(o, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.List)
			products.GET("/provider/:id", catalogHandler.ByProvider)
		}

		v1.GET("/providers/status", catalogHandler.Status)
		v1.GET("/stats", catalogHandler.Stats)

		menuRoutes := v1.Group("/menu")
		{
			menuRoutes.GET("", menuHandler.Current)
			menuRoutes.GET("/category/:name", menuHandler.ByCategory)
			menuRoutes.GET("/featured", menuHandler.Featured)
			menuRoutes.GET("/categories", menuHandler.Categories)
			menuRoutes.GET("/stats", menuHandler.Stats)
			menuRoutes.POST("/regenerate", menuHandler.Regenerate)
		}

		v1.GET("/search", menuHandler.Search)

		syncRoutes := v1.Group("/sync")
		{
			syncRoutes.POST("/provider/:id", syncHandler.SyncProvider)
			syncRoutes.POST("/all", syncHandler.SyncAll)
		}
	}

	return &Server{
		config: cfg,
		log:    log,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.server.Shutdown(ctx)
}

// Router exposes the gin engine for handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
