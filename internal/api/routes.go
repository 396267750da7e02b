package api

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds the settings SetupRouter needs
type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
}

// @title Portfolio API
// @version 1.0
// @description Portfolio projects API with GitHub project sync
// @host localhost:4000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// SetupRouter configures the API routes
func SetupRouter(h *Handler, cfg RouterConfig, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", h.Health)

		projects := apiGroup.Group("/projects")
		{
			projects.GET("", h.ListProjects)

			admin := projects.Group("")
			admin.Use(AuthMiddleware([]byte(cfg.JWTSecret)))
			{
				admin.POST("", h.CreateProject)
				admin.POST("/sync", h.SyncProjects)
				admin.PUT("/:id", h.UpdateProject)
				admin.DELETE("/:id", h.DeleteProject)
			}
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
