package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(tcoHandler *handlers.TCOHandler, scenarioHandler *handlers.ScenarioHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(corsMiddleware())

	r.GET("/", handlers.Info)
	r.GET("/health", handlers.Health)
	r.GET("/healthz", handlers.Health)

	api := r.Group("/tco")
	api.POST("/calculate", tcoHandler.Calculate)
	api.POST("/compare", tcoHandler.Compare)
	api.POST("/breakeven", tcoHandler.Breakeven)

	sc := api.Group("/scenarios")
	sc.POST("", scenarioHandler.Create)
	sc.GET("", scenarioHandler.List)
	sc.GET("/stats", scenarioHandler.Stats)
	sc.POST("/export", scenarioHandler.Export)
	sc.GET("/:id", scenarioHandler.Get)
	sc.PATCH("/:id", scenarioHandler.Update)
	sc.DELETE("/:id", scenarioHandler.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
