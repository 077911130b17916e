package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TronTram/TimeTracker-sub003/internal/handler"
	"github.com/TronTram/TimeTracker-sub003/internal/middleware"
	"github.com/TronTram/TimeTracker-sub003/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	prefsHandler *handler.PreferencesHandler,
	monitoringHandler *handler.MonitoringHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/user", middleware.Auth(authService), authHandler.CurrentUser)

	prefs := api.Group("/preferences")
	prefs.Use(middleware.Auth(authService))
	prefs.GET("", prefsHandler.Get)
	prefs.PUT("", prefsHandler.Update)

	monitoring := api.Group("/monitoring")
	monitoring.POST("/performance", monitoringHandler.RecordPerformance)
	monitoring.GET("/performance", monitoringHandler.PerformanceStats)

	return engine
}
