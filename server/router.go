package server

import (
	"net/http"
	"time"

	httpHandler "video-stats-updater/interfaces/http"
	"video-stats-updater/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	statsHandler httpHandler.IStatsHandler,
	healthHandler httpHandler.IHealthHandler,
	metricsHandler http.Handler,
	outcomeStream gin.HandlerFunc,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With",
			httpHandler.CredentialHeader, "X-Google-Credential",
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/", healthHandler.Root)
	router.GET("/healthz", healthHandler.Healthz)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	auth := middleware.PollerAuth(secretKey)
	router.POST("/", auth, statsHandler.UpdateStats)

	api := router.Group("api")
	api.Use(auth)
	api.POST("/stats", statsHandler.UpdateStats)
	if outcomeStream != nil {
		api.GET("/outcomes/stream", outcomeStream)
	}

	return router
}
