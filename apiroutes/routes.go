package apiroutes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mailio/go-mailio-alias-server/api"
	"github.com/mailio/go-mailio-alias-server/api/interceptors"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/metrics"
	"github.com/mailio/go-mailio-alias-server/repository"
	"github.com/mailio/go-mailio-alias-server/services"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// REST API routes
func ConfigRoutes(router *gin.Engine, dbSelector *repository.CouchDBSelector, env *types.Environment) *gin.Engine {
	// init metrics
	if global.Conf.Prometheus.Enabled {

		metrics.InitMetrics()

		authorized := router.Group("/metrics", gin.BasicAuth(gin.Accounts{
			global.Conf.Prometheus.Username: global.Conf.Prometheus.Password,
		}))

		authorized.GET("", gin.WrapH(promhttp.Handler()))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// SERVICE definitions
	keyService := services.NewKeyService(dbSelector, env)
	statsService := services.NewStatisticsService(dbSelector, env)
	aliasService := services.NewAliasService(keyService, statsService)

	// API definitions
	healthCheckApi := api.NewHealthCheckAPI()
	jwksApi := api.NewJwksAPI()
	aliasApi := api.NewAliasAPI(aliasService)
	keyRingApi := api.NewKeyRingAPI(keyService)
	statisticsApi := api.NewStatisticsAPI(statsService)
	webhookApi := api.NewMailReceiveWebhook(aliasService, env)

	// PUBLIC ROOT API
	rootPublicApi := router.Group("/", metrics.MetricsMiddleware())
	{
		rootPublicApi.GET("/api/v1/healthcheck", healthCheckApi.HealthCheck)
		rootPublicApi.GET("/.well-known/jwks.json", jwksApi.Jwks)
	}

	// ESP webhooks (authenticated by their webhook key, not by JWS)
	webhooks := router.Group("/webhook", metrics.MetricsMiddleware(), interceptors.RateLimitMiddleware())
	{
		for _, fw := range global.Conf.Forwarders {
			path := strings.TrimPrefix(fw.Webhookurl, "/webhook")
			if path == "" {
				global.Logger.Log("error", "forwarder webhook url must start with /webhook", "url", fw.Webhookurl)
				continue
			}
			webhooks.POST(path, webhookApi.ReceiveMail)
		}
	}

	// ADMIN API
	adminApi := router.Group("/api", metrics.MetricsMiddleware(), interceptors.RateLimitMiddleware(), interceptors.JWSMiddleware())
	{
		adminApi.POST("/v1/aliaskey", keyRingApi.CreateKey)
		adminApi.GET("/v1/aliaskey", keyRingApi.ListKeys)
		adminApi.GET("/v1/aliaskey/:id", keyRingApi.GetKey)
		adminApi.PUT("/v1/aliaskey/:id/disable", keyRingApi.DisableKey)
		adminApi.DELETE("/v1/aliaskey/:id", keyRingApi.DeleteKey)
		adminApi.POST("/v1/alias", aliasApi.GenerateAlias)
		adminApi.POST("/v1/alias/validate", aliasApi.ValidateAlias)
		adminApi.GET("/v1/statistics/:day", statisticsApi.GetStatistics)
	}

	return router
}
