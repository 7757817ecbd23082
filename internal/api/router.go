package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"facility-reservation-backend/config"
	"facility-reservation-backend/internal/logger"
	"facility-reservation-backend/internal/mw"
	"facility-reservation-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, notifier Notifier) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinLogger(), gin.Recovery(), mw.RequestID(), mw.CORS(cfg.Server.AllowedOrigins))

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	handler := NewHandler(s, cacheStore, webpushOptions, notifier)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	adminAuth := mw.AdminAuth(cfg.Server.AdminKey)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/health", handler.GetHealth)

		api.GET("/facilities", caching, handler.GetFacilities)
		api.POST("/facilities", adminAuth, handler.CreateFacility)
		api.GET("/facilities/:id", caching, handler.GetFacility)

		api.GET("/notices", caching, handler.GetNotices)
		api.POST("/notices", adminAuth, handler.CreateNotice)

		api.GET("/reservations/my", handler.GetMyReservations)
		api.GET("/reservations/public", handler.GetPublicReservations)
		api.POST("/reservations", handler.CreateReservation)

		api.GET("/settings/theme", handler.GetThemeSettings)
		api.POST("/settings/theme", adminAuth, handler.SetThemeSettings)

		admin := api.Group("/admin")
		admin.Use(adminAuth)
		{
			admin.GET("/calendar", handler.GetAdminCalendar)
			admin.GET("/logs", handler.GetAdminLogs)
			admin.POST("/logs", handler.AppendAdminLog)
			admin.PATCH("/reservations/:id/status", handler.UpdateReservationStatus)
			admin.PUT("/subscriptions", handler.PutSubscription)
			admin.DELETE("/subscriptions", handler.DeleteSubscription)
			admin.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
		}
	}

	return r
}
