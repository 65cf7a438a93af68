package api

import (
	stdhttp "net/http"

	intconfig "traintrek/internal/config"
	h "traintrek/internal/http/handlers"
	"traintrek/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		trains := api.Group("/trains")
		trains.GET("/all", h.GetAllTrains)
		trains.GET("", h.SearchTrains)
		trains.GET("/:id", h.GetTrainByID)

		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetBookings)
		bookings.POST("/lucky-confirm", h.LuckyConfirm)
		bookings.POST("/cancel", h.CancelBooking)
		bookings.GET("/history", h.GetBookingHistory)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.GET("/:id/upgrade-history", h.GetUpgradeHistory)
		bookings.GET("/:id/e-ticket", h.GetBookingETicket)
	}

	h.SetRouter(r)
	return r
}
