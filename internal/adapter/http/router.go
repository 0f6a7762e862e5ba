package http

import (
	"log/slog"

	"github.com/cfarhan/shopping/internal/adapter/http/middleware"
	"github.com/cfarhan/shopping/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(l *slog.Logger, authz *middleware.Authz,
	th *TokenHandler, ch *CartHandler, co *CheckoutHandler, ph *PaymentHandler) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.SignIn)

	v1 := r.Group("/v1", authz.RequireShopper())
	{
		v1.GET("/cart", ch.GetCart)
		v1.POST("/cart/add", ch.AddToCart)
		v1.PUT("/cart/update", ch.UpdateCart)
		v1.DELETE("/cart/remove", ch.RemoveFromCart)

		v1.POST("/checkout", co.Checkout)

		v1.GET("/stripe-config", ph.StripeConfig)
		v1.POST("/create-payment-intent", ph.CreateIntent)
		v1.POST("/confirm-payment", ph.ConfirmPayment)
	}

	return r
}
