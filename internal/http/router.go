package apphttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atish-2023/Ecommerce-Website/internal/config"
	"github.com/atish-2023/Ecommerce-Website/internal/http/handlers"
	"github.com/atish-2023/Ecommerce-Website/internal/http/middleware"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/checkout"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/users"
)

type Deps struct {
	Logger   *slog.Logger
	Cfg      config.Config
	Provider payments.Provider
	Orders   orders.Store
	Users    *users.Service
	Checkout *checkout.Service
	Webhooks *payments.WebhookService
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.ErrorHandler(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.Cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Ecommerce Backend with Stripe Integration")
	})

	ch := handlers.NewCheckoutHandler(d.Checkout, d.Provider)
	r.POST("/create-checkout-session", ch.CreateSession)
	r.GET("/checkout-session/:sessionId", ch.SessionStatus)

	oh := handlers.NewOrdersHandler(d.Orders)
	r.GET("/order/:sessionId", oh.GetBySession)
	r.GET("/orders", oh.List)

	wh := handlers.NewWebhookHandler(d.Logger, d.Provider, d.Webhooks)
	r.POST("/webhook", wh.Handle)

	ah := handlers.NewAuthHandler(d.Users)
	api := r.Group("/api/v1")
	api.POST("/auth/login", ah.Login)
	api.POST("/auth/register", ah.Register)
	api.GET("/auth/profile", middleware.RequireAuth(d.Cfg.JWTSecret), ah.Profile)
	api.GET("/users", ah.ListUsers)

	return r
}
