package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/gatewood-events/ticketline/config"
	"github.com/gatewood-events/ticketline/internal/handlers"
	"github.com/gatewood-events/ticketline/internal/middleware"
	"github.com/gatewood-events/ticketline/internal/pageshell"
	"github.com/gatewood-events/ticketline/internal/payments"
	"github.com/gatewood-events/ticketline/internal/registration"
	"github.com/gatewood-events/ticketline/internal/store"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	shell := pageshell.NewProvider(cfg.ShellURL, cfg.ShellRefreshInterval)
	shell.Start()

	// Without a database the server still renders pages, but the purchase,
	// webhook, and admin surfaces are not registered at all.
	var svc *registration.Service
	if cfg.HasDatabase() {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %v", err)
		}
		stripeClient := payments.NewStripeClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		svc = registration.NewService(
			store.NewRegistrationStore(db),
			stripeClient,
			cfg.PublicBaseURL,
			cfg.EventName,
			cfg.TicketSecret,
		)
	} else {
		logrus.Warn("DATABASE_URL not set, running in page-rendering-only mode")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.LoadHTMLGlob("templates/*.tmpl")

	setupRoutes(r, cfg, svc, shell)

	return r.Run(":" + cfg.Port)
}

func setupRoutes(r *gin.Engine, cfg *config.Config, svc *registration.Service, shell *pageshell.Provider) {
	r.Use(middleware.ShellMiddleware(shell))
	if svc != nil {
		r.Use(middleware.RegistrationMiddleware(svc))
	}

	r.GET("/", handlers.Index)
	r.GET("/success", handlers.Success)
	r.GET("/cancel", handlers.Cancel)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if svc == nil {
		return
	}

	r.POST("/create-checkout-session", handlers.CreateCheckoutSession)
	r.POST("/webhook", handlers.Webhook)

	if svc.TicketingEnabled() {
		r.GET("/ticket/qr", handlers.TicketQR)
	}

	if cfg.AdminUsername == "" {
		logrus.Warn("ADMIN_USERNAME not set, admin routes disabled")
		return
	}

	admin := r.Group("/admin", gin.BasicAuth(gin.Accounts{
		cfg.AdminUsername: cfg.AdminPassword,
	}))
	{
		admin.GET("", handlers.AdminListing)
		if svc.TicketingEnabled() {
			admin.POST("/check-in", handlers.AdminCheckIn)
		}
	}
}
