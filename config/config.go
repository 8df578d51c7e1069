package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gatewood-events/ticketline/internal/models"
)

type Config struct {
	Port                 string        `envconfig:"PORT" default:"8080"`
	DatabaseURL          string        `envconfig:"DATABASE_URL"`
	StripeSecretKey      string        `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret  string        `envconfig:"STRIPE_WEBHOOK_SECRET"`
	AdminUsername        string        `envconfig:"ADMIN_USERNAME"`
	AdminPassword        string        `envconfig:"ADMIN_PASSWORD"`
	PublicBaseURL        string        `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	ShellURL             string        `envconfig:"SHELL_URL"`
	ShellRefreshInterval time.Duration `envconfig:"SHELL_REFRESH_INTERVAL" default:"15m"`
	TicketSecret         string        `envconfig:"TICKET_SECRET"`
	EventName            string        `envconfig:"EVENT_NAME" default:"Event Ticket"`
}

// LoadConfig reads configuration from the environment. DATABASE_URL is the
// only structurally optional value: without it the server runs in
// page-rendering-only mode.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Registration{}); err != nil {
		return nil, err
	}

	return db, nil
}
