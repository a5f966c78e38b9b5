// Package config provides configuration for the automation orchestrator.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the orchestrator configuration, loaded from the environment.
type Config struct {
	// Server settings
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:automate.db?cache=shared&mode=rwc"`

	// Document storage
	StorageBucket   string `env:"STORAGE_BUCKET" envDefault:"documents"`
	SignedURLSecret string `env:"SIGNED_URL_SECRET" envDefault:"dev-only-secret"`

	// Email delivery
	ResendAPIKey  string        `env:"RESEND_API_KEY"`
	ResendBaseURL string        `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`
	EmailFrom     string        `env:"EMAIL_FROM" envDefault:"formation@automate-formation.fr"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	SendTimeout   time.Duration `env:"SEND_TIMEOUT" envDefault:"30s"`

	// Training organization identity, stamped into generated documents.
	OrganismeNom       string `env:"ORGANISME_NOM" envDefault:"Automate Formation"`
	OrganismeSiret     string `env:"ORGANISME_SIRET"`
	OrganismeNDA       string `env:"ORGANISME_NDA"`
	OrganismeAdresse   string `env:"ORGANISME_ADRESSE"`
	OrganismeEmail     string `env:"ORGANISME_EMAIL"`
	OrganismeTelephone string `env:"ORGANISME_TELEPHONE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
