package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Nestly"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"nestly"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Lease struct {
		RenewalHorizonDays      int     `envconfig:"LEASE_RENEWAL_HORIZON_DAYS" default:"90"`
		RentIncreaseWarnPercent float64 `envconfig:"LEASE_RENT_INCREASE_WARN_PERCENT" default:"3"`
	}

	// Documents is the e-signature/document provider lease PDFs are fetched from.
	// APIToken is only sent to document URLs on BaseURL's scheme and host.
	Documents struct {
		BaseURL  string        `envconfig:"DOCUMENTS_BASE_URL" default:""`
		APIToken string        `envconfig:"DOCUMENTS_API_TOKEN" default:""`
		Timeout  time.Duration `envconfig:"DOCUMENTS_TIMEOUT" default:"30s"`
	}

	Jobs struct {
		RenewalDigestEnabled  bool   `envconfig:"JOBS_RENEWAL_DIGEST_ENABLED" default:"true"`
		RenewalDigestSchedule string `envconfig:"JOBS_RENEWAL_DIGEST_SCHEDULE" default:"0 7 * * *"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Lease.RenewalHorizonDays < 0 {
		return nil, fmt.Errorf("LEASE_RENEWAL_HORIZON_DAYS must not be negative, got %d", cfg.Lease.RenewalHorizonDays)
	}

	return &cfg, nil
}
