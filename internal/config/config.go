package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Maintenance
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path        string
		BusyTimeout time.Duration // How long a write waits on a locked database (default: 5s)
	}
	Catalog struct {
		BaseURL   string
		APIKey    string // Optional Google Books API key, sent as the "key" query parameter
		UserAgent string
		RateLimit float64 // Searches per second, 0 disables limiting
		RateBurst int
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_busy_timeout", DefaultBusyTimeout)

	// Catalog defaults
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog_api_key", "")
	v.SetDefault("catalog_user_agent", "Bookhouse/1.0 (https://github.com/mrlokans/bookhouse)")
	v.SetDefault("catalog_rate_limit", 2)
	v.SetDefault("catalog_rate_burst", 5)

	// Maintenance defaults
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:        v.GetString("DATABASE_PATH"),
			BusyTimeout: v.GetDuration("DATABASE_BUSY_TIMEOUT"),
		},
		Catalog: Catalog{
			BaseURL:   v.GetString("CATALOG_BASE_URL"),
			APIKey:    v.GetString("CATALOG_API_KEY"),
			UserAgent: v.GetString("CATALOG_USER_AGENT"),
			RateLimit: v.GetFloat64("CATALOG_RATE_LIMIT"),
			RateBurst: v.GetInt("CATALOG_RATE_BURST"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
	}
}
