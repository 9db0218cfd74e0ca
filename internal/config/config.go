package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config collects the environment configuration of the backend process.
// Router settings (CORS_ALLOW_ORIGINS, ENABLE_PPROF) are read from the
// environment by the router itself.
type Config struct {
	// GinMode is the mode gin runs in, one of "release" and "debug".
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	// LogFormat is "json" or "human". An empty value defaults to
	// human readable logs in debug mode and JSON in release mode.
	LogFormat string `envconfig:"LOG_FORMAT"`

	// DBFile is the path of the SQLite database file. It is ignored
	// when DBHost is set.
	DBFile string `envconfig:"DB_FILE" default:"data/gorm.db"`

	// If DBHost is set, PostgreSQL is used instead of SQLite.
	DBHost     string `envconfig:"DB_HOST"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	// PurgeSchedule is the cron schedule for purging soft-deleted
	// resources. An empty value disables purging.
	PurgeSchedule string `envconfig:"PURGE_SCHEDULE" default:"@daily"`

	// PurgeMaxAge is the number of days a soft-deleted resource is
	// kept before the purge removes it.
	PurgeMaxAge int `envconfig:"PURGE_MAX_AGE" default:"30"`
}

// Load reads the configuration from a .env file and the environment.
// Environment variables take precedence, a missing .env file is not
// an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
