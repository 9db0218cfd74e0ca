package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hotwellkz/app59/internal/config"
	"github.com/hotwellkz/app59/internal/janitor"
	"github.com/hotwellkz/app59/internal/models"
	"github.com/hotwellkz/app59/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title			app59 backend
// @description	The backend for the app59 client management. Lists, filters and edits clients, their categories and the payment history.
// @contact.url	https://github.com/hotwellkz/app59
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		err = models.ConnectPostgres(dsn)
	} else {
		// Create the directory the database file lives in
		err = os.MkdirAll(filepath.Dir(cfg.DBFile), os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		err = models.Connect(cfg.DBFile)
	}
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Purge soft-deleted resources in the background
	if cfg.PurgeSchedule != "" {
		j := janitor.New(cfg.PurgeMaxAge)
		err = j.Start(cfg.PurgeSchedule)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		defer j.Stop()
	}

	// The base URL of the API, used to generate resource links
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	url, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(url)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(r.Group("/"))

	log.Info().Msg("backend startup complete")

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
