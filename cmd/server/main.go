package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/config"
	"github.com/igini-labs/chulseok/internal/db"
	"github.com/igini-labs/chulseok/internal/notify"
	"github.com/igini-labs/chulseok/internal/redis"
	"github.com/igini-labs/chulseok/internal/sheets"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	}

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.MQTTBrokerURL != "" {
		mqttNotifier, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, "chulseok-panel")
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt init failed")
		}
		defer mqttNotifier.Close()
		notifier = mqttNotifier
	}

	store := db.NewStore()
	storageSystem := InitStorage(cfg)
	columnProvider := sheets.NewGoogleSheetsProvider()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, cfg, store, storageSystem, notifier, columnProvider)

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
