package main

import (
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/config"
	"github.com/igini-labs/chulseok/internal/storage"
)

// InitStorage selects and returns the configured storage backend
func InitStorage(cfg *config.Config) storage.Storage {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesAccess,
			cfg.SpacesSecret,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("bucket", cfg.SpacesBucket).Msg("using Spaces credential storage")
		return spacesStorage
	}

	log.Info().Str("dir", cfg.CredentialsDir).Msg("using local credential storage")
	return storage.NewLocalStorage(cfg.CredentialsDir)
}
