package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/igini-labs/chulseok/internal/config"
	"github.com/igini-labs/chulseok/internal/db"
	"github.com/igini-labs/chulseok/internal/http/api"
	panelapi "github.com/igini-labs/chulseok/internal/http/api/panel/endpoints"
	"github.com/igini-labs/chulseok/internal/notify"
	"github.com/igini-labs/chulseok/internal/resolve"
	"github.com/igini-labs/chulseok/internal/sheets"
	"github.com/igini-labs/chulseok/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	store db.Store,
	storageSystem storage.Storage,
	notifier notify.Notifier,
	columnProvider sheets.ColumnProvider,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	hub := panelapi.NewStatusHub()
	resolver := resolve.NewSlackResolver()

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/panel",
		Auth:   false,
	},
		panelapi.AuthPublicModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/panel",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		panelapi.AuthSessionModule(cfg.JWTSecret, store),
		panelapi.WorkspaceModule(store, storageSystem),
		panelapi.ScheduleModule(store, notifier, hub),
		panelapi.DirectoryModule(store, resolver),
		panelapi.ColumnModule(store, columnProvider),
	)

	// browsers cannot set an Authorization header on websocket dials,
	// so the status feed mounts outside the JWT group
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/panel",
	},
		panelapi.StatusModule(store, hub),
	)
}
