package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/db"
	"github.com/igini-labs/chulseok/internal/http/api"
	"github.com/igini-labs/chulseok/internal/http/api/panel/packets"
	"github.com/igini-labs/chulseok/internal/model"
	"github.com/igini-labs/chulseok/internal/notify"
)

type ScheduleController struct {
	store    db.Store
	notifier notify.Notifier
	hub      *StatusHub
}

func NewScheduleController(store db.Store, notifier notify.Notifier, hub *StatusHub) *ScheduleController {
	return &ScheduleController{store: store, notifier: notifier, hub: hub}
}

func ScheduleModule(store db.Store, notifier notify.Notifier, hub *StatusHub) api.Module {
	ctl := NewScheduleController(store, notifier, hub)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedule/:workspace", ctl.getSchedule)
		c.POST("/schedule", ctl.saveSchedule)
		c.GET("/schedules/all", ctl.listAllSchedules)
		c.POST("/schedule/delete", ctl.deleteEntry)
		c.POST("/schedule/toggle", ctl.toggleEnabled)
	})
}

// GET /api/panel/schedule/:workspace
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("workspace")
	ws, err := s.store.GetWorkspaceByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	cfg, err := s.store.GetScheduleConfig(name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load schedule"}
	}

	return packets.ScheduleConfigResponse{
		Enabled:             cfg.Enabled,
		Entries:             cfg.Entries,
		CreateThreadMessage: cfg.CreateThreadMessage,
		CompletionMessage:   cfg.CompletionMessage,
		AutoColumnEnabled:   cfg.AutoColumnEnabled,
		StartColumn:         cfg.StartColumn,
		EndColumn:           cfg.EndColumn,
		NotificationUserID:  ws.NotificationUserID,
	}, nil
}

// POST /api/panel/schedule
func (s *ScheduleController) saveSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.SaveScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := s.store.GetWorkspaceByName(request.Workspace); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	entries := make([]model.ScheduleEntry, 0, len(request.Entries))
	for _, e := range request.Entries {
		if !e.Complete() {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "schedule entry is missing fields"}
		}
		if !model.IsWeekDay(e.Day) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid day: " + e.Day}
		}
		e.Column = strings.ToUpper(strings.TrimSpace(e.Column))
		entries = append(entries, e)
	}

	cfg := model.ScheduleConfig{
		Enabled:             request.Enabled,
		Entries:             entries,
		CreateThreadMessage: request.CreateThreadMessage,
		CompletionMessage:   request.CompletionMessage,
		AutoColumnEnabled:   request.AutoColumnEnabled,
		StartColumn:         request.StartColumn,
		EndColumn:           request.EndColumn,
	}
	if cfg.CreateThreadMessage == "" {
		cfg.CreateThreadMessage = model.DefaultCreateThreadMessage
	}
	if cfg.CompletionMessage == "" {
		cfg.CompletionMessage = model.DefaultCompletionMessage
	}
	if cfg.StartColumn == "" {
		cfg.StartColumn = model.DefaultStartColumn
	}
	if cfg.EndColumn == "" {
		cfg.EndColumn = model.DefaultEndColumn
	}

	if err := s.store.ReplaceScheduleConfig(request.Workspace, cfg, request.NotificationUserID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to save schedule"}
	}

	s.afterChange(request.Workspace)
	return gin.H{"success": true}, nil
}

// GET /api/panel/schedules/all
func (s *ScheduleController) listAllSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rows, err := s.store.ListAllScheduleEntries()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}
	if rows == nil {
		rows = []model.ScheduleStatus{}
	}
	return packets.ScheduleStatusResponse{Schedules: rows}, nil
}

// POST /api/panel/schedule/delete
func (s *ScheduleController) deleteEntry(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.DeleteScheduleEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	cfg, err := s.store.DeleteScheduleEntry(request.Workspace, *request.Index)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// stale index from a concurrent edit
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "schedule entry not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to delete schedule entry"}
	}

	s.afterChange(request.Workspace)
	return packets.ScheduleConfigResponse{
		Enabled:             cfg.Enabled,
		Entries:             cfg.Entries,
		CreateThreadMessage: cfg.CreateThreadMessage,
		CompletionMessage:   cfg.CompletionMessage,
		AutoColumnEnabled:   cfg.AutoColumnEnabled,
		StartColumn:         cfg.StartColumn,
		EndColumn:           cfg.EndColumn,
	}, nil
}

// POST /api/panel/schedule/toggle
func (s *ScheduleController) toggleEnabled(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ToggleScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	enabled, err := s.store.ToggleScheduleEnabled(request.Workspace)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to toggle schedule"}
	}

	s.afterChange(request.Workspace)
	return gin.H{"success": true, "enabled": enabled}, nil
}

// tells the bot runner to reload and pushes the fresh status list to
// websocket watchers.
func (s *ScheduleController) afterChange(workspace string) {
	if err := s.notifier.ScheduleChanged(workspace); err != nil {
		log.Warn().Err(err).Str("workspace", workspace).Msg("schedule reload notify failed")
	}
	if s.hub != nil {
		if rows, err := s.store.ListAllScheduleEntries(); err == nil {
			s.hub.Broadcast(rows)
		}
	}
}
