package endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/db"
	"github.com/igini-labs/chulseok/internal/http/api"
	"github.com/igini-labs/chulseok/internal/http/api/panel/packets"
	"github.com/igini-labs/chulseok/internal/model"
	"github.com/igini-labs/chulseok/internal/redis"
	"github.com/igini-labs/chulseok/internal/storage"
)

type WorkspaceController struct {
	store   db.Store
	storage storage.Storage
}

func NewWorkspaceController(store db.Store, st storage.Storage) *WorkspaceController {
	return &WorkspaceController{store: store, storage: st}
}

func WorkspaceModule(store db.Store, st storage.Storage) api.Module {
	ctl := NewWorkspaceController(store, st)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/workspaces", ctl.listWorkspaces)
		c.POST("/workspaces", ctl.createWorkspace)
		c.GET("/workspaces/:workspace", ctl.getWorkspace)
		c.PUT("/workspaces/:workspace", ctl.updateWorkspace)
		c.DELETE("/workspaces/:workspace", ctl.deleteWorkspace)

		// Google service-account key, multipart upload
		c.POST("/workspaces/:workspace/credentials", ctl.uploadCredentials)
	})
}

func (w *WorkspaceController) listWorkspaces(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := w.store.ListWorkspaces()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list workspaces"}
	}
	return list, nil
}

func (w *WorkspaceController) createWorkspace(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateWorkspaceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if existing, _ := w.store.GetWorkspaceByName(request.Name); existing != nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "workspace already exists"}
	}

	ws := model.Workspace{
		Name:                request.Name,
		DisplayName:         request.DisplayName,
		BotToken:            request.BotToken,
		ChannelID:           request.ChannelID,
		AssignmentChannelID: request.AssignmentChannelID,
		SpreadsheetID:       request.SpreadsheetID,
		SheetName:           request.SheetName,
		AssignmentSheetName: request.AssignmentSheetName,
		NameColumn:          request.NameColumn,
		StartRow:            request.StartRow,
		EndColumn:           request.EndColumn,
		NotificationUserID:  request.NotificationUserID,
	}
	created, err := w.store.CreateWorkspace(&ws)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create workspace"}
	}
	return created, nil
}

func (w *WorkspaceController) getWorkspace(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	ws, err := w.store.GetWorkspaceByName(ctx.Param("workspace"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}
	return ws, nil
}

func (w *WorkspaceController) updateWorkspace(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("workspace")
	ws, err := w.store.GetWorkspaceByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	var request packets.UpdateWorkspaceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.DisplayName != nil {
		ws.DisplayName = *request.DisplayName
	}
	if request.BotToken != nil {
		ws.BotToken = *request.BotToken
	}
	if request.ChannelID != nil {
		ws.ChannelID = *request.ChannelID
	}
	if request.AssignmentChannelID != nil {
		ws.AssignmentChannelID = *request.AssignmentChannelID
	}
	if request.SpreadsheetID != nil {
		ws.SpreadsheetID = *request.SpreadsheetID
	}
	if request.SheetName != nil {
		ws.SheetName = *request.SheetName
	}
	if request.AssignmentSheetName != nil {
		ws.AssignmentSheetName = *request.AssignmentSheetName
	}
	if request.NameColumn != nil {
		ws.NameColumn = *request.NameColumn
	}
	if request.StartRow != nil {
		ws.StartRow = *request.StartRow
	}
	if request.EndColumn != nil {
		ws.EndColumn = *request.EndColumn
	}
	if request.NotificationUserID != nil {
		ws.NotificationUserID = *request.NotificationUserID
	}

	if err := w.store.UpdateWorkspace(ws); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update workspace"}
	}

	// sheet binding may have changed, so cached headers are stale
	redis.InvalidateColumnChoices(ctx.Request.Context(), name)
	return ws, nil
}

func (w *WorkspaceController) deleteWorkspace(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("workspace")
	if _, err := w.store.GetWorkspaceByName(name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	if err := w.store.DeleteWorkspace(name); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete workspace"}
	}
	if err := w.storage.DeleteCredentials(name); err != nil {
		log.Warn().Err(err).Str("workspace", name).Msg("failed to remove credentials file")
	}
	redis.InvalidateColumnChoices(ctx.Request.Context(), name)
	return gin.H{"success": true}, nil
}

func (w *WorkspaceController) uploadCredentials(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("workspace")
	ws, err := w.store.GetWorkspaceByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	fileHeader, err := ctx.FormFile("credentials")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "credentials file is required"}
	}

	path, err := w.storage.SaveCredentials(name, fileHeader)
	if err != nil {
		log.Error().Err(err).Str("workspace", name).Msg("failed to store credentials")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store credentials"}
	}

	ws.CredentialsPath = path
	if err := w.store.UpdateWorkspace(ws); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update workspace"}
	}
	redis.InvalidateColumnChoices(ctx.Request.Context(), name)
	return gin.H{"success": true}, nil
}
