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
	"github.com/igini-labs/chulseok/internal/sheets"
)

type ColumnController struct {
	store    db.Store
	provider sheets.ColumnProvider
}

func NewColumnController(store db.Store, provider sheets.ColumnProvider) *ColumnController {
	return &ColumnController{store: store, provider: provider}
}

func ColumnModule(store db.Store, provider sheets.ColumnProvider) api.Module {
	ctl := NewColumnController(store, provider)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/sheet-columns/:workspace", ctl.attendanceColumns)
		c.GET("/assignment-sheet-columns/:workspace", ctl.assignmentColumns)
	})
}

// GET /api/panel/sheet-columns/:workspace
func (cc *ColumnController) attendanceColumns(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return cc.columnsFor(ctx, "attendance")
}

// GET /api/panel/assignment-sheet-columns/:workspace
func (cc *ColumnController) assignmentColumns(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return cc.columnsFor(ctx, "assignment")
}

// reads the header row through the cache. A failed sheet read is not an
// error here: the editor still needs something to offer, so the fixed
// default range comes back instead.
func (cc *ColumnController) columnsFor(ctx *gin.Context, kind string) (any, *api.APIError) {
	name := ctx.Param("workspace")
	ws, err := cc.store.GetWorkspaceByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	if cached, ok := redis.GetColumnChoices(ctx.Request.Context(), name, kind); ok {
		return packets.ColumnsResponse{Columns: cached}, nil
	}

	sheetName := ws.SheetName
	if kind == "assignment" {
		sheetName = ws.AssignmentSheetName
	}

	// the configured schedule range decides which header cells matter;
	// GetScheduleConfig fills in the defaults when nothing is saved yet
	cfg, err := cc.store.GetScheduleConfig(name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load schedule config"}
	}
	startColumn := cfg.StartColumn
	if startColumn == "" {
		startColumn = model.DefaultStartColumn
	}
	endColumn := cfg.EndColumn
	if endColumn == "" {
		endColumn = model.DefaultEndColumn
	}

	choices, err := cc.provider.HeaderColumns(ctx.Request.Context(), ws, sheetName, startColumn, endColumn)
	if err != nil || len(choices) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("workspace", name).Str("kind", kind).
				Msg("falling back to default columns")
		}
		return packets.ColumnsResponse{Columns: model.DefaultColumnChoices()}, nil
	}

	redis.SetColumnChoices(ctx.Request.Context(), name, kind, choices)
	return packets.ColumnsResponse{Columns: choices}, nil
}
