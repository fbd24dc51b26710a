package endpoints

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/db"
	"github.com/igini-labs/chulseok/internal/http/api"
	"github.com/igini-labs/chulseok/internal/http/api/panel/packets"
	"github.com/igini-labs/chulseok/internal/model"
	"github.com/igini-labs/chulseok/internal/resolve"
)

type DirectoryController struct {
	store    db.Store
	resolver resolve.Resolver
}

func NewDirectoryController(store db.Store, resolver resolve.Resolver) *DirectoryController {
	return &DirectoryController{store: store, resolver: resolver}
}

func DirectoryModule(store db.Store, resolver resolve.Resolver) api.Module {
	ctl := NewDirectoryController(store, resolver)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/duplicate-names/:workspace", ctl.getDirectory)
		c.POST("/duplicate-names/:workspace", ctl.saveDirectory)
	})
}

// GET /api/panel/duplicate-names/:workspace
func (d *DirectoryController) getDirectory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("workspace")
	if _, err := d.store.GetWorkspaceByName(name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	dir, err := d.store.GetDuplicateDirectory(name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load duplicate names"}
	}
	return dir, nil
}

// POST /api/panel/duplicate-names/:workspace
//
// Every email in the submitted directory is resolved to a messenger user
// ID before anything is written. A single unresolvable email fails the
// whole save and the stored directory stays as it was.
func (d *DirectoryController) saveDirectory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("workspace")
	ws, err := d.store.GetWorkspaceByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "workspace not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
	}

	var dir model.DuplicateDirectory
	if err := ctx.ShouldBindJSON(&dir); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	dir.Prune()

	groupNames := make([]string, 0, len(dir))
	for group := range dir {
		groupNames = append(groupNames, group)
	}
	sort.Strings(groupNames)

	converted := model.DuplicateDirectory{}
	var details []string
	for _, group := range groupNames {
		people := dir[group]
		out := make([]model.PersonRecord, 0, len(people))
		for _, p := range people {
			p.Email = strings.TrimSpace(p.Email)
			if p.Email == "" || p.DisplayName == "" || p.SheetRow < 1 {
				details = append(details, fmt.Sprintf("%s: incomplete record", group))
				continue
			}
			userID, err := d.resolver.ResolveEmail(ctx.Request.Context(), ws.BotToken, p.Email)
			if err != nil {
				details = append(details, fmt.Sprintf("%s (%s): %v", group, p.Email, err))
				continue
			}
			p.ResolvedID = userID
			out = append(out, p)
		}
		converted[group] = out
	}

	if len(details) > 0 {
		log.Warn().Str("workspace", name).Int("failures", len(details)).
			Msg("duplicate-name resolution failed")
		return nil, &api.APIError{
			Code:    http.StatusBadRequest,
			Message: "failed to resolve some emails",
			Details: details,
		}
	}

	if err := d.store.ReplaceDuplicateDirectory(name, converted); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to save duplicate names"}
	}

	return packets.SaveDirectoryResponse{Success: true, ConvertedData: converted}, nil
}
