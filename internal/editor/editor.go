// Package editor holds the client-side working-copy editors behind the
// control panel: the per-workspace schedule list, the duplicate-name
// directory, and modal focus containment. Each editor owns exactly one
// working copy of server state; transport goes through SyncClient.
package editor

import (
	"context"
	"errors"

	"github.com/igini-labs/chulseok/internal/model"
)

// SheetKind selects which sheet's columns a choice list describes.
type SheetKind string

const (
	SheetAttendance SheetKind = "attendance"
	SheetAssignment SheetKind = "assignment"
)

// SyncClient is the persistence collaborator the editors talk to. The
// HTTP implementation lives in pkg/client.
type SyncClient interface {
	GetScheduleConfig(ctx context.Context, workspace string) (model.ScheduleConfig, string, error)
	PutScheduleConfig(ctx context.Context, workspace string, cfg model.ScheduleConfig, notificationUserID string) error
	GetColumnChoices(ctx context.Context, workspace string, kind SheetKind) ([]model.ColumnChoice, error)
	GetDuplicateDirectory(ctx context.Context, workspace string) (model.DuplicateDirectory, error)
	ResolveAndPutDuplicateDirectory(ctx context.Context, workspace string, dir model.DuplicateDirectory) (model.DuplicateDirectory, error)
	DeleteScheduleEntry(ctx context.Context, workspace string, entryIndex int) error
	ToggleScheduleEnabled(ctx context.Context, workspace string) error
}

var (
	// ErrNotLoaded means Save was called before Load populated the
	// working copy; there is nothing meaningful to serialize yet.
	ErrNotLoaded = errors.New("editor: not loaded")

	// ErrSaveInFlight means a save is already outstanding for this
	// editor instance.
	ErrSaveInFlight = errors.New("editor: save already in flight")
)
