// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/igini-labs/chulseok/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// workspace functions
	CreateWorkspace(w *model.Workspace) (model.Workspace, error)
	GetWorkspaceByName(name string) (*model.Workspace, error)
	ListWorkspaces() ([]model.Workspace, error)
	UpdateWorkspace(w *model.Workspace) error
	DeleteWorkspace(name string) error

	// schedule functions
	GetScheduleConfig(workspace string) (model.ScheduleConfig, error)
	ReplaceScheduleConfig(workspace string, cfg model.ScheduleConfig, notificationUserID string) error
	DeleteScheduleEntry(workspace string, index int) (model.ScheduleConfig, error)
	ToggleScheduleEnabled(workspace string) (bool, error)
	ListAllScheduleEntries() ([]model.ScheduleStatus, error)

	// duplicate directory functions
	GetDuplicateDirectory(workspace string) (model.DuplicateDirectory, error)
	ReplaceDuplicateDirectory(workspace string, dir model.DuplicateDirectory) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)         { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) CreateWorkspace(w *model.Workspace) (model.Workspace, error) {
	return CreateWorkspace(w)
}
func (s *pgStore) GetWorkspaceByName(name string) (*model.Workspace, error) {
	return GetWorkspaceByName(name)
}
func (s *pgStore) ListWorkspaces() ([]model.Workspace, error) { return ListWorkspaces() }
func (s *pgStore) UpdateWorkspace(w *model.Workspace) error   { return UpdateWorkspace(w) }
func (s *pgStore) DeleteWorkspace(name string) error          { return DeleteWorkspace(name) }

func (s *pgStore) GetScheduleConfig(workspace string) (model.ScheduleConfig, error) {
	return GetScheduleConfig(workspace)
}
func (s *pgStore) ReplaceScheduleConfig(workspace string, cfg model.ScheduleConfig, notificationUserID string) error {
	return ReplaceScheduleConfig(workspace, cfg, notificationUserID)
}
func (s *pgStore) DeleteScheduleEntry(workspace string, index int) (model.ScheduleConfig, error) {
	return DeleteScheduleEntry(workspace, index)
}
func (s *pgStore) ToggleScheduleEnabled(workspace string) (bool, error) {
	return ToggleScheduleEnabled(workspace)
}
func (s *pgStore) ListAllScheduleEntries() ([]model.ScheduleStatus, error) {
	return ListAllScheduleEntries()
}

func (s *pgStore) GetDuplicateDirectory(workspace string) (model.DuplicateDirectory, error) {
	return GetDuplicateDirectory(workspace)
}
func (s *pgStore) ReplaceDuplicateDirectory(workspace string, dir model.DuplicateDirectory) error {
	return ReplaceDuplicateDirectory(workspace, dir)
}
