package packets

import "github.com/igini-labs/chulseok/internal/model"

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type CreateWorkspaceRequest struct {
	Name                string `json:"folder_name" binding:"required"`
	DisplayName         string `json:"name" binding:"required"`
	BotToken            string `json:"bot_token" binding:"required"`
	ChannelID           string `json:"channel_id"`
	AssignmentChannelID string `json:"assignment_channel_id"`
	SpreadsheetID       string `json:"spreadsheet_id"`
	SheetName           string `json:"sheet_name"`
	AssignmentSheetName string `json:"assignment_sheet_name"`
	NameColumn          string `json:"name_column"`
	StartRow            int    `json:"start_row"`
	EndColumn           string `json:"end_column"`
	NotificationUserID  string `json:"notification_user_id"`
}

type UpdateWorkspaceRequest struct {
	DisplayName         *string `json:"name"`
	BotToken            *string `json:"bot_token"`
	ChannelID           *string `json:"channel_id"`
	AssignmentChannelID *string `json:"assignment_channel_id"`
	SpreadsheetID       *string `json:"spreadsheet_id"`
	SheetName           *string `json:"sheet_name"`
	AssignmentSheetName *string `json:"assignment_sheet_name"`
	NameColumn          *string `json:"name_column"`
	StartRow            *int    `json:"start_row"`
	EndColumn           *string `json:"end_column"`
	NotificationUserID  *string `json:"notification_user_id"`
}

// SaveScheduleRequest replaces a workspace's schedule config wholesale.
type SaveScheduleRequest struct {
	Workspace           string                `json:"workspace" binding:"required"`
	Enabled             bool                  `json:"enabled"`
	Entries             []model.ScheduleEntry `json:"schedules"`
	CreateThreadMessage string                `json:"create_thread_message"`
	CompletionMessage   string                `json:"check_completion_message"`
	AutoColumnEnabled   bool                  `json:"auto_column_enabled"`
	StartColumn         string                `json:"start_column"`
	EndColumn           string                `json:"end_column"`
	NotificationUserID  string                `json:"notification_user_id"`
}

type DeleteScheduleEntryRequest struct {
	Workspace string `json:"workspace" binding:"required"`
	Index     *int   `json:"index" binding:"required"`
}

type ToggleScheduleRequest struct {
	Workspace string `json:"workspace" binding:"required"`
}
