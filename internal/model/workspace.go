package model

import "time"

// Workspace is one configured integration unit: a bot token, the channels
// it posts to, and the spreadsheet it writes attendance into.
type Workspace struct {
	ID                  int       `db:"id" json:"id"`
	Name                string    `db:"name" json:"folder_name"`
	DisplayName         string    `db:"display_name" json:"name"`
	BotToken            string    `db:"bot_token" json:"-"`
	ChannelID           string    `db:"channel_id" json:"channel_id"`
	AssignmentChannelID string    `db:"assignment_channel_id" json:"assignment_channel_id"`
	SpreadsheetID       string    `db:"spreadsheet_id" json:"spreadsheet_id"`
	SheetName           string    `db:"sheet_name" json:"sheet_name"`
	AssignmentSheetName string    `db:"assignment_sheet_name" json:"assignment_sheet_name"`
	NameColumn          string    `db:"name_column" json:"name_column"`
	StartRow            int       `db:"start_row" json:"start_row"`
	EndColumn           string    `db:"end_column" json:"end_column"`
	NotificationUserID  string    `db:"notification_user_id" json:"notification_user_id"`
	CredentialsPath     string    `db:"credentials_path" json:"-"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}
