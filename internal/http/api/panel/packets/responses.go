package packets

import "github.com/igini-labs/chulseok/internal/model"

type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ScheduleConfigResponse is the full config plus the workspace's
// notification target, which lives on the workspace row.
type ScheduleConfigResponse struct {
	Enabled             bool                  `json:"enabled"`
	Entries             []model.ScheduleEntry `json:"schedules"`
	CreateThreadMessage string                `json:"create_thread_message"`
	CompletionMessage   string                `json:"check_completion_message"`
	AutoColumnEnabled   bool                  `json:"auto_column_enabled"`
	StartColumn         string                `json:"start_column"`
	EndColumn           string                `json:"end_column"`
	NotificationUserID  string                `json:"notification_user_id"`
}

type ScheduleStatusResponse struct {
	Schedules []model.ScheduleStatus `json:"schedules"`
}

type SaveDirectoryResponse struct {
	Success       bool                     `json:"success"`
	ConvertedData model.DuplicateDirectory `json:"converted_data"`
}

type ColumnsResponse struct {
	Columns []model.ColumnChoice `json:"columns"`
}
