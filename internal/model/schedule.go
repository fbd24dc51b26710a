package model

// Schedule day keys as they appear in config payloads.
var WeekDays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func IsWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// Defaults applied when a stored config is missing the optional fields.
const (
	DefaultStartColumn = "H"
	DefaultEndColumn   = "O"

	DefaultCreateThreadMessage = "@channel\n📢 출석 스레드입니다.\n\n\"이름/출석했습니다\" 형식으로 댓글 달아주세요!"
	DefaultCompletionMessage   = "[자동] 출석 체크를 완료했습니다.\n출석: {present}명 / 미출석: {absent}명"
)

// ScheduleEntry is one weekly run rule: which day, when the attendance
// thread is created, when attendance is tallied, and which sheet column
// the tally writes to.
type ScheduleEntry struct {
	Day        string `db:"day" json:"day"`
	CreateTime string `db:"create_time" json:"create_thread_time"`
	CheckTime  string `db:"check_time" json:"check_attendance_time"`
	Column     string `db:"column_letter" json:"check_attendance_column"`
}

// Complete reports whether all four fields are filled in. Incomplete
// entries are kept in editor working copies but never persisted.
func (e ScheduleEntry) Complete() bool {
	return e.Day != "" && e.CreateTime != "" && e.CheckTime != "" && e.Column != ""
}

// ScheduleConfig is the full per-workspace schedule record. A save
// replaces the server copy wholesale.
type ScheduleConfig struct {
	Enabled             bool            `json:"enabled"`
	Entries             []ScheduleEntry `json:"schedules"`
	CreateThreadMessage string          `json:"create_thread_message"`
	CompletionMessage   string          `json:"check_completion_message"`
	AutoColumnEnabled   bool            `json:"auto_column_enabled"`
	StartColumn         string          `json:"start_column"`
	EndColumn           string          `json:"end_column"`
}

// ScheduleStatus is one row of the aggregate status view: a single
// entry flattened together with its workspace.
type ScheduleStatus struct {
	WorkspaceName string `json:"workspace_name"`
	FolderName    string `json:"folder_name"`
	Day           string `json:"day"`
	CreateTime    string `json:"create_thread_time"`
	CheckTime     string `json:"check_attendance_time"`
	Column        string `json:"check_attendance_column"`
	Enabled       bool   `json:"enabled"`
}

// ColumnChoice is one selectable sheet column for schedule entries.
type ColumnChoice struct {
	Letter string `json:"letter"`
	Name   string `json:"name"`
}

// DefaultColumnChoices is the fixed fallback offered when the sheet
// header cannot be read.
func DefaultColumnChoices() []ColumnChoice {
	letters := []string{"H", "I", "J", "K", "L", "M", "N", "O", "P"}
	out := make([]ColumnChoice, 0, len(letters))
	for _, l := range letters {
		out = append(out, ColumnChoice{Letter: l})
	}
	return out
}
