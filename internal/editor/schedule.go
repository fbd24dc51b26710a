package editor

import (
	"context"
	"strings"

	"github.com/igini-labs/chulseok/internal/editor/collection"
	"github.com/igini-labs/chulseok/internal/model"
)

// ScheduleContext distinguishes the two schedule editor instances. The
// create context lives on the main panel and carries an operator-set
// enabled toggle; the edit context lives in the edit modal and derives
// enabled from whether any complete entries exist at save time.
type ScheduleContext int

const (
	ContextCreate ScheduleContext = iota
	ContextEdit
)

// ScheduleEditor builds and persists one workspace's ScheduleConfig.
// One instance per open context; discard it when the context closes.
type ScheduleEditor struct {
	client    SyncClient
	context   ScheduleContext
	workspace string

	entries *collection.Editor[model.ScheduleEntry]
	columns []model.ColumnChoice

	Enabled             bool
	CreateThreadMessage string
	CompletionMessage   string
	AutoColumnEnabled   bool
	StartColumn         string
	EndColumn           string
	NotificationUserID  string

	// OnStatusRefresh is invoked after a successful save so the owner
	// can reload the aggregate status view.
	OnStatusRefresh func()

	loaded bool
	saving bool
}

func NewScheduleEditor(client SyncClient, workspace string, sc ScheduleContext) *ScheduleEditor {
	return &ScheduleEditor{
		client:    client,
		context:   sc,
		workspace: workspace,
		entries:   collection.New[model.ScheduleEntry](),
	}
}

// Load fetches the stored config plus the workspace's column choices and
// populates the working copy, filling documented defaults for fields the
// server left blank. Column choices are cached on the editor so entries
// added later offer the same dropdown.
func (e *ScheduleEditor) Load(ctx context.Context) error {
	cfg, notifyID, err := e.client.GetScheduleConfig(ctx, e.workspace)
	if err != nil {
		return err
	}

	e.Enabled = cfg.Enabled
	e.CreateThreadMessage = withDefault(cfg.CreateThreadMessage, model.DefaultCreateThreadMessage)
	e.CompletionMessage = withDefault(cfg.CompletionMessage, model.DefaultCompletionMessage)
	e.AutoColumnEnabled = cfg.AutoColumnEnabled
	e.StartColumn = withDefault(cfg.StartColumn, model.DefaultStartColumn)
	e.EndColumn = withDefault(cfg.EndColumn, model.DefaultEndColumn)
	e.NotificationUserID = notifyID

	e.entries = collection.New[model.ScheduleEntry]()
	for _, entry := range cfg.Entries {
		e.entries.Append(entry)
	}

	choices, err := e.client.GetColumnChoices(ctx, e.workspace, SheetAttendance)
	if err != nil || len(choices) == 0 {
		choices = model.DefaultColumnChoices()
	}
	e.columns = choices

	e.loaded = true
	return nil
}

// AddEntry appends a blank entry row and returns its index.
func (e *ScheduleEditor) AddEntry() int {
	return e.entries.Append(model.ScheduleEntry{})
}

// RemoveEntry removes the row at index; survivors are reindexed.
func (e *ScheduleEditor) RemoveEntry(index int) {
	e.entries.RemoveAt(index)
}

// SetEntry writes the operator's current field values for a row.
func (e *ScheduleEditor) SetEntry(index int, entry model.ScheduleEntry) {
	e.entries.Update(index, entry)
}

func (e *ScheduleEditor) Entries() []collection.Row[model.ScheduleEntry] {
	return e.entries.Rows()
}

func (e *ScheduleEditor) ColumnChoices() []model.ColumnChoice {
	return e.columns
}

// ToggleEnabled is the operator switch of the create context. The edit
// context ignores it: there enabled is recomputed at save time.
func (e *ScheduleEditor) ToggleEnabled(flag bool) {
	if e.context == ContextCreate {
		e.Enabled = flag
	}
}

// Save serializes the working copy and replaces the server record
// wholesale. Entries missing any field are skipped, not deleted: the
// operator keeps the draft rows. On any failure the working copy is
// left untouched for retry.
func (e *ScheduleEditor) Save(ctx context.Context) error {
	if !e.loaded {
		return ErrNotLoaded
	}
	if e.saving {
		return ErrSaveInFlight
	}
	e.saving = true
	defer func() { e.saving = false }()

	entries := e.entries.Collect(model.ScheduleEntry.Complete)
	for i := range entries {
		entries[i].Column = NormalizeColumn(entries[i].Column)
	}

	enabled := e.Enabled
	if e.context == ContextEdit {
		enabled = len(entries) > 0
	}

	cfg := model.ScheduleConfig{
		Enabled:             enabled,
		Entries:             entries,
		CreateThreadMessage: withDefault(e.CreateThreadMessage, model.DefaultCreateThreadMessage),
		CompletionMessage:   withDefault(e.CompletionMessage, model.DefaultCompletionMessage),
		AutoColumnEnabled:   e.AutoColumnEnabled,
		StartColumn:         withDefault(NormalizeColumn(e.StartColumn), model.DefaultStartColumn),
		EndColumn:           withDefault(NormalizeColumn(e.EndColumn), model.DefaultEndColumn),
	}

	if err := e.client.PutScheduleConfig(ctx, e.workspace, cfg, strings.TrimSpace(e.NotificationUserID)); err != nil {
		return err
	}

	if e.OnStatusRefresh != nil {
		e.OnStatusRefresh()
	}
	return nil
}

// NormalizeColumn trims and uppercases a column letter ("k " -> "K").
func NormalizeColumn(col string) string {
	return strings.ToUpper(strings.TrimSpace(col))
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
