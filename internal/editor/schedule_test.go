package editor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/igini-labs/chulseok/internal/model"
)

// fakeSync is an in-memory SyncClient shared by the editor tests.
type fakeSync struct {
	schedule    model.ScheduleConfig
	notifyID    string
	columns     []model.ColumnChoice
	columnsErr  error
	directory   model.DuplicateDirectory
	putErr      error
	resolveErr  error
	putCount    int
	lastPut     model.ScheduleConfig
	lastPutUser string
	lastDir     model.DuplicateDirectory
}

func (f *fakeSync) GetScheduleConfig(ctx context.Context, workspace string) (model.ScheduleConfig, string, error) {
	return f.schedule, f.notifyID, nil
}

func (f *fakeSync) PutScheduleConfig(ctx context.Context, workspace string, cfg model.ScheduleConfig, notificationUserID string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putCount++
	f.lastPut = cfg
	f.lastPutUser = notificationUserID
	f.schedule = cfg
	f.notifyID = notificationUserID
	return nil
}

func (f *fakeSync) GetColumnChoices(ctx context.Context, workspace string, kind SheetKind) ([]model.ColumnChoice, error) {
	return f.columns, f.columnsErr
}

func (f *fakeSync) GetDuplicateDirectory(ctx context.Context, workspace string) (model.DuplicateDirectory, error) {
	return f.directory, nil
}

func (f *fakeSync) ResolveAndPutDuplicateDirectory(ctx context.Context, workspace string, dir model.DuplicateDirectory) (model.DuplicateDirectory, error) {
	f.lastDir = dir
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	resolved := model.DuplicateDirectory{}
	for name, people := range dir {
		out := make([]model.PersonRecord, len(people))
		copy(out, people)
		for i := range out {
			out[i].ResolvedID = "U" + out[i].Email
		}
		resolved[name] = out
	}
	f.directory = resolved
	return resolved, nil
}

func (f *fakeSync) DeleteScheduleEntry(ctx context.Context, workspace string, entryIndex int) error {
	return nil
}

func (f *fakeSync) ToggleScheduleEnabled(ctx context.Context, workspace string) error {
	return nil
}

func TestLoadAppliesDefaults(t *testing.T) {
	sync := &fakeSync{columnsErr: errors.New("sheet unreachable")}
	ed := NewScheduleEditor(sync, "bootcamp-3", ContextEdit)

	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ed.StartColumn != "H" || ed.EndColumn != "O" {
		t.Errorf("columns = %q..%q, want H..O", ed.StartColumn, ed.EndColumn)
	}
	if ed.CreateThreadMessage != model.DefaultCreateThreadMessage {
		t.Errorf("thread message not defaulted: %q", ed.CreateThreadMessage)
	}
	if ed.CompletionMessage != model.DefaultCompletionMessage {
		t.Errorf("completion message not defaulted: %q", ed.CompletionMessage)
	}
	// provider failure falls back to the fixed letter set
	if got := ed.ColumnChoices(); len(got) != 9 || got[0].Letter != "H" || got[8].Letter != "P" {
		t.Errorf("fallback column choices = %v", got)
	}
}

func TestSaveDropsIncompleteEntriesOnly(t *testing.T) {
	sync := &fakeSync{}
	ed := NewScheduleEditor(sync, "bootcamp-3", ContextEdit)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ed.SetEntry(ed.AddEntry(), model.ScheduleEntry{Day: "mon", CreateTime: "09:00", CheckTime: "10:00", Column: "H"})
	ed.AddEntry() // stays blank
	ed.SetEntry(ed.AddEntry(), model.ScheduleEntry{Day: "tue", CreateTime: "08:00", CheckTime: "08:30", Column: "K"})

	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := []model.ScheduleEntry{
		{Day: "mon", CreateTime: "09:00", CheckTime: "10:00", Column: "H"},
		{Day: "tue", CreateTime: "08:00", CheckTime: "08:30", Column: "K"},
	}
	if !reflect.DeepEqual(sync.lastPut.Entries, want) {
		t.Errorf("submitted entries = %+v, want %+v", sync.lastPut.Entries, want)
	}
	// the blank draft row survives in the working copy
	if len(ed.Entries()) != 3 {
		t.Errorf("working copy has %d rows, want 3", len(ed.Entries()))
	}
}

func TestSaveNormalizesColumns(t *testing.T) {
	sync := &fakeSync{}
	ed := NewScheduleEditor(sync, "bootcamp-3", ContextCreate)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ed.SetEntry(ed.AddEntry(), model.ScheduleEntry{Day: "fri", CreateTime: "19:00", CheckTime: "21:00", Column: "k "})
	ed.StartColumn = " h"
	ed.EndColumn = "p"

	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := sync.lastPut.Entries[0].Column; got != "K" {
		t.Errorf("entry column = %q, want K", got)
	}
	if sync.lastPut.StartColumn != "H" || sync.lastPut.EndColumn != "P" {
		t.Errorf("range = %q..%q, want H..P", sync.lastPut.StartColumn, sync.lastPut.EndColumn)
	}
}

func TestEnabledRulePerContext(t *testing.T) {
	// edit context: derived from entry count regardless of the toggle
	sync := &fakeSync{}
	edit := NewScheduleEditor(sync, "ws", ContextEdit)
	if err := edit.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	edit.ToggleEnabled(true) // ignored in edit context
	if err := edit.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if sync.lastPut.Enabled {
		t.Error("edit save with no entries must disable the schedule")
	}

	edit.SetEntry(edit.AddEntry(), model.ScheduleEntry{Day: "wed", CreateTime: "09:00", CheckTime: "10:00", Column: "J"})
	if err := edit.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !sync.lastPut.Enabled {
		t.Error("edit save with entries must enable the schedule")
	}

	// create context: the toggle is authoritative
	create := NewScheduleEditor(sync, "ws", ContextCreate)
	if err := create.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	create.ToggleEnabled(false)
	create.SetEntry(create.AddEntry(), model.ScheduleEntry{Day: "thu", CreateTime: "09:00", CheckTime: "10:00", Column: "J"})
	if err := create.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if sync.lastPut.Enabled {
		t.Error("create save must honor the operator toggle")
	}
}

func TestLoadSaveRoundTripIsStable(t *testing.T) {
	stored := model.ScheduleConfig{
		Enabled: true,
		Entries: []model.ScheduleEntry{
			{Day: "mon", CreateTime: "09:00", CheckTime: "10:00", Column: "H"},
			{Day: "fri", CreateTime: "18:00", CheckTime: "20:00", Column: "L"},
		},
		CreateThreadMessage: "주간 출석 스레드",
		CompletionMessage:   "집계 완료",
		AutoColumnEnabled:   true,
		StartColumn:         "H",
		EndColumn:           "O",
	}
	sync := &fakeSync{schedule: stored, notifyID: "U123"}
	ed := NewScheduleEditor(sync, "ws", ContextEdit)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !reflect.DeepEqual(sync.lastPut, stored) {
		t.Errorf("round trip changed the record:\n got %+v\nwant %+v", sync.lastPut, stored)
	}
	if sync.lastPutUser != "U123" {
		t.Errorf("notification user = %q, want U123", sync.lastPutUser)
	}
}

func TestSaveFailureLeavesWorkingCopy(t *testing.T) {
	sync := &fakeSync{putErr: errors.New("boom")}
	ed := NewScheduleEditor(sync, "ws", ContextCreate)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ed.SetEntry(ed.AddEntry(), model.ScheduleEntry{Day: "sat", CreateTime: "09:00", CheckTime: "10:00", Column: "M"})

	if err := ed.Save(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
	if len(ed.Entries()) != 1 {
		t.Error("failed save must not mutate the working copy")
	}

	// retry after the server recovers
	sync.putErr = nil
	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("retry Save: %v", err)
	}
	if sync.putCount != 1 {
		t.Errorf("putCount = %d, want 1", sync.putCount)
	}
}

func TestSaveBeforeLoadRejected(t *testing.T) {
	ed := NewScheduleEditor(&fakeSync{}, "ws", ContextCreate)
	if err := ed.Save(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestSaveRefreshesStatusView(t *testing.T) {
	sync := &fakeSync{}
	ed := NewScheduleEditor(sync, "ws", ContextCreate)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	refreshed := 0
	ed.OnStatusRefresh = func() { refreshed++ }

	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if refreshed != 1 {
		t.Errorf("refresh count = %d, want 1", refreshed)
	}

	sync.putErr = errors.New("down")
	_ = ed.Save(context.Background())
	if refreshed != 1 {
		t.Error("failed save must not refresh the status view")
	}
}
