package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/igini-labs/chulseok/internal/model"
)

// requires a scratch PostgreSQL pointed at by TEST_DATABASE_URL.
func setupIntegration(t *testing.T) Store {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := InitTestDB("../../migrations"); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	return TestStore
}

func createTestWorkspace(t *testing.T, store Store) string {
	t.Helper()
	name := fmt.Sprintf("itest-%d", time.Now().UnixNano())
	_, err := store.CreateWorkspace(&model.Workspace{
		Name:        name,
		DisplayName: "통합 테스트",
		BotToken:    "xoxb-itest",
		SheetName:   "출석부",
		NameColumn:  "B",
		StartRow:    2,
		EndColumn:   "O",
	})
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteWorkspace(name) })
	return name
}

func TestScheduleConfigRoundTrip(t *testing.T) {
	store := setupIntegration(t)
	ws := createTestWorkspace(t, store)

	cfg := model.ScheduleConfig{
		Enabled: true,
		Entries: []model.ScheduleEntry{
			{Day: "mon", CreateTime: "09:00", CheckTime: "10:00", Column: "H"},
			{Day: "wed", CreateTime: "09:00", CheckTime: "10:00", Column: "I"},
		},
		CreateThreadMessage: "스레드",
		CompletionMessage:   "완료",
		StartColumn:         "H",
		EndColumn:           "O",
	}
	if err := store.ReplaceScheduleConfig(ws, cfg, "U42"); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := store.GetScheduleConfig(ws)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Enabled || len(got.Entries) != 2 {
		t.Fatalf("round trip: %+v", got)
	}
	if got.Entries[0].Day != "mon" || got.Entries[1].Day != "wed" {
		t.Errorf("entry order not preserved: %+v", got.Entries)
	}

	wsRow, err := store.GetWorkspaceByName(ws)
	if err != nil {
		t.Fatalf("get workspace: %v", err)
	}
	if wsRow.NotificationUserID != "U42" {
		t.Errorf("notification user: %q", wsRow.NotificationUserID)
	}

	// a save with a blank target clears the previous one
	if err := store.ReplaceScheduleConfig(ws, cfg, ""); err != nil {
		t.Fatalf("replace with blank target: %v", err)
	}
	wsRow, err = store.GetWorkspaceByName(ws)
	if err != nil {
		t.Fatalf("get workspace: %v", err)
	}
	if wsRow.NotificationUserID != "" {
		t.Errorf("notification user not cleared: %q", wsRow.NotificationUserID)
	}
}

func TestDeleteEntryRenumbersAndDisables(t *testing.T) {
	store := setupIntegration(t)
	ws := createTestWorkspace(t, store)

	cfg := model.ScheduleConfig{
		Enabled: true,
		Entries: []model.ScheduleEntry{
			{Day: "mon", CreateTime: "09:00", CheckTime: "10:00", Column: "H"},
			{Day: "fri", CreateTime: "09:00", CheckTime: "10:00", Column: "J"},
		},
	}
	if err := store.ReplaceScheduleConfig(ws, cfg, ""); err != nil {
		t.Fatalf("replace: %v", err)
	}

	after, err := store.DeleteScheduleEntry(ws, 0)
	if err != nil {
		t.Fatalf("delete first: %v", err)
	}
	if len(after.Entries) != 1 || after.Entries[0].Day != "fri" {
		t.Fatalf("after first delete: %+v", after.Entries)
	}
	if !after.Enabled {
		t.Error("schedule should stay enabled while entries remain")
	}

	after, err = store.DeleteScheduleEntry(ws, 0)
	if err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if len(after.Entries) != 0 || after.Enabled {
		t.Errorf("deleting the last entry must disable: %+v", after)
	}

	if _, err := store.DeleteScheduleEntry(ws, 5); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("out of range delete: %v", err)
	}
}

func TestDuplicateDirectoryRoundTrip(t *testing.T) {
	store := setupIntegration(t)
	ws := createTestWorkspace(t, store)

	dir := model.DuplicateDirectory{
		"홍길동": {
			{Email: "hong.a@igini.co.kr", ResolvedID: "U1", DisplayName: "홍길동A", SheetRow: 4},
			{Email: "hong.b@igini.co.kr", ResolvedID: "U2", DisplayName: "홍길동B", SheetRow: 9},
		},
	}
	if err := store.ReplaceDuplicateDirectory(ws, dir); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := store.GetDuplicateDirectory(ws)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	people := got["홍길동"]
	if len(people) != 2 || people[0].SheetRow != 4 || people[1].ResolvedID != "U2" {
		t.Fatalf("round trip: %+v", people)
	}

	// a second replace fully supersedes the first
	if err := store.ReplaceDuplicateDirectory(ws, model.DuplicateDirectory{}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = store.GetDuplicateDirectory(ws)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("directory not cleared: %+v", got)
	}
}
