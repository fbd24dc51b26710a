package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/igini-labs/chulseok/internal/editor"
	"github.com/igini-labs/chulseok/internal/model"
	"github.com/igini-labs/chulseok/internal/resolve"
)

func TestGetScheduleConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/panel/schedule/camp-7" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"enabled": true,
			"schedules": [{"day":"mon","create_thread_time":"09:00","check_attendance_time":"10:00","check_attendance_column":"H"}],
			"create_thread_message": "hello",
			"check_completion_message": "done",
			"auto_column_enabled": false,
			"start_column": "H",
			"end_column": "O",
			"notification_user_id": "U123"
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	cfg, notify, err := c.GetScheduleConfig(context.Background(), "camp-7")
	if err != nil {
		t.Fatalf("GetScheduleConfig: %v", err)
	}
	if !cfg.Enabled || len(cfg.Entries) != 1 || cfg.Entries[0].Day != "mon" {
		t.Errorf("config: %+v", cfg)
	}
	if notify != "U123" {
		t.Errorf("notification user: %q", notify)
	}
}

func TestPutScheduleConfig(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/panel/schedule" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	cfg := model.ScheduleConfig{
		Enabled: true,
		Entries: []model.ScheduleEntry{
			{Day: "tue", CreateTime: "09:00", CheckTime: "10:00", Column: "I"},
		},
		StartColumn: "H",
		EndColumn:   "O",
	}
	if err := c.PutScheduleConfig(context.Background(), "camp-7", cfg, "U9"); err != nil {
		t.Fatalf("PutScheduleConfig: %v", err)
	}
	if got["workspace"] != "camp-7" || got["notification_user_id"] != "U9" {
		t.Errorf("body: %+v", got)
	}
	if _, ok := got["schedules"]; !ok {
		t.Error("body missing schedules")
	}
}

func TestGetColumnChoicesKindRouting(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"columns":[{"letter":"H","name":"3월 첫째주"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	cols, err := c.GetColumnChoices(context.Background(), "camp-7", editor.SheetAttendance)
	if err != nil {
		t.Fatalf("attendance columns: %v", err)
	}
	if len(cols) != 1 || cols[0].Letter != "H" {
		t.Errorf("columns: %+v", cols)
	}
	if _, err := c.GetColumnChoices(context.Background(), "camp-7", editor.SheetAssignment); err != nil {
		t.Fatalf("assignment columns: %v", err)
	}
	if paths[0] != "/api/panel/sheet-columns/camp-7" ||
		paths[1] != "/api/panel/assignment-sheet-columns/camp-7" {
		t.Errorf("paths: %v", paths)
	}
}

func TestResolveAndPutDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var dir model.DuplicateDirectory
		if err := json.NewDecoder(r.Body).Decode(&dir); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		out := model.DuplicateDirectory{}
		for name, people := range dir {
			for i := range people {
				people[i].ResolvedID = "U" + people[i].Email
			}
			out[name] = people
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "converted_data": out})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	dir := model.DuplicateDirectory{
		"홍길동": {{Email: "hong@igini.co.kr", DisplayName: "홍길동A", SheetRow: 5}},
	}
	converted, err := c.ResolveAndPutDuplicateDirectory(context.Background(), "camp-7", dir)
	if err != nil {
		t.Fatalf("ResolveAndPutDuplicateDirectory: %v", err)
	}
	if converted["홍길동"][0].ResolvedID != "Uhong@igini.co.kr" {
		t.Errorf("converted: %+v", converted)
	}
}

func TestResolveFailureCarriesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"failed to resolve some emails","details":["홍길동 (x@y.z): users_not_found"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.ResolveAndPutDuplicateDirectory(context.Background(), "camp-7", model.DuplicateDirectory{})
	var resErr *resolve.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
	if len(resErr.Details) != 1 {
		t.Errorf("details: %v", resErr.Details)
	}
}

func TestDeleteScheduleEntry(t *testing.T) {
	var got struct {
		Workspace string `json:"workspace"`
		Index     int    `json:"index"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/panel/schedule/delete" {
			t.Errorf("path: %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"enabled":false,"schedules":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.DeleteScheduleEntry(context.Background(), "camp-7", 2); err != nil {
		t.Fatalf("DeleteScheduleEntry: %v", err)
	}
	if got.Workspace != "camp-7" || got.Index != 2 {
		t.Errorf("body: %+v", got)
	}
}

func TestErrorStatusSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"workspace not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	err := c.ToggleScheduleEnabled(context.Background(), "missing")
	if err == nil || !strings.Contains(err.Error(), "workspace not found") {
		t.Errorf("error: %v", err)
	}
}
