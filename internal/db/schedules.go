package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/model"
)

// fetches the schedule config for a workspace. A workspace with no
// stored config gets the disabled default rather than an error.
func GetScheduleConfig(workspace string) (model.ScheduleConfig, error) {
	var cfg model.ScheduleConfig
	const q = `
	SELECT enabled, create_thread_message, check_completion_message,
	       auto_column_enabled, start_column, end_column
	  FROM schedule_configs
	 WHERE workspace_name = $1;`
	row := DB.QueryRow(q, workspace)
	err := row.Scan(&cfg.Enabled, &cfg.CreateThreadMessage, &cfg.CompletionMessage,
		&cfg.AutoColumnEnabled, &cfg.StartColumn, &cfg.EndColumn)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScheduleConfig{
			Entries:             []model.ScheduleEntry{},
			CreateThreadMessage: model.DefaultCreateThreadMessage,
			CompletionMessage:   model.DefaultCompletionMessage,
			StartColumn:         model.DefaultStartColumn,
			EndColumn:           model.DefaultEndColumn,
		}, nil
	}
	if err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("GetScheduleConfig failed")
		return model.ScheduleConfig{}, err
	}

	var entries []model.ScheduleEntry
	const eq = `
	SELECT day, create_time, check_time, column_letter
	  FROM schedule_entries
	 WHERE workspace_name = $1
	 ORDER BY position;`
	if err := DB.Select(&entries, eq, workspace); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("GetScheduleConfig entries failed")
		return model.ScheduleConfig{}, err
	}
	if entries == nil {
		entries = []model.ScheduleEntry{}
	}
	cfg.Entries = entries
	return cfg, nil
}

// replaces the stored schedule config wholesale. The entry list, the
// messages and the column bounds all come from the caller; the previous
// entries are discarded inside one transaction.
func ReplaceScheduleConfig(workspace string, cfg model.ScheduleConfig, notificationUserID string) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `
	INSERT INTO schedule_configs (
		workspace_name, enabled, create_thread_message, check_completion_message,
		auto_column_enabled, start_column, end_column, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7, now())
	ON CONFLICT (workspace_name) DO UPDATE SET
		enabled = EXCLUDED.enabled,
		create_thread_message = EXCLUDED.create_thread_message,
		check_completion_message = EXCLUDED.check_completion_message,
		auto_column_enabled = EXCLUDED.auto_column_enabled,
		start_column = EXCLUDED.start_column,
		end_column = EXCLUDED.end_column,
		updated_at = now();`
	if _, err := tx.Exec(upsert, workspace, cfg.Enabled,
		cfg.CreateThreadMessage, cfg.CompletionMessage,
		cfg.AutoColumnEnabled, cfg.StartColumn, cfg.EndColumn); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("ReplaceScheduleConfig upsert failed")
		return err
	}

	if _, err := tx.Exec(`DELETE FROM schedule_entries WHERE workspace_name = $1;`, workspace); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("ReplaceScheduleConfig clear failed")
		return err
	}
	const insert = `
	INSERT INTO schedule_entries (workspace_name, position, day, create_time, check_time, column_letter)
	VALUES ($1,$2,$3,$4,$5,$6);`
	for i, e := range cfg.Entries {
		if _, err := tx.Exec(insert, workspace, i, e.Day, e.CreateTime, e.CheckTime, e.Column); err != nil {
			log.Error().Err(err).Str("workspace", workspace).Int("position", i).
				Msg("ReplaceScheduleConfig insert failed")
			return err
		}
	}

	// a save overwrites the notification target too; blank clears it
	if _, err := tx.Exec(
		`UPDATE workspaces SET notification_user_id = $2, updated_at = now() WHERE name = $1;`,
		workspace, notificationUserID); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("ReplaceScheduleConfig notify update failed")
		return err
	}
	return tx.Commit()
}

// removes the entry at the given position and renumbers the rest.
// Deleting the last entry also disables the schedule. Returns the
// updated config.
func DeleteScheduleEntry(workspace string, index int) (model.ScheduleConfig, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return model.ScheduleConfig{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`DELETE FROM schedule_entries WHERE workspace_name = $1 AND position = $2;`,
		workspace, index)
	if err != nil {
		log.Error().Err(err).Str("workspace", workspace).Int("index", index).
			Msg("DeleteScheduleEntry failed")
		return model.ScheduleConfig{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ScheduleConfig{}, sql.ErrNoRows
	}

	if _, err := tx.Exec(`
	UPDATE schedule_entries SET position = position - 1
	 WHERE workspace_name = $1 AND position > $2;`, workspace, index); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("DeleteScheduleEntry renumber failed")
		return model.ScheduleConfig{}, err
	}

	var remaining int
	if err := tx.Get(&remaining,
		`SELECT count(*) FROM schedule_entries WHERE workspace_name = $1;`, workspace); err != nil {
		return model.ScheduleConfig{}, err
	}
	if remaining == 0 {
		if _, err := tx.Exec(
			`UPDATE schedule_configs SET enabled = false, updated_at = now() WHERE workspace_name = $1;`,
			workspace); err != nil {
			return model.ScheduleConfig{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.ScheduleConfig{}, err
	}
	return GetScheduleConfig(workspace)
}

// flips the enabled flag and returns the new value.
func ToggleScheduleEnabled(workspace string) (bool, error) {
	var enabled bool
	const q = `
	UPDATE schedule_configs SET enabled = NOT enabled, updated_at = now()
	 WHERE workspace_name = $1
	RETURNING enabled;`
	err := DB.QueryRow(q, workspace).Scan(&enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, sql.ErrNoRows
		}
		log.Error().Err(err).Str("workspace", workspace).Msg("ToggleScheduleEnabled failed")
		return false, err
	}
	return enabled, nil
}

// flattens every schedule entry across all workspaces for the status view.
func ListAllScheduleEntries() ([]model.ScheduleStatus, error) {
	type statusRow struct {
		WorkspaceName string `db:"display_name"`
		FolderName    string `db:"name"`
		Day           string `db:"day"`
		CreateTime    string `db:"create_time"`
		CheckTime     string `db:"check_time"`
		Column        string `db:"column_letter"`
		Enabled       bool   `db:"enabled"`
	}
	var rows []statusRow
	const q = `
	SELECT w.display_name, w.name, e.day, e.create_time, e.check_time,
	       e.column_letter, c.enabled
	  FROM schedule_entries e
	  JOIN schedule_configs c ON c.workspace_name = e.workspace_name
	  JOIN workspaces w ON w.name = e.workspace_name
	 ORDER BY w.name, e.position;`
	if err := DB.Select(&rows, q); err != nil {
		log.Error().Err(err).Msg("ListAllScheduleEntries failed")
		return nil, err
	}
	out := make([]model.ScheduleStatus, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ScheduleStatus{
			WorkspaceName: r.WorkspaceName,
			FolderName:    r.FolderName,
			Day:           r.Day,
			CreateTime:    r.CreateTime,
			CheckTime:     r.CheckTime,
			Column:        r.Column,
			Enabled:       r.Enabled,
		})
	}
	return out, nil
}
