package db

import (
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/model"
)

const workspaceColumns = `
	id, name, display_name, bot_token, channel_id, assignment_channel_id,
	spreadsheet_id, sheet_name, assignment_sheet_name,
	name_column, start_row, end_column, notification_user_id,
	credentials_path, created_at, updated_at`

func CreateWorkspace(w *model.Workspace) (model.Workspace, error) {
	var out model.Workspace
	const q = `
	INSERT INTO workspaces (
		name, display_name, bot_token, channel_id, assignment_channel_id,
		spreadsheet_id, sheet_name, assignment_sheet_name,
		name_column, start_row, end_column, notification_user_id,
		credentials_path, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, now(), now())
	RETURNING ` + workspaceColumns + `;`
	err := DB.Get(&out, q,
		w.Name, w.DisplayName, w.BotToken, w.ChannelID, w.AssignmentChannelID,
		w.SpreadsheetID, w.SheetName, w.AssignmentSheetName,
		w.NameColumn, w.StartRow, w.EndColumn, w.NotificationUserID,
		w.CredentialsPath)
	if err != nil {
		log.Error().Err(err).Str("workspace", w.Name).Msg("CreateWorkspace failed")
		return model.Workspace{}, err
	}

	// every workspace carries a config row so toggle never sees a gap
	const seed = `
	INSERT INTO schedule_configs (workspace_name, create_thread_message, check_completion_message)
	VALUES ($1, $2, $3)
	ON CONFLICT (workspace_name) DO NOTHING;`
	if _, err := DB.Exec(seed, out.Name,
		model.DefaultCreateThreadMessage, model.DefaultCompletionMessage); err != nil {
		log.Error().Err(err).Str("workspace", out.Name).Msg("CreateWorkspace config seed failed")
		return model.Workspace{}, err
	}
	return out, nil
}

func GetWorkspaceByName(name string) (*model.Workspace, error) {
	var w model.Workspace
	err := DB.Get(&w, `SELECT `+workspaceColumns+` FROM workspaces WHERE name = $1;`, name)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func ListWorkspaces() ([]model.Workspace, error) {
	var out []model.Workspace
	err := DB.Select(&out, `SELECT `+workspaceColumns+` FROM workspaces ORDER BY name;`)
	if err != nil {
		log.Error().Err(err).Msg("ListWorkspaces failed")
		return nil, err
	}
	return out, nil
}

func UpdateWorkspace(w *model.Workspace) error {
	const q = `
	UPDATE workspaces SET
		display_name = $2, bot_token = $3, channel_id = $4,
		assignment_channel_id = $5, spreadsheet_id = $6, sheet_name = $7,
		assignment_sheet_name = $8, name_column = $9, start_row = $10,
		end_column = $11, notification_user_id = $12, credentials_path = $13,
		updated_at = now()
	WHERE name = $1;`
	_, err := DB.Exec(q,
		w.Name, w.DisplayName, w.BotToken, w.ChannelID, w.AssignmentChannelID,
		w.SpreadsheetID, w.SheetName, w.AssignmentSheetName,
		w.NameColumn, w.StartRow, w.EndColumn, w.NotificationUserID,
		w.CredentialsPath)
	if err != nil {
		log.Error().Err(err).Str("workspace", w.Name).Msg("UpdateWorkspace failed")
	}
	return err
}

func DeleteWorkspace(name string) error {
	_, err := DB.Exec(`DELETE FROM workspaces WHERE name = $1;`, name)
	if err != nil {
		log.Error().Err(err).Str("workspace", name).Msg("DeleteWorkspace failed")
	}
	return err
}
