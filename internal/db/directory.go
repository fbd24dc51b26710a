package db

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/model"
)

// loads the duplicate-name directory for a workspace, grouped by the
// shared display name. Group members come back in sheet-row order.
func GetDuplicateDirectory(workspace string) (model.DuplicateDirectory, error) {
	type personRow struct {
		GroupName   string `db:"group_name"`
		Email       string `db:"email"`
		ResolvedID  string `db:"resolved_id"`
		DisplayName string `db:"display_name"`
		SheetRow    int    `db:"sheet_row"`
		Note        string `db:"note"`
	}
	var rows []personRow
	const q = `
	SELECT group_name, email, resolved_id, display_name, sheet_row, note
	  FROM duplicate_people
	 WHERE workspace_name = $1
	 ORDER BY group_name, sheet_row;`
	if err := DB.Select(&rows, q, workspace); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("GetDuplicateDirectory failed")
		return nil, err
	}
	dir := model.DuplicateDirectory{}
	for _, r := range rows {
		dir[r.GroupName] = append(dir[r.GroupName], model.PersonRecord{
			Email:       r.Email,
			ResolvedID:  r.ResolvedID,
			DisplayName: r.DisplayName,
			SheetRow:    r.SheetRow,
			Note:        r.Note,
		})
	}
	return dir, nil
}

// replaces the stored directory wholesale inside one transaction. Either
// every group lands or the previous directory stays untouched.
func ReplaceDuplicateDirectory(workspace string, dir model.DuplicateDirectory) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM duplicate_people WHERE workspace_name = $1;`, workspace); err != nil {
		log.Error().Err(err).Str("workspace", workspace).Msg("ReplaceDuplicateDirectory clear failed")
		return err
	}

	names := make([]string, 0, len(dir))
	for name := range dir {
		names = append(names, name)
	}
	sort.Strings(names)

	const insert = `
	INSERT INTO duplicate_people (
		workspace_name, group_name, email, resolved_id, display_name, sheet_row, note)
	VALUES ($1,$2,$3,$4,$5,$6,$7);`
	for _, name := range names {
		for _, p := range dir[name] {
			if _, err := tx.Exec(insert, workspace, name,
				p.Email, p.ResolvedID, p.DisplayName, p.SheetRow, p.Note); err != nil {
				log.Error().Err(err).Str("workspace", workspace).Str("group", name).
					Msg("ReplaceDuplicateDirectory insert failed")
				return err
			}
		}
	}
	return tx.Commit()
}
