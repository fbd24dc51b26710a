package model

// PersonRecord disambiguates one person inside a duplicate-name group.
// ResolvedID is blank in client working copies; the server fills it from
// the person's email during save.
type PersonRecord struct {
	Email       string `db:"email" json:"email"`
	ResolvedID  string `db:"resolved_id" json:"user_id"`
	DisplayName string `db:"display_name" json:"display_name"`
	SheetRow    int    `db:"sheet_row" json:"sheet_row"`
	Note        string `db:"note" json:"note"`
}

// Qualified reports whether the record has enough data to persist:
// email, display name and a positive sheet row.
func (p PersonRecord) Qualified() bool {
	return p.Email != "" && p.DisplayName != "" && p.SheetRow >= 1
}

// DuplicateDirectory maps a shared display name to the people who carry
// it. A group with zero records is never stored or rendered.
type DuplicateDirectory map[string][]PersonRecord

// Prune removes groups that have no records left.
func (d DuplicateDirectory) Prune() {
	for name, people := range d {
		if len(people) == 0 {
			delete(d, name)
		}
	}
}
