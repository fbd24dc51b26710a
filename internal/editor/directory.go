package editor

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/igini-labs/chulseok/internal/editor/collection"
	"github.com/igini-labs/chulseok/internal/model"
)

var (
	// ErrEmptyGroupName rejects a blank duplicate-name group.
	ErrEmptyGroupName = errors.New("editor: group name is empty")

	// ErrGroupExists rejects adding a group whose name is already a key.
	ErrGroupExists = errors.New("editor: group already exists")
)

// DirectoryEditor maintains the working copy of one workspace's
// duplicate-identity directory: display name -> ordered person records.
// Each group is its own independent index space.
type DirectoryEditor struct {
	client    SyncClient
	workspace string

	order  []string
	groups map[string]*collection.Editor[model.PersonRecord]

	// Confirm gates destructive operations. The panel wires it to a
	// blocking prompt; nil allows everything (used by tests).
	Confirm func(prompt string) bool

	loaded bool
	saving bool
}

func NewDirectoryEditor(client SyncClient, workspace string) *DirectoryEditor {
	return &DirectoryEditor{
		client:    client,
		workspace: workspace,
		groups:    map[string]*collection.Editor[model.PersonRecord]{},
	}
}

// Load replaces the working copy with the server's directory. Groups are
// ordered by name on load; groups added afterwards keep creation order.
func (d *DirectoryEditor) Load(ctx context.Context) error {
	dir, err := d.client.GetDuplicateDirectory(ctx, d.workspace)
	if err != nil {
		return err
	}
	d.replaceWorkingCopy(dir)
	d.loaded = true
	return nil
}

func (d *DirectoryEditor) replaceWorkingCopy(dir model.DuplicateDirectory) {
	names := make([]string, 0, len(dir))
	for name := range dir {
		names = append(names, name)
	}
	sort.Strings(names)

	d.order = names
	d.groups = make(map[string]*collection.Editor[model.PersonRecord], len(dir))
	for _, name := range names {
		ed := collection.New[model.PersonRecord]()
		for _, p := range dir[name] {
			ed.Append(p)
		}
		d.groups[name] = ed
	}
}

// AddGroup inserts a new group seeded with one blank record. Blank and
// duplicate names are rejected without side effects.
func (d *DirectoryEditor) AddGroup(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyGroupName
	}
	if _, exists := d.groups[name]; exists {
		return ErrGroupExists
	}
	ed := collection.New[model.PersonRecord]()
	ed.Append(model.PersonRecord{})
	d.groups[name] = ed
	d.order = append(d.order, name)
	return nil
}

// RemoveGroup deletes the group and everything in it. The removal is
// irreversible, so it runs through the confirmation gate.
func (d *DirectoryEditor) RemoveGroup(name string) bool {
	if _, exists := d.groups[name]; !exists {
		return false
	}
	if !d.confirm("remove group " + name) {
		return false
	}
	d.deleteGroup(name)
	return true
}

// AddPerson appends a blank record to the group, creating the group
// first if it does not exist yet. Blank names are rejected like in
// AddGroup.
func (d *DirectoryEditor) AddPerson(groupName string) error {
	groupName = strings.TrimSpace(groupName)
	if groupName == "" {
		return ErrEmptyGroupName
	}
	ed, exists := d.groups[groupName]
	if !exists {
		ed = collection.New[model.PersonRecord]()
		d.groups[groupName] = ed
		d.order = append(d.order, groupName)
	}
	ed.Append(model.PersonRecord{})
	return nil
}

// RemovePerson removes the record at index inside the group's own index
// space. A group left empty disappears entirely.
func (d *DirectoryEditor) RemovePerson(groupName string, index int) bool {
	ed, exists := d.groups[groupName]
	if !exists {
		return false
	}
	if _, ok := ed.At(index); !ok {
		return false
	}
	if !d.confirm("remove person") {
		return false
	}
	ed.RemoveAt(index)
	if ed.Len() == 0 {
		d.deleteGroup(groupName)
	}
	return true
}

// SetPerson writes the operator's current field values for a record.
func (d *DirectoryEditor) SetPerson(groupName string, index int, rec model.PersonRecord) {
	if ed, exists := d.groups[groupName]; exists {
		ed.Update(index, rec)
	}
}

// GroupView is one rendered group in display order.
type GroupView struct {
	Name string
	Rows []collection.Row[model.PersonRecord]
}

func (d *DirectoryEditor) Groups() []GroupView {
	out := make([]GroupView, 0, len(d.order))
	for _, name := range d.order {
		ed, exists := d.groups[name]
		if !exists {
			continue
		}
		out = append(out, GroupView{Name: name, Rows: ed.Rows()})
	}
	return out
}

// Collect serializes the working copy for submission: records missing an
// email, display name or positive sheet row are skipped (they stay in
// the working copy), and groups with no qualifying record are dropped.
func (d *DirectoryEditor) Collect() model.DuplicateDirectory {
	dir := model.DuplicateDirectory{}
	for _, name := range d.order {
		ed, exists := d.groups[name]
		if !exists {
			continue
		}
		kept := ed.Collect(model.PersonRecord.Qualified)
		if len(kept) > 0 {
			dir[name] = kept
		}
	}
	return dir
}

// Save submits the directory for resolution. On success the server's
// fully resolved copy replaces the working copy; on failure (including
// per-record resolution errors) the working copy is preserved so the
// operator can correct and retry.
func (d *DirectoryEditor) Save(ctx context.Context) error {
	if !d.loaded {
		return ErrNotLoaded
	}
	if d.saving {
		return ErrSaveInFlight
	}
	d.saving = true
	defer func() { d.saving = false }()

	resolved, err := d.client.ResolveAndPutDuplicateDirectory(ctx, d.workspace, d.Collect())
	if err != nil {
		return err
	}

	d.replaceWorkingCopy(resolved)
	return nil
}

func (d *DirectoryEditor) confirm(prompt string) bool {
	if d.Confirm == nil {
		return true
	}
	return d.Confirm(prompt)
}

func (d *DirectoryEditor) deleteGroup(name string) {
	delete(d.groups, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}
