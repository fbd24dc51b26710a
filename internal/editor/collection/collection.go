// Package collection implements the ordered, re-indexable list editor
// underneath the schedule and duplicate-name editors. Rows are addressed
// by position only: removing a row relabels every survivor with dense
// indices 0..n-1, so an index must never be cached across a removal.
package collection

import "fmt"

// Row is one rendered list entry. Index and Label are rewritten on every
// structural change; Value is the caller's row data.
type Row[T any] struct {
	Index int
	Label string
	Value T
}

// Editor is an ordered list of rows with append/remove/collect
// operations. Two editors are fully independent index spaces.
type Editor[T any] struct {
	rows []Row[T]
}

func New[T any]() *Editor[T] {
	return &Editor[T]{}
}

// Append adds a row at the end and returns its index.
func (e *Editor[T]) Append(value T) int {
	idx := len(e.rows)
	e.rows = append(e.rows, Row[T]{Index: idx, Label: ordinal(idx), Value: value})
	return idx
}

// RemoveAt deletes the row at index, then relabels the survivors with
// contiguous indices in display order. Out-of-range indices are a no-op.
func (e *Editor[T]) RemoveAt(index int) {
	if index < 0 || index >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:index], e.rows[index+1:]...)
	e.reindex()
}

func (e *Editor[T]) reindex() {
	for i := range e.rows {
		e.rows[i].Index = i
		e.rows[i].Label = ordinal(i)
	}
}

// Update replaces the value of the row at index, leaving order intact.
func (e *Editor[T]) Update(index int, value T) {
	if index < 0 || index >= len(e.rows) {
		return
	}
	e.rows[index].Value = value
}

// At returns the value at index.
func (e *Editor[T]) At(index int) (T, bool) {
	if index < 0 || index >= len(e.rows) {
		var zero T
		return zero, false
	}
	return e.rows[index].Value, true
}

func (e *Editor[T]) Len() int { return len(e.rows) }

// Rows returns a snapshot of the rendered rows in display order.
func (e *Editor[T]) Rows() []Row[T] {
	out := make([]Row[T], len(e.rows))
	copy(out, e.rows)
	return out
}

// Collect reads every row in display order and returns the values that
// satisfy keep. Rows that fail the predicate stay in the editor; they
// are only skipped here.
func (e *Editor[T]) Collect(keep func(T) bool) []T {
	out := make([]T, 0, len(e.rows))
	for _, r := range e.rows {
		if keep == nil || keep(r.Value) {
			out = append(out, r.Value)
		}
	}
	return out
}

// ordinal renders the displayed row label, "#1" for index 0.
func ordinal(index int) string {
	return fmt.Sprintf("#%d", index+1)
}
