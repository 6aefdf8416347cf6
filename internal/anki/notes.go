// Package anki talks to a running Anki instance through the AnkiConnect
// add-on API. The pipelines only see the narrow Collection interface so
// they can be tested against an in-memory fake.
package anki

import (
	"context"
	"strings"
)

// Note is a single vocabulary note owned by Anki. Field values are plain
// text; anki-tools only ever reads fields and conditionally overwrites
// generated ones, it never creates or deletes notes.
type Note struct {
	ID     int64             `json:"id" yaml:"id"`
	Model  string            `json:"model,omitempty" yaml:"model,omitempty"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Field returns the trimmed value of a named field. Missing fields
// read as empty.
func (n Note) Field(name string) string {
	return strings.TrimSpace(n.Fields[name])
}

// HasField reports whether the note's model defines the named field.
func (n Note) HasField(name string) bool {
	_, ok := n.Fields[name]
	return ok
}

// Collection is the capability surface the pipelines need from the host:
// enumerate the user's current selection and persist field changes.
type Collection interface {
	// SelectedNotes returns the notes currently selected in the Anki
	// browser, in selection order.
	SelectedNotes(ctx context.Context) ([]Note, error)

	// SaveFields writes the given field values to a note and persists
	// the change.
	SaveFields(ctx context.Context, noteID int64, fields map[string]string) error
}
