// Package pipeline runs the field generation pipelines: filter the
// user's selection, build a prompt per note, make one inference call,
// and write the generated value back through the host.
package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ericyoondotcom/anki-tools/internal/anki"
	"github.com/ericyoondotcom/anki-tools/internal/config"
	"github.com/ericyoondotcom/anki-tools/internal/prompts"
)

// Task describes one generation pipeline: which fields feed the prompt,
// which field receives the result, and how to interpret the reply.
type Task struct {
	// Name identifies the task in reports and logs ("kanji", "romaji").
	Name string

	// SourceFields must all be non-empty for a note to be eligible.
	SourceFields []string

	// TargetField receives the generated value and must be empty for a
	// note to be eligible.
	TargetField string

	// Render builds the instruction text for a note.
	Render func(note anki.Note) (string, error)

	// Schema constrains the model reply (OpenAI wrapper form).
	Schema json.RawMessage

	// Extract pulls the generated value out of the validated reply.
	// ok=false means the model legitimately produced no value (e.g. a
	// kana-only word); that is not an error.
	Extract func(parsed json.RawMessage) (value string, ok bool, err error)
}

// KanjiTask builds the kanji generation task for the configured field names.
func KanjiTask(fields config.FieldsCfg) Task {
	return Task{
		Name:         "kanji",
		SourceFields: []string{fields.Kana, fields.English},
		TargetField:  fields.Kanji,
		Render: func(note anki.Note) (string, error) {
			return prompts.RenderKanji(note.Field(fields.Kana), note.Field(fields.English))
		},
		Schema: prompts.KanjiSchema,
		Extract: func(parsed json.RawMessage) (string, bool, error) {
			var resp struct {
				Kanji *string `json:"kanji"`
			}
			if err := json.Unmarshal(parsed, &resp); err != nil {
				return "", false, fmt.Errorf("failed to decode kanji reply: %w", err)
			}
			// null kanji means the word is written in kana only.
			if resp.Kanji == nil || strings.TrimSpace(*resp.Kanji) == "" {
				return "", false, nil
			}
			return strings.TrimSpace(*resp.Kanji), true, nil
		},
	}
}

// RomajiTask builds the romaji generation task for the configured field names.
func RomajiTask(fields config.FieldsCfg) Task {
	return Task{
		Name:         "romaji",
		SourceFields: []string{fields.Kana},
		TargetField:  fields.Romaji,
		Render: func(note anki.Note) (string, error) {
			return prompts.RenderRomaji(note.Field(fields.Kana))
		},
		Schema: prompts.RomajiSchema,
		Extract: func(parsed json.RawMessage) (string, bool, error) {
			var resp struct {
				Romaji string `json:"romaji"`
			}
			if err := json.Unmarshal(parsed, &resp); err != nil {
				return "", false, fmt.Errorf("failed to decode romaji reply: %w", err)
			}
			romaji := strings.TrimSpace(resp.Romaji)
			if romaji == "" {
				return "", false, nil
			}
			return romaji, true, nil
		},
	}
}

// Eligible reports whether a note should be processed by a task: the
// note defines all involved fields, every source field is non-empty
// after trimming, and the target field is empty after trimming.
func Eligible(note anki.Note, task Task) bool {
	if !note.HasField(task.TargetField) {
		return false
	}
	for _, name := range task.SourceFields {
		if !note.HasField(name) || note.Field(name) == "" {
			return false
		}
	}
	return note.Field(task.TargetField) == ""
}

// Filter returns the ordered subsequence of notes eligible for a task.
// Ineligible notes are skipped silently.
func Filter(notes []anki.Note, task Task) []anki.Note {
	var eligible []anki.Note
	for _, note := range notes {
		if Eligible(note, task) {
			eligible = append(eligible, note)
		}
	}
	return eligible
}
