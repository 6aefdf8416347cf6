package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ericyoondotcom/anki-tools/internal/anki"
	"github.com/ericyoondotcom/anki-tools/internal/prompts"
	"github.com/ericyoondotcom/anki-tools/internal/providers"
)

// Runner executes generation tasks over the current browser selection.
// Notes are processed strictly one at a time, in selection order; a
// note's failure is reported and the loop moves on.
type Runner struct {
	collection  anki.Collection
	llm         providers.LLMClient
	model       string
	temperature float64
	logger      *slog.Logger
}

// RunnerConfig holds dependencies and generation parameters for a Runner.
type RunnerConfig struct {
	Collection  anki.Collection
	LLM         providers.LLMClient
	Model       string
	Temperature float64
	Logger      *slog.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		collection:  cfg.Collection,
		llm:         cfg.LLM,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Run executes one task over the current selection and returns a report.
// An error is returned only when the selection itself cannot be read;
// per-note failures land in the report.
func (r *Runner) Run(ctx context.Context, task Task) (*Report, error) {
	runID := uuid.New().String()
	logger := r.logger.With("run_id", runID, "task", task.Name)

	notes, err := r.collection.SelectedNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	eligible := Filter(notes, task)
	report := &Report{
		RunID:    runID,
		Task:     task.Name,
		Selected: len(notes),
		Eligible: len(eligible),
		Skipped:  len(notes) - len(eligible),
	}

	logger.Info("starting run",
		"selected", report.Selected,
		"eligible", report.Eligible,
		"skipped", report.Skipped,
	)

	for i, note := range eligible {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		r.processNote(ctx, logger, task, note, i, report)
	}

	logger.Info("run complete",
		"updated", report.Updated,
		"no_result", report.NoResult,
		"failed", report.Failed,
	)
	return report, nil
}

func (r *Runner) processNote(ctx context.Context, logger *slog.Logger, task Task, note anki.Note, idx int, report *Report) {
	noteLogger := logger.With("note_id", note.ID)

	prompt, err := task.Render(note)
	if err != nil {
		r.recordError(noteLogger, report, note.ID, "prompt", err)
		return
	}

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: prompts.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Model:       r.model,
		Temperature: r.temperature,
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: task.Schema,
		},
		RequestID: fmt.Sprintf("%s/%d", report.RunID, idx),
	}

	result, err := r.llm.Chat(ctx, req)
	if err != nil {
		r.recordError(noteLogger, report, note.ID, "inference", err)
		return
	}

	value, ok, err := task.Extract(result.ParsedJSON)
	if err != nil {
		r.recordError(noteLogger, report, note.ID, "extract", err)
		return
	}
	if !ok {
		report.NoResult++
		noteLogger.Info("model returned no value, leaving field untouched")
		return
	}

	if err := r.collection.SaveFields(ctx, note.ID, map[string]string{task.TargetField: value}); err != nil {
		r.recordError(noteLogger, report, note.ID, "save", err)
		return
	}

	report.Updated++
	noteLogger.Info("field updated", "field", task.TargetField, "tokens", result.TotalTokens)
}

func (r *Runner) recordError(logger *slog.Logger, report *Report, noteID int64, stage string, err error) {
	report.Failed++
	report.Errors = append(report.Errors, NoteError{
		NoteID:  noteID,
		Stage:   stage,
		Message: err.Error(),
	})
	logger.Warn("note failed", "stage", stage, "error", err)
}
