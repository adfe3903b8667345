package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the final classification of a publish run.
type Outcome string

const (
	OutcomePublished Outcome = "published"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// StageResult enumerates per-stage classification outcomes.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// Report captures what happened during one publish run.
type Report struct {
	RunID          string
	Outcome        Outcome
	SkipReason     string
	CommitHash     string
	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	Errors         []*StageError

	start time.Time
}

// NewReport constructs a Report with a fresh run ID.
func NewReport() *Report {
	return &Report{
		RunID:          uuid.NewString(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
		start:          time.Now(),
	}
}

// Duration returns the wall time since the report was created.
func (r *Report) Duration() time.Duration { return time.Since(r.start) }

func (r *Report) recordStage(name StageName, d time.Duration, res StageResult) {
	r.StageDurations[name] = d
	r.StageResults[name] = res
}
