// Package pipeline provides the ordered stage machinery the publisher runs
// on: named stages executed in declaration order, halting on the first
// failure, with per-stage timing captured in a report.
package pipeline

import (
	"context"
	"fmt"
)

// StageName is a strongly-typed identifier for a publish stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names, in execution order.
const (
	StageGenerateDocs   StageName = "generate_docs"
	StageWriteRedirect  StageName = "write_redirect"
	StageEnsureImporter StageName = "ensure_importer"
	StageImportBranch   StageName = "import_branch"
	StagePushBranch     StageName = "push_branch"
)

// Stage is a discrete unit of work in the publish sequence.
type Stage func(ctx context.Context, st *State) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Publish must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}
