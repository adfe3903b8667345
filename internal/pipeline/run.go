package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docpush/internal/logfields"
	"git.home.luguber.info/inful/docpush/internal/metrics"
)

// Run executes stages in declaration order, recording timing and results in
// the report, and stops on the first failure. Cancellation is checked before
// each stage so an interrupted run never starts another side effect.
func Run(ctx context.Context, st *State, report *Report, stages []StageDef, recorder metrics.Recorder) error {
	for _, stage := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(stage.Name, ctx.Err())
			report.recordStage(stage.Name, 0, StageResultCanceled)
			report.Errors = append(report.Errors, se)
			if recorder != nil {
				recorder.IncStageResult(string(stage.Name), metrics.ResultCanceled)
			}
			return se
		default:
		}

		slog.Debug("Stage starting", logfields.Stage(string(stage.Name)))
		t0 := time.Now()
		err := stage.Fn(ctx, st)
		dur := time.Since(t0)

		if recorder != nil {
			recorder.ObserveStageDuration(string(stage.Name), dur)
		}

		if err != nil {
			se := asStageError(stage.Name, err)
			res := StageResultFatal
			label := metrics.ResultFatal
			if se.Kind == StageErrorCanceled {
				res = StageResultCanceled
				label = metrics.ResultCanceled
			}
			report.recordStage(stage.Name, dur, res)
			report.Errors = append(report.Errors, se)
			if recorder != nil {
				recorder.IncStageResult(string(stage.Name), label)
			}
			slog.Error("Stage failed",
				logfields.Stage(string(stage.Name)),
				logfields.DurationMS(float64(dur.Milliseconds())),
				logfields.Error(se.Err))
			return se
		}

		report.recordStage(stage.Name, dur, StageResultSuccess)
		if recorder != nil {
			recorder.IncStageResult(string(stage.Name), metrics.ResultSuccess)
		}
		slog.Debug("Stage completed",
			logfields.Stage(string(stage.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}

// asStageError normalizes any stage failure into a StageError. Context
// cancellation surfaced by the stage itself keeps the canceled kind.
func asStageError(stage StageName, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newCanceledStageError(stage, err)
	}
	return newFatalStageError(stage, err)
}
