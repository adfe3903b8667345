// Package publish implements the conditional publisher: evaluate the CI gate
// and, only when it passes, run the generate/stamp/import/push sequence.
package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docpush/internal/ci"
	"git.home.luguber.info/inful/docpush/internal/config"
	"git.home.luguber.info/inful/docpush/internal/docgen"
	"git.home.luguber.info/inful/docpush/internal/gitops"
	"git.home.luguber.info/inful/docpush/internal/journal"
	"git.home.luguber.info/inful/docpush/internal/logfields"
	"git.home.luguber.info/inful/docpush/internal/metrics"
	"git.home.luguber.info/inful/docpush/internal/pipeline"
)

// Capabilities groups the injectable external-tool abstractions the publish
// sequence delegates to. Tests substitute deterministic fakes.
type Capabilities struct {
	Generator docgen.Generator
	Importer  gitops.Importer
	Pusher    gitops.Pusher
}

// Publisher runs the conditional publish workflow for one configuration.
type Publisher struct {
	cfg      *config.Config
	caps     Capabilities
	recorder metrics.Recorder
	journal  *journal.Store
	lookup   ci.LookupFunc
	notices  io.Writer
}

// New creates a Publisher with the real capabilities: the configured external
// generator, the go-git importer and the go-git pusher.
func New(cfg *config.Config) *Publisher {
	return &Publisher{
		cfg: cfg,
		caps: Capabilities{
			Generator: &docgen.ExecGenerator{Command: cfg.Generator.Command, Args: cfg.Generator.Args},
			Importer: &gitops.GoGitImporter{
				CommitMessage: cfg.Publish.CommitMessage,
				AuthorName:    cfg.Publish.AuthorName,
				AuthorEmail:   cfg.Publish.AuthorEmail,
			},
			Pusher: gitops.GoGitPusher{},
		},
		recorder: metrics.NoopRecorder{},
		lookup:   os.LookupEnv,
		notices:  os.Stdout,
	}
}

// WithCapabilities replaces the external-tool capabilities (fluent helper).
func (p *Publisher) WithCapabilities(caps Capabilities) *Publisher {
	if caps.Generator != nil {
		p.caps.Generator = caps.Generator
	}
	if caps.Importer != nil {
		p.caps.Importer = caps.Importer
	}
	if caps.Pusher != nil {
		p.caps.Pusher = caps.Pusher
	}
	return p
}

// WithRecorder attaches a metrics recorder.
func (p *Publisher) WithRecorder(r metrics.Recorder) *Publisher {
	if r != nil {
		p.recorder = r
	}
	return p
}

// WithJournal attaches a publish history store.
func (p *Publisher) WithJournal(j *journal.Store) *Publisher { p.journal = j; return p }

// WithLookup replaces the environment lookup (tests).
func (p *Publisher) WithLookup(l ci.LookupFunc) *Publisher {
	if l != nil {
		p.lookup = l
	}
	return p
}

// WithNotices redirects the human-readable status lines (tests).
func (p *Publisher) WithNotices(w io.Writer) *Publisher {
	if w != nil {
		p.notices = w
	}
	return p
}

// Decide reads the CI signals and evaluates the gate without side effects.
func (p *Publisher) Decide() (ci.Signals, ci.Decision) {
	signals := ci.ReadSignals(p.cfg.CI, p.lookup)
	gate := ci.Gate{Slug: p.cfg.Project.Slug, Branch: p.cfg.Project.Branch}
	return signals, gate.Evaluate(signals)
}

// Run performs the conditional publish. A failed gate is a successful no-op
// (nil error); any stage failure is returned and must surface as a non-zero
// process exit. The report describes the run either way.
func (p *Publisher) Run(ctx context.Context) (*pipeline.Report, error) {
	report := pipeline.NewReport()
	signals, decision := p.Decide()

	slog.Info("Publish gate evaluated",
		logfields.RunID(report.RunID),
		logfields.Repository(signals.RepoSlug),
		logfields.Branch(signals.Branch),
		slog.Bool("proceed", decision.Proceed))

	if !decision.Proceed {
		report.Outcome = pipeline.OutcomeSkipped
		report.SkipReason = string(decision.Reason)
		fmt.Fprintf(p.notices, "Documentation not updated: %s\n", decision.Detail)
		p.finish(ctx, report)
		return report, nil
	}

	if signals.Token == "" {
		report.Outcome = pipeline.OutcomeFailed
		err := fmt.Errorf("publish gate passed but no auth token is set (variable %s)", tokenVarName(p.cfg.CI))
		p.finish(ctx, report)
		return report, err
	}

	remoteURL := p.cfg.Publish.RemoteURL
	if remoteURL == "" {
		remoteURL = gitops.RemoteURL(p.cfg.Publish.Host, p.cfg.Project.Slug)
	}

	state := &pipeline.State{
		ProjectDir: p.cfg.Project.Dir,
		OutputDir:  filepath.Join(p.cfg.Project.Dir, p.cfg.Generator.Output),
		Branch:     p.cfg.Publish.Branch,
		RemoteURL:  remoteURL,
		Token:      signals.Token,
	}

	err := pipeline.Run(ctx, state, report, p.stages(), p.recorder)
	report.CommitHash = state.CommitHash
	if err != nil {
		report.Outcome = pipeline.OutcomeFailed
		if ctx.Err() != nil {
			report.Outcome = pipeline.OutcomeCanceled
		}
		p.finish(ctx, report)
		return report, err
	}

	report.Outcome = pipeline.OutcomePublished
	fmt.Fprintln(p.notices, "Documentation updated")
	p.finish(ctx, report)
	return report, nil
}

// finish records the run in metrics and the journal. Neither may fail the
// publish itself.
func (p *Publisher) finish(ctx context.Context, report *pipeline.Report) {
	duration := report.Duration()
	p.recorder.ObservePublishDuration(duration)
	p.recorder.IncPublishOutcome(string(report.Outcome))

	if p.journal == nil {
		return
	}
	reason := report.SkipReason
	if reason == "" && len(report.Errors) > 0 {
		reason = report.Errors[0].Error()
	}
	entry := journal.Entry{
		ID:         report.RunID,
		Slug:       p.cfg.Project.Slug,
		Branch:     p.cfg.Publish.Branch,
		Outcome:    string(report.Outcome),
		Reason:     reason,
		CommitHash: report.CommitHash,
		Duration:   duration,
	}
	if err := p.journal.Record(ctx, entry); err != nil {
		slog.Warn("Failed to record publish in journal", logfields.Error(err))
	}
}

func tokenVarName(vars ci.SourceVars) string {
	if vars.Token != "" {
		return vars.Token
	}
	return ci.DefaultTokenVar
}
