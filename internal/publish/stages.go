package publish

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docpush/internal/docgen"
	"git.home.luguber.info/inful/docpush/internal/pipeline"
)

// stages assembles the publish sequence in its strict order. Each stage
// failure aborts the remaining stages; there is no retry and no rollback.
func (p *Publisher) stages() []pipeline.StageDef {
	return []pipeline.StageDef{
		{Name: pipeline.StageGenerateDocs, Fn: p.stageGenerateDocs},
		{Name: pipeline.StageWriteRedirect, Fn: p.stageWriteRedirect},
		{Name: pipeline.StageEnsureImporter, Fn: p.stageEnsureImporter},
		{Name: pipeline.StageImportBranch, Fn: p.stageImportBranch},
		{Name: pipeline.StagePushBranch, Fn: p.stagePushBranch},
	}
}

func (p *Publisher) stageGenerateDocs(ctx context.Context, st *pipeline.State) error {
	return p.caps.Generator.Generate(ctx, st.ProjectDir)
}

func (p *Publisher) stageWriteRedirect(_ context.Context, st *pipeline.State) error {
	return docgen.WriteRedirect(st.OutputDir, p.cfg.Project.Package)
}

func (p *Publisher) stageEnsureImporter(ctx context.Context, _ *pipeline.State) error {
	return p.caps.Importer.Ensure(ctx)
}

func (p *Publisher) stageImportBranch(ctx context.Context, st *pipeline.State) error {
	hash, err := p.caps.Importer.Import(ctx, st.OutputDir, st.Branch)
	if err != nil {
		return fmt.Errorf("import %s as %s: %w", st.OutputDir, st.Branch, err)
	}
	st.CommitHash = hash
	return nil
}

func (p *Publisher) stagePushBranch(ctx context.Context, st *pipeline.State) error {
	return p.caps.Pusher.Push(ctx, st.OutputDir, st.RemoteURL, st.Branch, st.Token)
}
