// Package pipeline runs the one-shot fetch → convert sequence and
// carries its outcome into the API service as an explicit result value
// instead of module-level state.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"planpipe/core"
	"planpipe/core/extract"
	"planpipe/core/fetch"
	"planpipe/core/render"
	"planpipe/core/snapshot"
	"planpipe/core/store"
)

// Result is everything the startup run produced. Err is set when any
// stage failed; the artifact paths are only meaningful when Err is nil.
type Result struct {
	PDFPath   string
	Stem      string
	PageCount int
	Artifacts core.ArtifactSet
	FetchedAt time.Time
	Err       error
}

// Ready reports whether the pipeline completed successfully.
func (r Result) Ready() bool {
	return r.Err == nil
}

// Pipeline wires the fetcher, extractor and renderers over one store.
type Pipeline struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	snapshot  *snapshot.Renderer
	store     *store.Store
	log       *zap.SugaredLogger
}

// New builds a Pipeline with the default stage implementations.
func New(st *store.Store) *Pipeline {
	return &Pipeline{
		fetcher:   fetch.New(st),
		extractor: extract.New(),
		snapshot:  snapshot.New(),
		store:     st,
		log:       zap.S(),
	}
}

// renderers returns the artifact renderers in output order.
func renderers() []core.Renderer {
	return []core.Renderer{
		render.NewTextRenderer(),
		render.NewXMLRenderer(),
		render.NewStructuredRenderer(),
	}
}

// Run fetches the study plan and converts it. Errors end up in the
// Result, never in a panic or exit: the API serves failures via /status.
func (p *Pipeline) Run(ctx context.Context, pageURL string) Result {
	fetched, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.log.Errorw("fetch failed", "url", pageURL, "error", err)
		return Result{Err: fmt.Errorf("fetch: %w", err)}
	}

	doc, set, err := p.Convert(fetched.PDFPath)
	if err != nil {
		p.log.Errorw("convert failed", "pdf", fetched.PDFPath, "error", err)
		return Result{PDFPath: fetched.PDFPath, FetchedAt: fetched.FetchedAt, Err: err}
	}

	// The page snapshot is provenance, not a pipeline artifact: a
	// failure here is logged and ignored.
	if data, err := p.snapshot.Render(fetched.PageURL, fetched.PageHTML); err != nil {
		p.log.Warnw("page snapshot skipped", "error", err)
	} else if _, err := p.store.WriteProcessed(doc.Stem, ".page.md", data); err != nil {
		p.log.Warnw("page snapshot not written", "error", err)
	}

	return Result{
		PDFPath:   fetched.PDFPath,
		Stem:      doc.Stem,
		PageCount: doc.PageCount,
		Artifacts: set,
		FetchedAt: fetched.FetchedAt,
	}
}

// Convert extracts the PDF at path and writes the three derived
// artifacts, returning the document and the artifact path set.
func (p *Pipeline) Convert(path string) (*core.Document, core.ArtifactSet, error) {
	doc, err := p.extractor.Extract(path)
	if err != nil {
		return nil, core.ArtifactSet{}, fmt.Errorf("extract: %w", err)
	}

	for _, r := range renderers() {
		data, err := r.Render(doc)
		if err != nil {
			return nil, core.ArtifactSet{}, fmt.Errorf("render %s: %w", r.Extension(), err)
		}
		out, err := p.store.WriteProcessed(doc.Stem, r.Extension(), data)
		if err != nil {
			return nil, core.ArtifactSet{}, err
		}
		p.log.Infow("artifact written", "path", out)
	}

	return doc, p.store.Artifacts(path), nil
}
