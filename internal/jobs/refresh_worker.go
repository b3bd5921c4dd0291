package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/telemetry"
)

// DocumentLoader loads the current knowledge documents from all sources.
type DocumentLoader interface {
	Load(ctx context.Context) []domain.Document
}

// IndexBuilder rebuilds the knowledge index from a document batch.
type IndexBuilder interface {
	Build(ctx context.Context, docs []domain.Document) error
}

// RefreshProcessor rebuilds the knowledge index from current sources on each
// tick. Search keeps serving the previous index while a rebuild runs, so a
// failed refresh leaves the system on the last good index.
type RefreshProcessor struct {
	loader DocumentLoader
	index  IndexBuilder
}

func NewRefreshProcessor(loader DocumentLoader, index IndexBuilder) *RefreshProcessor {
	return &RefreshProcessor{
		loader: loader,
		index:  index,
	}
}

// Refresh reloads all sources and rebuilds the index.
func (p *RefreshProcessor) Refresh(ctx context.Context) error {
	docs := p.loader.Load(ctx)

	if err := p.index.Build(ctx, docs); err != nil {
		telemetry.CaptureError(ctx, err)
		return fmt.Errorf("failed to rebuild knowledge index: %w", err)
	}

	log.Printf("jobs: knowledge index refreshed from %d documents", len(docs))
	return nil
}
