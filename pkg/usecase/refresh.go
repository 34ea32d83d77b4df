package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/interfaces"
)

// Refresh runs one full aggregation pass: enumerate sources, build records,
// and swap them into the repository. Used at startup and by dashboard
// reloads.
type Refresh struct {
	source interfaces.Source
	ingest *Ingest
	repo   interfaces.Repository
}

// NewRefresh creates a new Refresh instance
func NewRefresh(source interfaces.Source, ingest *Ingest, repo interfaces.Repository) *Refresh {
	return &Refresh{
		source: source,
		ingest: ingest,
		repo:   repo,
	}
}

// Run performs the aggregation pass and returns the number of loaded reports
func (u *Refresh) Run(ctx context.Context) (int, error) {
	entries, err := u.source.Entries(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to enumerate report sources")
	}

	reports, err := u.ingest.LoadAll(ctx, entries)
	if err != nil {
		return 0, err
	}

	if err := u.repo.ReplaceAll(ctx, reports); err != nil {
		return 0, goerr.Wrap(err, "failed to store reports")
	}

	ctxlog.From(ctx).Info("Aggregated reports",
		"sources", len(entries),
		"loaded", len(reports),
	)
	return len(reports), nil
}
