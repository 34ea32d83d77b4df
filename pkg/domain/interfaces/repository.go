package interfaces

import (
	"context"

	"github.com/seclens/auditdash/pkg/domain/model"
)

// Repository holds the scored reports for one aggregation run. Insertion
// order is preserved and is the dataset's default order.
type Repository interface {
	PutReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, filename string) (*model.Report, error)
	ListReports(ctx context.Context) ([]*model.Report, error)

	// ReplaceAll atomically swaps the stored reports, used by dashboard reloads
	ReplaceAll(ctx context.Context, reports []*model.Report) error

	// Close closes the repository
	Close() error
}
