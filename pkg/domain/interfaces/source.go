package interfaces

import (
	"context"

	"github.com/seclens/auditdash/pkg/domain/model"
)

// Source enumerates report sources. Implementations skip sources that cannot
// be read and return only the entries that loaded; the returned order is the
// dataset's deterministic default order.
type Source interface {
	Entries(ctx context.Context) ([]model.SourceEntry, error)
}
