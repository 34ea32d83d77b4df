package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle reports an application error through the context logger
func Handle(ctx context.Context, err error) {
	ctxlog.From(ctx).Error("application error", "error", err)
}
