package snapshot_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/seclens/auditdash/pkg/service/snapshot"
)

func TestCollect(t *testing.T) {
	ctx := context.Background()

	t.Run("always produces a snapshot", func(t *testing.T) {
		snap := snapshot.NewCollector().Collect(ctx)
		gt.V(t, snap).NotNil()
		gt.True(t, snap.ID != "")
		gt.False(t, snap.TakenAt.IsZero())
	})

	t.Run("process limit bounds the list", func(t *testing.T) {
		snap := snapshot.NewCollector(snapshot.WithProcessLimit(3)).Collect(ctx)
		gt.True(t, len(snap.TopProcesses) <= 3)
	})
}
