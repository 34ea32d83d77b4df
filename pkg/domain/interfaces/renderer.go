package interfaces

import "context"

// Renderer converts report text to presentation markup. The engine treats the
// output as opaque; a failing renderer degrades a single record, never the
// batch.
type Renderer interface {
	Render(ctx context.Context, text string) (string, error)
}
