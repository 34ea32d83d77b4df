package usecase

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/interfaces"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/service/render"
	"github.com/seclens/auditdash/pkg/service/scoring"
	"golang.org/x/sync/errgroup"
)

// titlePattern matches the first top-level Markdown heading
var titlePattern = regexp.MustCompile(`(?m)^\s*#\s+(.+)$`)

// IngestConfig holds configuration for the Ingest use case
type IngestConfig struct {
	concurrency int
	scoring     *model.ScoringConfig
}

// IngestOption is a functional option for configuring Ingest
type IngestOption func(*IngestConfig)

// WithConcurrency bounds the parallelism of batch loads
func WithConcurrency(n int) IngestOption {
	return func(c *IngestConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithScoringConfig sets the scoring configuration for loaded reports
func WithScoringConfig(cfg *model.ScoringConfig) IngestOption {
	return func(c *IngestConfig) {
		if cfg != nil {
			c.scoring = cfg
		}
	}
}

// Ingest builds scored report records from raw sources
type Ingest struct {
	renderer interfaces.Renderer
	config   *IngestConfig
}

// NewIngest creates a new Ingest instance. A nil renderer degrades every
// record to the escaped-plaintext fallback instead of failing.
func NewIngest(renderer interfaces.Renderer, opts ...IngestOption) *Ingest {
	config := &IngestConfig{
		concurrency: 4,
		scoring:     model.DefaultScoringConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Ingest{
		renderer: renderer,
		config:   config,
	}
}

// Load builds one report record from a source entry. It is total over text
// input: malformed Markdown, missing headings and missing grades all produce
// a well-defined record.
func (u *Ingest) Load(ctx context.Context, entry model.SourceEntry) (*model.Report, error) {
	if entry.Name == "" {
		return nil, goerr.New("source entry name is required")
	}

	html := u.renderBody(ctx, entry)

	counts := scoring.CountSeverities(entry.Text)
	grade := scoring.ExtractSelfGrade(entry.Text)
	scores := scoring.Breakdown(counts, grade, u.config.scoring)

	report, err := model.NewReport(
		entry.Name,
		deriveTitle(entry.Text, entry.Name),
		html,
		entry.Text,
		counts,
		scores,
		entry.ModifiedAt,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build report record",
			goerr.V("filename", entry.Name))
	}
	return report, nil
}

// LoadAll builds records for all entries with bounded parallelism. The result
// preserves the entries' order regardless of completion order, and a failure
// on one source skips that record without aborting the batch.
func (u *Ingest) LoadAll(ctx context.Context, entries []model.SourceEntry) ([]*model.Report, error) {
	results := make([]*model.Report, len(entries))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(u.config.concurrency)

	for i, entry := range entries {
		eg.Go(func() error {
			report, err := u.Load(egCtx, entry)
			if err != nil {
				ctxlog.From(egCtx).Warn("Skipping report source",
					"filename", entry.Name,
					"error", err,
				)
				return nil
			}
			results[i] = report
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load report batch")
	}

	// Compact skipped slots, keeping enumeration order
	reports := make([]*model.Report, 0, len(results))
	for _, r := range results {
		if r != nil {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

// renderBody renders the entry text, degrading to the escaped-plaintext
// fallback when the renderer is missing or fails for this record.
func (u *Ingest) renderBody(ctx context.Context, entry model.SourceEntry) string {
	if u.renderer == nil {
		return render.Fallback(entry.Text)
	}

	html, err := u.renderer.Render(ctx, entry.Text)
	if err != nil {
		ctxlog.From(ctx).Warn("Render failed, falling back to escaped text",
			"filename", entry.Name,
			"error", err,
		)
		return render.Fallback(entry.Text)
	}
	if html == "" {
		return render.Fallback(entry.Text)
	}
	return html
}

// deriveTitle returns the first top-level heading of the text, or the
// filename without its extension. The result is never empty.
func deriveTitle(text, filename string) string {
	if m := titlePattern.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" {
		return filename
	}
	return stem
}
