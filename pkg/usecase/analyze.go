package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/service/llm"
	"github.com/seclens/auditdash/pkg/service/snapshot"
)

// Analyze captures a host telemetry snapshot, obtains an AI audit report for
// it, and writes both into the reports directory where the aggregation
// pipeline will pick the report up.
type Analyze struct {
	collector *snapshot.Collector
	auditor   *llm.AuditService
	outDir    string
}

// NewAnalyze creates a new Analyze instance
func NewAnalyze(collector *snapshot.Collector, auditor *llm.AuditService, outDir string) *Analyze {
	return &Analyze{
		collector: collector,
		auditor:   auditor,
		outDir:    outDir,
	}
}

// Run performs the snapshot, analysis and writes. An LLM failure degrades to
// an error-report Markdown file rather than aborting, so a report file is
// always produced.
func (u *Analyze) Run(ctx context.Context) (string, error) {
	logger := ctxlog.From(ctx)

	snap := u.collector.Collect(ctx)
	logger.Info("Collected telemetry snapshot",
		"id", snap.ID,
		"errors", len(snap.Errors),
	)

	reportMD, err := u.auditor.GenerateReport(ctx, snap)
	if err != nil {
		logger.Warn("AI analysis failed, writing error report",
			"error", err,
		)
		reportMD = fmt.Sprintf("# AI Analysis Error\n\n%v\n", err)
	}

	base := fmt.Sprintf("security_audit_%s", snap.TakenAt.Format("20060102_150405"))
	reportPath := filepath.Join(u.outDir, base+".md")
	snapshotPath := filepath.Join(u.outDir, base+"_snapshot.json")

	if err := os.WriteFile(reportPath, []byte(reportMD), 0o600); err != nil {
		return "", goerr.Wrap(err, "failed to write report",
			goerr.V("path", reportPath))
	}

	snapshotJSON, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal snapshot")
	}
	if err := os.WriteFile(snapshotPath, snapshotJSON, 0o600); err != nil {
		return "", goerr.Wrap(err, "failed to write snapshot",
			goerr.V("path", snapshotPath))
	}

	logger.Info("Wrote audit report",
		"report", reportPath,
		"snapshot", snapshotPath,
	)
	return reportPath, nil
}
