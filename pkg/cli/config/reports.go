package config

import (
	"log/slog"

	"github.com/seclens/auditdash/pkg/domain/interfaces"
	"github.com/seclens/auditdash/pkg/service/source"
	"github.com/urfave/cli/v3"
)

// Reports holds report discovery configuration
type Reports struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// Flags returns CLI flags for Reports configuration
func (r *Reports) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Directory containing Markdown report files",
			Category:    "Reports",
			Value:       ".",
			Sources:     cli.EnvVars("AUDITDASH_DIR"),
			Destination: &r.Dir,
		},
		&cli.StringFlag{
			Name:        "pattern",
			Usage:       "Glob pattern for report files",
			Category:    "Reports",
			Value:       "*.md",
			Sources:     cli.EnvVars("AUDITDASH_PATTERN"),
			Destination: &r.Pattern,
		},
		&cli.BoolFlag{
			Name:        "recursive",
			Usage:       "Scan subdirectories recursively",
			Category:    "Reports",
			Sources:     cli.EnvVars("AUDITDASH_RECURSIVE"),
			Destination: &r.Recursive,
		},
	}
}

// Configure creates the report source from the configuration
func (r *Reports) Configure() interfaces.Source {
	return source.NewDir(r.Dir, r.Pattern, r.Recursive)
}

// LogValue returns structured log value
func (r Reports) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", r.Dir),
		slog.String("pattern", r.Pattern),
		slog.Bool("recursive", r.Recursive),
	)
}
