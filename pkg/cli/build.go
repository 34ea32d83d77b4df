package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/cli/config"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/domain/types"
	"github.com/seclens/auditdash/pkg/service/export"
	"github.com/seclens/auditdash/pkg/service/render"
	"github.com/seclens/auditdash/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdBuild() *cli.Command {
	var (
		reportsCfg config.Reports
		scoringCfg config.Scoring
		outPath    string
		title      string
	)

	flags := joinFlags(
		reportsCfg.Flags(),
		scoringCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "Output HTML file path",
				Category:    "Build",
				Value:       "dashboard.html",
				Sources:     cli.EnvVars("AUDITDASH_OUT"),
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "Dashboard page title",
				Category:    "Build",
				Sources:     cli.EnvVars("AUDITDASH_TITLE"),
				Destination: &title,
			},
		},
	)

	return &cli.Command{
		Name:  "build",
		Usage: "Build a self-contained static dashboard HTML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			scoring, err := scoringCfg.Configure()
			if err != nil {
				return err
			}

			src := reportsCfg.Configure()
			ingest := usecase.NewIngest(render.NewMarkdown(), usecase.WithScoringConfig(scoring))

			entries, err := src.Entries(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to enumerate report sources")
			}

			reports, err := ingest.LoadAll(ctx, entries)
			if err != nil {
				return goerr.Wrap(err, "failed to load reports")
			}

			ds := model.NewDataset(reports).SortBy(types.SortByScore, types.SortByScore.DefaultDirection())

			f, err := os.Create(outPath)
			if err != nil {
				return goerr.Wrap(err, "failed to create output file", goerr.V("path", outPath))
			}
			defer f.Close()

			if err := export.NewDashboard(title).Write(ctx, f, ds); err != nil {
				return err
			}

			logger.Info("Built static dashboard",
				slog.String("path", outPath),
				slog.Int("reports", len(ds)),
			)
			return nil
		},
	}
}
