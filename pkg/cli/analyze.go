package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/seclens/auditdash/pkg/cli/config"
	"github.com/seclens/auditdash/pkg/service/llm"
	"github.com/seclens/auditdash/pkg/service/snapshot"
	"github.com/seclens/auditdash/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var (
		geminiCfg    config.Gemini
		outDir       string
		processLimit int
	)

	flags := joinFlags(
		geminiCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "out-dir",
				Usage:       "Directory to write the audit report and snapshot into",
				Category:    "Analyze",
				Value:       ".",
				Sources:     cli.EnvVars("AUDITDASH_OUT_DIR"),
				Destination: &outDir,
			},
			&cli.IntFlag{
				Name:        "process-limit",
				Usage:       "Number of top CPU processes to include in the snapshot",
				Category:    "Analyze",
				Value:       25,
				Sources:     cli.EnvVars("AUDITDASH_PROCESS_LIMIT"),
				Destination: &processLimit,
			},
		},
	)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Capture a host telemetry snapshot and generate an AI audit report",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting host analysis",
				slog.Any("gemini", geminiCfg),
				slog.String("out_dir", outDir),
			)

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}

			collector := snapshot.NewCollector(snapshot.WithProcessLimit(int(processLimit)))
			auditor := llm.NewAuditService(llmClient)

			analyze := usecase.NewAnalyze(collector, auditor, outDir)
			reportPath, err := analyze.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Println(reportPath)
			return nil
		},
	}
}
