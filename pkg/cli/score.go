package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/cli/config"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdScore() *cli.Command {
	var scoringCfg config.Scoring

	return &cli.Command{
		Name:      "score",
		Usage:     "Score a single Markdown report file and print the result as JSON",
		ArgsUsage: "<report.md>",
		Flags:     scoringCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one report file is required")
			}
			path := c.Args().First()

			scoring, err := scoringCfg.Configure()
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return goerr.Wrap(err, "failed to stat report file", goerr.V("path", path))
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return goerr.Wrap(err, "failed to read report file", goerr.V("path", path))
			}

			// No renderer: scoring does not need the HTML body
			ingest := usecase.NewIngest(nil, usecase.WithScoringConfig(scoring))
			report, err := ingest.Load(ctx, model.SourceEntry{
				Name:       filepath.Base(path),
				Text:       string(data),
				ModifiedAt: info.ModTime(),
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(report.Summary(), "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal result")
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
