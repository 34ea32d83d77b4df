package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Scoring holds scoring configuration
type Scoring struct {
	Path string
}

// Flags returns CLI flags for Scoring configuration
func (s *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to YAML file with scoring weights and penalty rules",
			Category:    "Scoring",
			Sources:     cli.EnvVars("AUDITDASH_SCORING_CONFIG"),
			Destination: &s.Path,
		},
	}
}

// Configure loads the scoring configuration from the YAML file, or
// returns the built-in defaults when no path is given.
func (s *Scoring) Configure() (*model.ScoringConfig, error) {
	if s.Path == "" {
		return model.DefaultScoringConfig(), nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config file", goerr.V("path", s.Path))
	}

	cfg := model.DefaultScoringConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse scoring config file", goerr.V("path", s.Path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scoring config", goerr.V("path", s.Path))
	}

	return cfg, nil
}

// LogValue returns structured log value
func (s Scoring) LogValue() slog.Value {
	path := s.Path
	if path == "" {
		path = "(default)"
	}
	return slog.GroupValue(
		slog.String("path", path),
	)
}
