package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/seclens/auditdash/pkg/cli/config"
)

func TestScoringConfigure(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		var cfg config.Scoring
		scoring, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Equal(t, scoring.SeverityWeight, 0.6)
		gt.Equal(t, scoring.Critical.Factor, 25.0)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yml")
		gt.NoError(t, os.WriteFile(path, []byte(`
severity_weight: 0.5
self_grade_weight: 0.5
critical:
  factor: 30
  cap: 90
`), 0o600))

		cfg := config.Scoring{Path: path}
		scoring, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Equal(t, scoring.SeverityWeight, 0.5)
		gt.Equal(t, scoring.Critical.Factor, 30.0)
		gt.Equal(t, scoring.Critical.Cap, 90.0)
		// Unspecified levels keep their defaults
		gt.Equal(t, scoring.High.Factor, 15.0)
	})

	t.Run("invalid weights are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yml")
		gt.NoError(t, os.WriteFile(path, []byte("severity_weight: 0.9\n"), 0o600))

		cfg := config.Scoring{Path: path}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		cfg := config.Scoring{Path: filepath.Join(t.TempDir(), "nope.yml")}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}
