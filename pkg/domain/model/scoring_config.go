package model

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// PenaltyRule defines the deduction for one severity level: factor points per
// occurrence, capped so a single level cannot push the score below its floor.
type PenaltyRule struct {
	Factor float64 `yaml:"factor" json:"factor"`
	Cap    float64 `yaml:"cap" json:"cap"`
}

// ScoringConfig holds the numeric combination rule as explicit configuration.
// The engine never reads ambient state; callers pass one of these in.
type ScoringConfig struct {
	SeverityWeight  float64 `yaml:"severity_weight" json:"severity_weight"`
	SelfGradeWeight float64 `yaml:"self_grade_weight" json:"self_grade_weight"`

	Critical PenaltyRule `yaml:"critical" json:"critical"`
	High     PenaltyRule `yaml:"high" json:"high"`
	Medium   PenaltyRule `yaml:"medium" json:"medium"`
	Low      PenaltyRule `yaml:"low" json:"low"`
}

// DefaultScoringConfig returns the fixed formula: 0.6/0.4 weighting and the
// per-level deductions 25/60, 15/45, 7/35, 2/10.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		SeverityWeight:  0.6,
		SelfGradeWeight: 0.4,
		Critical:        PenaltyRule{Factor: 25.0, Cap: 60.0},
		High:            PenaltyRule{Factor: 15.0, Cap: 45.0},
		Medium:          PenaltyRule{Factor: 7.0, Cap: 35.0},
		Low:             PenaltyRule{Factor: 2.0, Cap: 10.0},
	}
}

// Penalty returns the rule for a single level
func (c *ScoringConfig) Penalty(level types.SeverityLevel) PenaltyRule {
	switch level {
	case types.SeverityCritical:
		return c.Critical
	case types.SeverityHigh:
		return c.High
	case types.SeverityMedium:
		return c.Medium
	case types.SeverityLow:
		return c.Low
	default:
		return PenaltyRule{}
	}
}

// Validate validates the scoring configuration
func (c *ScoringConfig) Validate() error {
	if c.SeverityWeight < 0 || c.SelfGradeWeight < 0 {
		return goerr.New("score weights must be non-negative",
			goerr.V("severity_weight", c.SeverityWeight),
			goerr.V("self_grade_weight", c.SelfGradeWeight))
	}
	if math.Abs(c.SeverityWeight+c.SelfGradeWeight-1.0) > 1e-9 {
		return goerr.New("score weights must sum to 1",
			goerr.V("severity_weight", c.SeverityWeight),
			goerr.V("self_grade_weight", c.SelfGradeWeight))
	}

	for _, level := range types.AllSeverityLevels() {
		rule := c.Penalty(level)
		if rule.Factor < 0 || rule.Cap < 0 {
			return goerr.New("penalty rule must be non-negative",
				goerr.V("level", level),
				goerr.V("factor", rule.Factor),
				goerr.V("cap", rule.Cap))
		}
	}

	return nil
}
