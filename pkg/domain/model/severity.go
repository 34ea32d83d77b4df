package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// SeverityCounts holds keyword occurrence counts for the four fixed severity
// levels. All four fields are always present; a missing level is zero.
type SeverityCounts struct {
	Critical int `json:"critical" yaml:"critical"`
	High     int `json:"high" yaml:"high"`
	Medium   int `json:"medium" yaml:"medium"`
	Low      int `json:"low" yaml:"low"`
}

// Validate validates the severity counts
func (c SeverityCounts) Validate() error {
	for _, level := range types.AllSeverityLevels() {
		if c.Count(level) < 0 {
			return goerr.New("severity count must be non-negative",
				goerr.V("level", level),
				goerr.V("count", c.Count(level)))
		}
	}
	return nil
}

// Count returns the occurrence count for a single level
func (c SeverityCounts) Count(level types.SeverityLevel) int {
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
		return 0
	}
}

// Total returns the sum over all levels
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// HasAny returns true if at least one of the given levels has a non-zero
// count. An empty level set never matches.
func (c SeverityCounts) HasAny(levels ...types.SeverityLevel) bool {
	for _, level := range levels {
		if c.Count(level) > 0 {
			return true
		}
	}
	return false
}
