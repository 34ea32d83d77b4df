package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// GradeScores maps a self-grade letter to its numeric score. E and F both map
// to 40; the table is kept exactly as the report authors expect it, so any
// change here is a behavior change, not a fix.
var GradeScores = map[types.GradeLetter]float64{
	types.GradeA: 95.0,
	types.GradeB: 85.0,
	types.GradeC: 75.0,
	types.GradeD: 60.0,
	types.GradeE: 40.0,
	types.GradeF: 40.0,
}

// SelfGrade is an author-supplied letter grade found in report text, with its
// mapped numeric score. Absence is represented by a nil *SelfGrade, never by
// a magic score value.
type SelfGrade struct {
	Letter types.GradeLetter `json:"letter"`
	Score  float64           `json:"score"`
}

// NewSelfGrade creates a SelfGrade from a letter using the fixed table
func NewSelfGrade(letter types.GradeLetter) (*SelfGrade, error) {
	score, ok := GradeScores[letter]
	if !ok {
		return nil, goerr.New("unknown grade letter", goerr.V("letter", letter))
	}
	return &SelfGrade{
		Letter: letter,
		Score:  score,
	}, nil
}

// ScoreBreakdown holds the scoring signals for one report. FinalScore is
// always derived from the other fields by the combiner and is never set
// independently.
type ScoreBreakdown struct {
	SeverityScore float64    `json:"severity_score"`
	SelfGrade     *SelfGrade `json:"self_grade,omitempty"`
	FinalScore    float64    `json:"final_score"`
}

// SelfGradeScore returns the numeric self-grade score, or nil when the report
// carries no grade. Used for the flattened API payload.
func (s ScoreBreakdown) SelfGradeScore() *float64 {
	if s.SelfGrade == nil {
		return nil
	}
	score := s.SelfGrade.Score
	return &score
}

// Validate validates the score ranges
func (s ScoreBreakdown) Validate() error {
	if s.SeverityScore < 1.0 || s.SeverityScore > 100.0 {
		return goerr.New("severity score out of range",
			goerr.V("score", s.SeverityScore))
	}
	if s.FinalScore < 1.0 || s.FinalScore > 100.0 {
		return goerr.New("final score out of range",
			goerr.V("score", s.FinalScore))
	}
	if s.SelfGrade != nil {
		if _, ok := GradeScores[s.SelfGrade.Letter]; !ok {
			return goerr.New("unknown grade letter",
				goerr.V("letter", s.SelfGrade.Letter))
		}
	}
	return nil
}
