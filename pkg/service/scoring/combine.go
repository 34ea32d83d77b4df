package scoring

import (
	"math"

	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// SeverityScore applies the severity penalty rule: start from 100, subtract
// each level's count times its factor (independently capped), then clamp to
// [1, 100] so the result is always usable as a percentage.
func SeverityScore(counts model.SeverityCounts, cfg *model.ScoringConfig) float64 {
	if cfg == nil {
		cfg = model.DefaultScoringConfig()
	}

	score := 100.0
	for _, level := range types.AllSeverityLevels() {
		rule := cfg.Penalty(level)
		score -= math.Min(float64(counts.Count(level))*rule.Factor, rule.Cap)
	}
	return clamp(score, 1.0, 100.0)
}

// Combine merges the severity score and an optional self-grade into the final
// score, rounded to one decimal place. A nil grade contributes nothing: the
// final score is the severity score.
func Combine(grade *model.SelfGrade, severityScore float64, cfg *model.ScoringConfig) float64 {
	if cfg == nil {
		cfg = model.DefaultScoringConfig()
	}
	if grade == nil {
		return round1(severityScore)
	}
	return round1(cfg.SeverityWeight*severityScore + cfg.SelfGradeWeight*grade.Score)
}

// Breakdown runs the full combination rule and returns the resulting
// ScoreBreakdown for one report.
func Breakdown(counts model.SeverityCounts, grade *model.SelfGrade, cfg *model.ScoringConfig) model.ScoreBreakdown {
	severityScore := SeverityScore(counts, cfg)
	return model.ScoreBreakdown{
		SeverityScore: severityScore,
		SelfGrade:     grade,
		FinalScore:    Combine(grade, severityScore, cfg),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
