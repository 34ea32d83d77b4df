package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/service/scoring"
)

func TestCountSeverities(t *testing.T) {
	t.Run("counts all four levels", func(t *testing.T) {
		text := "One critical bug, two high issues (high), a medium note and a low remark."
		counts := scoring.CountSeverities(text)
		gt.Equal(t, counts, model.SeverityCounts{Critical: 1, High: 2, Medium: 1, Low: 1})
	})

	t.Run("case insensitive", func(t *testing.T) {
		counts := scoring.CountSeverities("Critical CRITICAL critical")
		gt.Equal(t, counts.Critical, 3)
	})

	t.Run("word boundaries exclude substrings", func(t *testing.T) {
		counts := scoring.CountSeverities("highlight the criticality of lowering mediums")
		gt.Equal(t, counts, model.SeverityCounts{})
	})

	t.Run("hyphen and punctuation are boundaries", func(t *testing.T) {
		counts := scoring.CountSeverities("low-severity finding; severity=high.")
		gt.Equal(t, counts.Low, 1)
		gt.Equal(t, counts.High, 1)
	})

	t.Run("empty text yields zero counts", func(t *testing.T) {
		counts := scoring.CountSeverities("")
		gt.Equal(t, counts, model.SeverityCounts{})
		gt.Equal(t, counts.Total(), 0)
	})

	t.Run("counts mentions in prose not findings", func(t *testing.T) {
		// Level names in unrelated sentences still count
		counts := scoring.CountSeverities("Memory usage is low. Disk usage is low.")
		gt.Equal(t, counts.Low, 2)
	})
}

func TestExtractSelfGrade(t *testing.T) {
	t.Run("grade with colon", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("Overall assessment.\n\nGrade: B\n")
		gt.V(t, grade).NotNil()
		gt.Equal(t, grade.Letter, "B")
		gt.Equal(t, grade.Score, 85.0)
	})

	t.Run("self-grade with dash", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("Self-Grade - C")
		gt.V(t, grade).NotNil()
		gt.Equal(t, grade.Letter, "C")
		gt.Equal(t, grade.Score, 75.0)
	})

	t.Run("self grade with space", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("self grade: a")
		gt.V(t, grade).NotNil()
		gt.Equal(t, grade.Letter, "A")
		gt.Equal(t, grade.Score, 95.0)
	})

	t.Run("separator is optional", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("grade D")
		gt.V(t, grade).NotNil()
		gt.Equal(t, grade.Letter, "D")
		gt.Equal(t, grade.Score, 60.0)
	})

	t.Run("E and F both map to 40", func(t *testing.T) {
		e := scoring.ExtractSelfGrade("Grade: E")
		f := scoring.ExtractSelfGrade("Grade: F")
		gt.V(t, e).NotNil()
		gt.V(t, f).NotNil()
		gt.Equal(t, e.Letter, "E")
		gt.Equal(t, f.Letter, "F")
		gt.Equal(t, e.Score, 40.0)
		gt.Equal(t, f.Score, 40.0)
	})

	t.Run("first match wins", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("Grade: A\nLater revision: Grade: F")
		gt.V(t, grade).NotNil()
		gt.Equal(t, grade.Letter, "A")
	})

	t.Run("nil when absent", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("No assessment was given.")
		gt.Equal(t, grade, nil)
	})

	t.Run("letter must stand alone", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("Grade: Assessment pending")
		gt.Equal(t, grade, nil)
	})

	t.Run("grade inside other words does not match", func(t *testing.T) {
		grade := scoring.ExtractSelfGrade("we should upgrade a dependency")
		gt.Equal(t, grade, nil)
	})
}
