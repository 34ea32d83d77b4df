package scoring

import (
	"regexp"
	"strings"

	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// gradePattern finds "grade" or "self-grade" followed by an optional ":" or
// "-" separator and a single letter A-F. The character class keeps the letter
// inside the table's domain, so mapping can never miss.
var gradePattern = regexp.MustCompile(`(?i)\b(?:self[\s-]?grade|grade)\s*[:\-]?\s*([A-Fa-f])\b`)

// ExtractSelfGrade returns the self-grade from the first grade mention in
// text, or nil when no grade is present. First match wins; multiple mentions
// are not disambiguated.
func ExtractSelfGrade(text string) *model.SelfGrade {
	m := gradePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	letter := types.GradeLetter(strings.ToUpper(m[1]))
	grade, err := model.NewSelfGrade(letter)
	if err != nil {
		// Unreachable given the pattern's character class
		return nil
	}
	return grade
}
