package scoring

import (
	"fmt"
	"regexp"

	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// severityPatterns matches each level name as a bare word anywhere in prose.
// This over-counts on purpose: "low" in an unrelated sentence still counts.
// It is an accepted heuristic for unstructured reports, not a field parser.
var severityPatterns = func() map[types.SeverityLevel]*regexp.Regexp {
	patterns := make(map[types.SeverityLevel]*regexp.Regexp, 4)
	for _, level := range types.AllSeverityLevels() {
		patterns[level] = regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, level))
	}
	return patterns
}()

// CountSeverities counts case-insensitive, word-boundary-delimited
// occurrences of the four severity level names in text. Empty text yields
// all-zero counts. Pure and deterministic.
func CountSeverities(text string) model.SeverityCounts {
	var counts model.SeverityCounts
	if text == "" {
		return counts
	}
	counts.Critical = len(severityPatterns[types.SeverityCritical].FindAllStringIndex(text, -1))
	counts.High = len(severityPatterns[types.SeverityHigh].FindAllStringIndex(text, -1))
	counts.Medium = len(severityPatterns[types.SeverityMedium].FindAllStringIndex(text, -1))
	counts.Low = len(severityPatterns[types.SeverityLow].FindAllStringIndex(text, -1))
	return counts
}
