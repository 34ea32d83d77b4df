package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
)

// SourceEntry is one discovered report source: an identifier, its already-read
// text, and the modification timestamp that drives "newest" ordering.
type SourceEntry struct {
	Name       string
	Text       string
	ModifiedAt time.Time
}

// Report is one scored report record. It is constructed once by the loader
// and immutable afterwards; it lives only in memory for the duration of a
// single aggregation run.
type Report struct {
	Filename   string         // Source identifier (e.g., "audit_2025-08-01.md")
	Title      string         // First top-level heading, or the filename stem
	HTML       string         // Rendered body, opaque to the engine
	Text       string         // Original source text
	Severity   SeverityCounts // Keyword occurrence counts
	Scores     ScoreBreakdown // Severity, self-grade and final scores
	ModifiedAt time.Time      // Source modification time
}

// NewReport creates a new Report instance
func NewReport(filename, title, html, text string, severity SeverityCounts, scores ScoreBreakdown, modifiedAt time.Time) (*Report, error) {
	if filename == "" {
		return nil, goerr.New("report filename is required")
	}
	if title == "" {
		return nil, goerr.New("report title is required",
			goerr.V("filename", filename))
	}
	if err := severity.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid severity counts",
			goerr.V("filename", filename))
	}
	if err := scores.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid score breakdown",
			goerr.V("filename", filename))
	}

	return &Report{
		Filename:   filename,
		Title:      title,
		HTML:       html,
		Text:       text,
		Severity:   severity,
		Scores:     scores,
		ModifiedAt: modifiedAt,
	}, nil
}

// Excerpt returns the first maxRunes runes of the raw text with runs of
// whitespace collapsed, for search-oriented list payloads.
func (r *Report) Excerpt(maxRunes int) string {
	collapsed := strings.Join(strings.FieldsFunc(r.Text, unicode.IsSpace), " ")
	runes := []rune(collapsed)
	if len(runes) <= maxRunes {
		return collapsed
	}
	return string(runes[:maxRunes])
}

// ReportSummary is the flattened list representation consumed by the
// presentation layer.
type ReportSummary struct {
	Filename       string         `json:"filename"`
	Title          string         `json:"title"`
	Excerpt        string         `json:"excerpt"`
	Severity       SeverityCounts `json:"severity"`
	SeverityScore  float64        `json:"severity_score"`
	SelfGradeScore *float64       `json:"self_grade_score"`
	FinalScore     float64        `json:"final_score"`
	ModifiedAt     time.Time      `json:"modified_at"`
}

// excerptRunes bounds the raw-text excerpt shipped with list payloads
const excerptRunes = 280

// Summary returns the flattened list representation of the report
func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		Filename:       r.Filename,
		Title:          r.Title,
		Excerpt:        r.Excerpt(excerptRunes),
		Severity:       r.Severity,
		SeverityScore:  r.Scores.SeverityScore,
		SelfGradeScore: r.Scores.SelfGradeScore(),
		FinalScore:     r.Scores.FinalScore,
		ModifiedAt:     r.ModifiedAt,
	}
}

// ReportDetail is the full representation including the rendered body
type ReportDetail struct {
	ReportSummary
	HTML string `json:"html"`
}

// Detail returns the full representation of the report
func (r *Report) Detail() ReportDetail {
	return ReportDetail{
		ReportSummary: r.Summary(),
		HTML:          r.HTML,
	}
}
