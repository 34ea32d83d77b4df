package types

import (
	"strings"

	"github.com/google/uuid"
)

// SeverityLevel represents one of the four fixed severity classes
type SeverityLevel string

const (
	SeverityCritical SeverityLevel = "critical"
	SeverityHigh     SeverityLevel = "high"
	SeverityMedium   SeverityLevel = "medium"
	SeverityLow      SeverityLevel = "low"
)

// String returns the string representation
func (s SeverityLevel) String() string {
	return string(s)
}

// AllSeverityLevels returns the fixed severity classes in descending weight order
func AllSeverityLevels() []SeverityLevel {
	return []SeverityLevel{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

// ParseSeverityLevel parses a severity level name, case-insensitively
func ParseSeverityLevel(s string) (SeverityLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, true
	case "high":
		return SeverityHigh, true
	case "medium":
		return SeverityMedium, true
	case "low":
		return SeverityLow, true
	default:
		return "", false
	}
}

// GradeLetter represents an author-supplied self-grade letter (A-F)
type GradeLetter string

const (
	GradeA GradeLetter = "A"
	GradeB GradeLetter = "B"
	GradeC GradeLetter = "C"
	GradeD GradeLetter = "D"
	GradeE GradeLetter = "E"
	GradeF GradeLetter = "F"
)

// String returns the string representation
func (g GradeLetter) String() string {
	return string(g)
}

// SortKey identifies a dataset ordering
type SortKey string

const (
	SortByScore  SortKey = "score"
	SortByNewest SortKey = "newest"
	SortByTitle  SortKey = "title"
)

// String returns the string representation
func (k SortKey) String() string {
	return string(k)
}

// ParseSortKey parses a sort key name; empty input falls back to score ordering
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "score":
		return SortByScore, true
	case "newest":
		return SortByNewest, true
	case "title", "name":
		return SortByTitle, true
	default:
		return "", false
	}
}

// SortDirection represents the ordering direction of a sort key
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// String returns the string representation
func (d SortDirection) String() string {
	return string(d)
}

// DefaultDirection returns the natural direction of a sort key: scores and
// modification times are most useful highest/newest first, titles A-Z
func (k SortKey) DefaultDirection() SortDirection {
	if k == SortByTitle {
		return SortAscending
	}
	return SortDescending
}

// ParseSortDirection parses a direction name; empty input yields the given default
func ParseSortDirection(s string, def SortDirection) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, true
	case "asc", "ascending":
		return SortAscending, true
	case "desc", "descending":
		return SortDescending, true
	default:
		return "", false
	}
}

// SnapshotID identifies one telemetry snapshot taken by the analyze command
type SnapshotID string

// String returns the string representation
func (id SnapshotID) String() string {
	return string(id)
}

// NewSnapshotID creates a new SnapshotID
func NewSnapshotID() SnapshotID {
	return SnapshotID(uuid.New().String())
}
