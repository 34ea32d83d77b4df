package model

import (
	"math"
	"sort"
	"strings"

	"github.com/seclens/auditdash/pkg/domain/types"
)

// Dataset is the ordered collection of scored reports for one aggregation
// run. All view operations are pure: they return a new Dataset and never
// mutate the receiver, so one snapshot can serve concurrent queries.
type Dataset []*Report

// NewDataset creates a Dataset preserving the given order
func NewDataset(reports []*Report) Dataset {
	ds := make(Dataset, len(reports))
	copy(ds, reports)
	return ds
}

// Filter returns a new Dataset containing the reports matching the predicate,
// in the receiver's order. Chained calls compose by logical AND:
// d.Filter(a).Filter(b) equals d.Filter(a && b).
func (d Dataset) Filter(pred func(*Report) bool) Dataset {
	out := make(Dataset, 0, len(d))
	for _, r := range d {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Search returns the reports whose title or filename contains the query,
// case-insensitively. An empty query matches everything.
func (d Dataset) Search(query string) Dataset {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return NewDataset(d)
	}
	return d.Filter(func(r *Report) bool {
		return strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.Filename), q)
	})
}

// MinFinalScore matches reports whose final score, rounded to the nearest
// integer, is at least min.
func MinFinalScore(min int) func(*Report) bool {
	return func(r *Report) bool {
		return int(math.Round(r.Scores.FinalScore)) >= min
	}
}

// AnySeverity matches reports with a non-zero count for any of the selected
// levels (logical OR). With no levels selected it matches everything, which
// mirrors an empty filter chip set in the UI.
func AnySeverity(levels ...types.SeverityLevel) func(*Report) bool {
	return func(r *Report) bool {
		if len(levels) == 0 {
			return true
		}
		return r.Severity.HasAny(levels...)
	}
}

// SortBy returns a new Dataset ordered by the given key and direction. The
// sort is stable, so the receiver's order (source enumeration order by
// default) breaks ties deterministically.
func (d Dataset) SortBy(key types.SortKey, dir types.SortDirection) Dataset {
	out := NewDataset(d)

	var less func(a, b *Report) bool
	switch key {
	case types.SortByNewest:
		less = func(a, b *Report) bool { return a.ModifiedAt.Before(b.ModifiedAt) }
	case types.SortByTitle:
		less = func(a, b *Report) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default: // SortByScore
		less = func(a, b *Report) bool { return a.Scores.FinalScore < b.Scores.FinalScore }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == types.SortDescending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Summaries returns the flattened list payload in dataset order
func (d Dataset) Summaries() []ReportSummary {
	out := make([]ReportSummary, 0, len(d))
	for _, r := range d {
		out = append(out, r.Summary())
	}
	return out
}
