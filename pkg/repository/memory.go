package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/interfaces"
	"github.com/seclens/auditdash/pkg/domain/model"
)

// Memory implements Repository with in-memory storage. Reports are keyed by
// filename; insertion order is kept so the default dataset order is the
// source enumeration order.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]*model.Report
	order   []string
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		reports: make(map[string]*model.Report),
	}
}

// PutReport stores a report. Re-putting an existing filename replaces the
// record in place without changing its position.
func (m *Memory) PutReport(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}
	if report.Filename == "" {
		return goerr.New("report filename is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.reports[report.Filename]; !exists {
		m.order = append(m.order, report.Filename)
	}

	// Store a copy to prevent external modification
	reportCopy := *report
	m.reports[report.Filename] = &reportCopy
	return nil
}

// GetReport retrieves a report by filename
func (m *Memory) GetReport(ctx context.Context, filename string) (*model.Report, error) {
	if filename == "" {
		return nil, goerr.New("report filename is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	report, exists := m.reports[filename]
	if !exists {
		return nil, goerr.Wrap(model.ErrReportNotFound, "no such report",
			goerr.V("filename", filename))
	}

	reportCopy := *report
	return &reportCopy, nil
}

// ListReports returns all reports in insertion order
func (m *Memory) ListReports(ctx context.Context) ([]*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make([]*model.Report, 0, len(m.order))
	for _, filename := range m.order {
		reportCopy := *m.reports[filename]
		reports = append(reports, &reportCopy)
	}
	return reports, nil
}

// ReplaceAll atomically swaps the stored reports
func (m *Memory) ReplaceAll(ctx context.Context, reports []*model.Report) error {
	next := make(map[string]*model.Report, len(reports))
	order := make([]string, 0, len(reports))
	for _, report := range reports {
		if report == nil {
			return goerr.New("report is nil")
		}
		if report.Filename == "" {
			return goerr.New("report filename is empty")
		}
		if _, exists := next[report.Filename]; !exists {
			order = append(order, report.Filename)
		}
		reportCopy := *report
		next[report.Filename] = &reportCopy
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = next
	m.order = order
	return nil
}

// Close closes the repository
func (m *Memory) Close() error {
	return nil
}
