package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/interfaces"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/domain/types"
)

// QueryParams describes one dataset view: predicates compose by logical AND,
// then the sort is applied.
type QueryParams struct {
	Search     string
	MinScore   int
	Severities []types.SeverityLevel
	Sort       types.SortKey
	Direction  types.SortDirection
}

// Query exposes read-only dataset views over the report repository
type Query struct {
	repo interfaces.Repository
}

// NewQuery creates a new Query instance
func NewQuery(repo interfaces.Repository) *Query {
	return &Query{
		repo: repo,
	}
}

// Dataset returns the full dataset snapshot in default order
func (u *Query) Dataset(ctx context.Context) (model.Dataset, error) {
	reports, err := u.repo.ListReports(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reports")
	}
	return model.NewDataset(reports), nil
}

// List returns the filtered, sorted view described by the params
func (u *Query) List(ctx context.Context, params QueryParams) (model.Dataset, error) {
	ds, err := u.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	ds = ds.Search(params.Search).
		Filter(model.MinFinalScore(params.MinScore)).
		Filter(model.AnySeverity(params.Severities...))

	key := params.Sort
	if key == "" {
		key = types.SortByScore
	}
	dir := params.Direction
	if dir == "" {
		dir = key.DefaultDirection()
	}
	return ds.SortBy(key, dir), nil
}

// Get returns one report by filename
func (u *Query) Get(ctx context.Context, filename string) (*model.Report, error) {
	report, err := u.repo.GetReport(ctx, filename)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get report",
			goerr.V("filename", filename))
	}
	return report, nil
}
