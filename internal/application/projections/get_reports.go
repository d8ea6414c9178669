package projections

import (
	"context"

	reportStore "raknong/internal/adapters/storage/report"
	domain "raknong/internal/domain/report"
)

// StatusFilterAll is the sentinel the admin UI sends for "no filter".
const StatusFilterAll = "all"

// GetReportsQuery carries query parameters.
// Status is one of all/pending/resolved/rejected; empty means pending,
// matching the admin page default.
type GetReportsQuery struct {
	Status string
}

// GetReportsResult carries the query result.
type GetReportsResult struct {
	Reports []domain.Report
	Status  string // the effective filter, for re-rendering the controls
}

// GetReportsDeps holds dependencies for GetReports.
type GetReportsDeps struct {
	ReportStore reportStore.Store
}

// QueryGetReports retrieves problem reports newest-first.
// PRE: query.Status is empty or a known filter value
// POST: Returns reports ordered by creation time descending
func QueryGetReports(ctx context.Context, query GetReportsQuery, deps GetReportsDeps) (GetReportsResult, error) {
	status := query.Status
	if status == "" {
		status = domain.StatusPending
	}

	filter := reportStore.ListFilter{}
	if status != StatusFilterAll {
		filter.Status = status
	}

	reports, err := deps.ReportStore.List(ctx, filter)
	if err != nil {
		return GetReportsResult{}, err
	}
	return GetReportsResult{Reports: reports, Status: status}, nil
}
