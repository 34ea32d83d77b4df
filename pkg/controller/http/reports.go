package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/domain/types"
	"github.com/seclens/auditdash/pkg/usecase"
	"github.com/seclens/auditdash/pkg/utils/async"
)

// ReportsHandler serves the dataset views consumed by the dashboard
type ReportsHandler struct {
	query  *usecase.Query
	reload func(ctx context.Context) error
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(query *usecase.Query, reload func(ctx context.Context) error) *ReportsHandler {
	return &ReportsHandler{
		query:  query,
		reload: reload,
	}
}

// HandleList handles GET /api/reports. Query parameters: q (search),
// min_score, severity (comma-separated level names), sort, dir. Predicates
// compose by AND.
func (h *ReportsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := parseQueryParams(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	ds, err := h.query.List(r.Context(), params)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"reports": ds.Summaries(),
		"total":   len(ds),
	})
}

// HandleGet handles GET /api/reports/{filename}
func (h *ReportsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	report, err := h.query.Get(r.Context(), filename)
	if err != nil {
		if errors.Is(err, model.ErrReportNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, report.Detail())
}

// HandleReload handles POST /api/reload. The re-aggregation runs in the
// background; the response only acknowledges the request.
func (h *ReportsHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if h.reload == nil {
		writeError(w, goerr.New("reload is not enabled"), http.StatusNotImplemented)
		return
	}

	async.Dispatch(r.Context(), h.reload)
	writeJSON(w, r, http.StatusAccepted, map[string]string{
		"status": "reloading",
	})
}

func parseQueryParams(r *http.Request) (usecase.QueryParams, error) {
	var params usecase.QueryParams
	q := r.URL.Query()

	params.Search = q.Get("q")

	if raw := q.Get("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			return params, goerr.Wrap(err, "invalid min_score",
				goerr.V("min_score", raw))
		}
		params.MinScore = minScore
	}

	if raw := q.Get("severity"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			level, ok := types.ParseSeverityLevel(name)
			if !ok {
				return params, goerr.New("invalid severity level",
					goerr.V("severity", name))
			}
			params.Severities = append(params.Severities, level)
		}
	}

	key, ok := types.ParseSortKey(q.Get("sort"))
	if !ok {
		return params, goerr.New("invalid sort key",
			goerr.V("sort", q.Get("sort")))
	}
	params.Sort = key

	dir, ok := types.ParseSortDirection(q.Get("dir"), key.DefaultDirection())
	if !ok {
		return params, goerr.New("invalid sort direction",
			goerr.V("dir", q.Get("dir")))
	}
	params.Direction = dir

	return params, nil
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if encErr := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); encErr != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", encErr)
	}
}
