package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	controller "github.com/seclens/auditdash/pkg/controller/http"
	"github.com/seclens/auditdash/pkg/domain/model"
	"github.com/seclens/auditdash/pkg/repository"
	"github.com/seclens/auditdash/pkg/usecase"
)

type listResponse struct {
	Reports []model.ReportSummary `json:"reports"`
	Total   int                   `json:"total"`
}

func newTestServer(t *testing.T, reload func(ctx context.Context) error) http.Handler {
	t.Helper()
	ctx := context.Background()

	ingest := usecase.NewIngest(nil)
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	reports, err := ingest.LoadAll(ctx, []model.SourceEntry{
		{Name: "web.md", Text: "# Web audit\n\nGrade: A\n", ModifiedAt: base},
		{Name: "infra.md", Text: "# Infra audit\n\ncritical critical critical\n", ModifiedAt: base.Add(time.Hour)},
	})
	gt.NoError(t, err)

	repo := repository.NewMemory()
	gt.NoError(t, repo.ReplaceAll(ctx, reports))

	server, err := controller.NewServer(ctx, "localhost:0", usecase.NewQuery(repo), reload)
	gt.NoError(t, err)
	return server.Router()
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Equal(t, rec.Code, http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.Equal(t, body["status"], "healthy")
	gt.Equal(t, body["service"], "auditdash")
}

func TestListReports(t *testing.T) {
	router := newTestServer(t, nil)

	doList := func(t *testing.T, url string) listResponse {
		t.Helper()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		gt.Equal(t, rec.Code, http.StatusOK)

		var body listResponse
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("defaults to score descending", func(t *testing.T) {
		body := doList(t, "/api/reports")
		gt.Equal(t, body.Total, 2)
		gt.Equal(t, body.Reports[0].Filename, "web.md")
		gt.Equal(t, body.Reports[0].FinalScore, 98.0)
		gt.Equal(t, body.Reports[1].FinalScore, 40.0)
	})

	t.Run("search filter", func(t *testing.T) {
		body := doList(t, "/api/reports?q=infra")
		gt.Equal(t, body.Total, 1)
		gt.Equal(t, body.Reports[0].Filename, "infra.md")
	})

	t.Run("min score filter", func(t *testing.T) {
		body := doList(t, "/api/reports?min_score=50")
		gt.Equal(t, body.Total, 1)
		gt.Equal(t, body.Reports[0].Filename, "web.md")
	})

	t.Run("severity filter", func(t *testing.T) {
		body := doList(t, "/api/reports?severity=critical,high")
		gt.Equal(t, body.Total, 1)
		gt.Equal(t, body.Reports[0].Filename, "infra.md")
	})

	t.Run("newest sort", func(t *testing.T) {
		body := doList(t, "/api/reports?sort=newest")
		gt.Equal(t, body.Reports[0].Filename, "infra.md")
	})

	t.Run("invalid min_score yields 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports?min_score=abc", nil))
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("invalid severity yields 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports?severity=urgent", nil))
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("invalid sort key yields 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports?sort=rank", nil))
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})
}

func TestGetReport(t *testing.T) {
	router := newTestServer(t, nil)

	t.Run("returns the full detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/web.md", nil))
		gt.Equal(t, rec.Code, http.StatusOK)

		var detail model.ReportDetail
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		gt.Equal(t, detail.Filename, "web.md")
		gt.Equal(t, detail.Title, "Web audit")
		gt.V(t, detail.SelfGradeScore).NotNil()
		gt.Equal(t, *detail.SelfGradeScore, 95.0)
	})

	t.Run("missing report yields 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/missing.md", nil))
		gt.Equal(t, rec.Code, http.StatusNotFound)
	})
}

func TestReload(t *testing.T) {
	t.Run("accepted and dispatched", func(t *testing.T) {
		done := make(chan struct{})
		router := newTestServer(t, func(ctx context.Context) error {
			close(done)
			return nil
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
		gt.Equal(t, rec.Code, http.StatusAccepted)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("reload was not dispatched")
		}
	})

	t.Run("not implemented without reload", func(t *testing.T) {
		router := newTestServer(t, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
		gt.Equal(t, rec.Code, http.StatusNotImplemented)
	})
}

func TestFrontendServed(t *testing.T) {
	router := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	gt.Equal(t, rec.Code, http.StatusOK)
}
