package export

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"io"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/seclens/auditdash/pkg/domain/model"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

// Dashboard writes a self-contained static dashboard page with the serialized
// dataset embedded, so the output file works without a server.
type Dashboard struct {
	title string
}

// NewDashboard creates a new Dashboard exporter
func NewDashboard(title string) *Dashboard {
	if title == "" {
		title = "Security Audit Dashboard"
	}
	return &Dashboard{title: title}
}

// payloadItem flattens one report for the embedded JSON payload
type payloadItem struct {
	model.ReportSummary
	HTML string `json:"html"`
}

// templateData contains data for the dashboard template
type templateData struct {
	Title    string
	DataJSON string
}

// Write renders the dashboard for the given dataset
func (d *Dashboard) Write(ctx context.Context, w io.Writer, ds model.Dataset) error {
	items := make([]payloadItem, 0, len(ds))
	for _, r := range ds {
		items = append(items, payloadItem{
			ReportSummary: r.Summary(),
			HTML:          r.HTML,
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal dataset payload")
	}
	// Prevent "</script>" inside report bodies from breaking the page
	dataJSON := strings.ReplaceAll(string(data), "</", `<\/`)

	templateContent, err := templateFS.ReadFile("templates/dashboard.html.tmpl")
	if err != nil {
		return goerr.Wrap(err, "failed to read dashboard template")
	}

	tmpl, err := template.New("dashboard").Parse(string(templateContent))
	if err != nil {
		return goerr.Wrap(err, "failed to parse dashboard template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Title: d.title, DataJSON: dataJSON}); err != nil {
		return goerr.Wrap(err, "failed to execute dashboard template")
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return goerr.Wrap(err, "failed to write dashboard")
	}
	return nil
}
