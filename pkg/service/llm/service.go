package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/seclens/auditdash/pkg/service/snapshot"
)

// Error tags for categorization
var (
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

//go:embed templates/*.md
var templateFS embed.FS

// AuditService generates Markdown security audit reports from telemetry
// snapshots through an LLM.
type AuditService struct {
	llmClient gollem.LLMClient
}

// NewAuditService creates a new AuditService instance
func NewAuditService(llmClient gollem.LLMClient) *AuditService {
	return &AuditService{
		llmClient: llmClient,
	}
}

// auditTemplateData contains data for the audit analysis prompt template
type auditTemplateData struct {
	SnapshotJSON string
}

// GenerateReport sends the snapshot to the LLM and returns the Markdown
// report text. The prompt instructs the model to label findings with the
// critical/high/medium/low severity words and end with a "Self-Grade: X"
// line, so generated reports feed the scoring pipeline directly.
func (s *AuditService) GenerateReport(ctx context.Context, snap *snapshot.Snapshot) (string, error) {
	if snap == nil {
		return "", goerr.New("snapshot is required")
	}

	prompt, err := s.renderAuditTemplate(snap)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render audit prompt",
			goerr.T(ErrTagTemplateFailure))
	}

	session, err := s.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM response")
	}

	if len(response.Texts) == 0 || response.Texts[0] == "" {
		return "", goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	return strings.Join(response.Texts, "\n"), nil
}

// renderAuditTemplate renders the audit analysis prompt
func (s *AuditService) renderAuditTemplate(snap *snapshot.Snapshot) (string, error) {
	templateContent, err := templateFS.ReadFile("templates/audit_analysis.md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read audit analysis template")
	}

	tmpl, err := template.New("audit_analysis").Parse(string(templateContent))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse audit analysis template")
	}

	snapshotJSON, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal snapshot")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, auditTemplateData{SnapshotJSON: string(snapshotJSON)}); err != nil {
		return "", goerr.Wrap(err, "failed to execute audit analysis template")
	}

	return buf.String(), nil
}
