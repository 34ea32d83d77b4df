package llm_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	"github.com/seclens/auditdash/pkg/domain/types"
	"github.com/seclens/auditdash/pkg/service/llm"
	"github.com/seclens/auditdash/pkg/service/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:      types.NewSnapshotID(),
		TakenAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		TopProcesses: []snapshot.ProcessInfo{
			{PID: 1, Name: "init", CPUPercent: 0.1, MemoryPercent: 0.2},
		},
		ConnectionCount: 12,
	}
}

func mockClientReturning(texts []string, err error) *mock.LLMClientMock {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					if err != nil {
						return nil, err
					}
					return &gollem.Response{Texts: texts}, nil
				},
			}, nil
		},
	}
}

func TestAuditService_GenerateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the model's report text", func(t *testing.T) {
		report := "# Host Audit\n\nOne high finding.\n\nSelf-Grade: B\n"
		service := llm.NewAuditService(mockClientReturning([]string{report}, nil))

		got, err := service.GenerateReport(ctx, testSnapshot())
		gt.NoError(t, err)
		gt.Equal(t, got, report)
	})

	t.Run("joins multi-part responses", func(t *testing.T) {
		service := llm.NewAuditService(mockClientReturning([]string{"# Part 1", "Part 2"}, nil))

		got, err := service.GenerateReport(ctx, testSnapshot())
		gt.NoError(t, err)
		gt.Equal(t, got, "# Part 1\nPart 2")
	})

	t.Run("prompt carries the snapshot JSON", func(t *testing.T) {
		var prompt string
		client := &mock.LLMClientMock{
			NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mock.SessionMock{
					GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						for _, in := range input {
							if text, ok := in.(gollem.Text); ok {
								prompt = string(text)
							}
						}
						return &gollem.Response{Texts: []string{"# ok"}}, nil
					},
				}, nil
			},
		}
		service := llm.NewAuditService(client)

		snap := testSnapshot()
		_, err := service.GenerateReport(ctx, snap)
		gt.NoError(t, err)
		gt.True(t, strings.Contains(prompt, string(snap.ID)))
		gt.True(t, strings.Contains(prompt, "connection_count"))
	})

	t.Run("error on empty response", func(t *testing.T) {
		service := llm.NewAuditService(mockClientReturning(nil, nil))

		_, err := service.GenerateReport(ctx, testSnapshot())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, llm.ErrTagEmptyResponse))
	})

	t.Run("error on generation failure", func(t *testing.T) {
		service := llm.NewAuditService(mockClientReturning(nil, goerr.New("model unavailable")))

		_, err := service.GenerateReport(ctx, testSnapshot())
		gt.Error(t, err)
	})

	t.Run("error on nil snapshot", func(t *testing.T) {
		service := llm.NewAuditService(mockClientReturning([]string{"# ok"}, nil))

		_, err := service.GenerateReport(ctx, nil)
		gt.Error(t, err)
	})
}
