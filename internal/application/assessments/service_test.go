package assessments_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorvet/vendorvet/internal/application/assessments"
	"github.com/vendorvet/vendorvet/internal/domain/analysis"
	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/ingestion"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
	"github.com/vendorvet/vendorvet/internal/infra/ingest"
)

// --- In-memory doubles ---

type memReportRepo struct {
	saved map[assessment.ReportID]*assessment.AuditReport
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{saved: make(map[assessment.ReportID]*assessment.AuditReport)}
}

func (m *memReportRepo) Save(_ context.Context, r *assessment.AuditReport) error {
	m.saved[r.ID] = r
	return nil
}

func (m *memReportRepo) Get(_ context.Context, tenant string, id assessment.ReportID) (*assessment.AuditReport, error) {
	r, ok := m.saved[id]
	if !ok || r.TenantID != tenant {
		return nil, assessment.ErrNotFound
	}
	return r, nil
}

func (m *memReportRepo) Latest(_ context.Context, tenant string, _ int) ([]*assessment.AuditReport, error) {
	var out []*assessment.AuditReport
	for _, r := range m.saved {
		if r.TenantID == tenant {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReportRepo) Summary(_ context.Context, tenant string, _ int) (int, int, int, int, error) {
	var total, high, medium, pass int
	for _, r := range m.saved {
		if r.TenantID != tenant {
			continue
		}
		total++
		high += r.Summary.HighCount
		medium += r.Summary.MediumCount
		pass += r.Summary.PassCount
	}
	return total, high, medium, pass, nil
}

func (m *memReportRepo) Paginate(_ context.Context, tenant string, page, pageSize int, _ map[string]interface{}) (assessment.PaginatedResult, error) {
	list, _ := m.Latest(context.Background(), tenant, 0)
	return assessment.PaginatedResult{Data: list, Page: page, PageSize: pageSize, Total: int64(len(list))}, nil
}

type memIngestLog struct {
	entries []*ingestion.IngestError
	fail    bool
}

func (m *memIngestLog) Save(_ context.Context, e *ingestion.IngestError) error {
	if m.fail {
		return fmt.Errorf("audit table unavailable")
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memIngestLog) ListByReport(_ context.Context, tenant, reportID string, _ int) ([]*ingestion.IngestError, error) {
	var out []*ingestion.IngestError
	for _, e := range m.entries {
		if e.TenantID == tenant && e.ReportID == reportID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memArtifacts struct {
	keys []string
	fail bool
}

func (m *memArtifacts) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if m.fail {
		return "", fmt.Errorf("bucket unavailable")
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return "http://minio.local/artifacts/" + key, nil
}

type fixedStandards struct {
	name string
	rows []standard.MasterRow
}

func (f fixedStandards) ActiveSnapshot(context.Context, string) (string, []standard.MasterRow, error) {
	return f.name, f.rows, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// --- Tests ---

func newService(repo *memReportRepo, logRepo *memIngestLog, store *memArtifacts) *assessments.Service {
	return &assessments.Service{
		Repo:       repo,
		Standards:  fixedStandards{name: "Enterprise Standard", rows: standard.SeedRows()},
		Ingester:   ingest.NewCSVIngester(),
		IngestLog:  logRepo,
		Artifacts:  store,
		Classifier: analysis.NewEngine(),
		Clock:      fixedClock{at: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		Weights:    assessment.DefaultScoreWeights(),
	}
}

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	csvText := "Question,Answer,Category\n" +
		"Is data encrypted at rest?,\"Yes, AES-256.\",Encryption\n" +
		"Is data encrypted at rest?,\"Yes, we use 3DES encryption.\",Encryption\n"

	t.Run("classifies and persists a report", func(t *testing.T) {
		repo := newMemReportRepo()
		logRepo := &memIngestLog{}
		store := &memArtifacts{}
		svc := newService(repo, logRepo, store)

		report, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
			TenantID: "acme",
			FileName: "q3-review.csv",
			FileText: csvText,
		})
		require.NoError(t, err)
		require.NotNil(t, report)

		assert.NotEmpty(t, report.ID)
		assert.Equal(t, "acme", report.TenantID)
		assert.Equal(t, "Enterprise Standard", report.StandardName)
		assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), report.UploadedAt)
		require.Len(t, report.Rows, 2)
		require.Len(t, report.Results, 2)

		// the category column must survive auto mapping, or the red-flag
		// check never sees "Encryption" for the 3DES row
		assert.Equal(t, "Encryption", report.Rows[1].Category)
		assert.Equal(t, assessment.RiskPass, report.Results["row-1"].RiskLevel)
		assert.Equal(t, assessment.RiskHigh, report.Results["row-2"].RiskLevel)
		assert.Equal(t, "Technical Policy Violation", report.Results["row-2"].ComplianceFlag)
		assert.Equal(t, 2, report.Summary.Total)
		assert.Equal(t, 100-15, report.Summary.Score)

		stored, err := svc.Get(ctx, "acme", report.ID)
		require.NoError(t, err)
		assert.Equal(t, report.ID, stored.ID)
	})

	t.Run("uploads the raw file as an artifact", func(t *testing.T) {
		repo := newMemReportRepo()
		store := &memArtifacts{}
		svc := newService(repo, &memIngestLog{}, store)

		report, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
			TenantID: "acme",
			FileName: "upload.csv",
			FileText: csvText,
		})
		require.NoError(t, err)
		require.Len(t, store.keys, 1)
		assert.Contains(t, store.keys[0], "acme/questionnaires/")
		assert.Contains(t, store.keys[0], "upload.csv")
		assert.NotEmpty(t, report.ArtifactURL)
	})

	t.Run("artifact failure degrades the report, not the analysis", func(t *testing.T) {
		repo := newMemReportRepo()
		store := &memArtifacts{fail: true}
		svc := newService(repo, &memIngestLog{}, store)

		report, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
			TenantID: "acme",
			FileName: "upload.csv",
			FileText: csvText,
		})
		require.NoError(t, err)
		assert.Empty(t, report.ArtifactURL)
		assert.Len(t, repo.saved, 1)
	})

	t.Run("skipped lines land in the ingest log", func(t *testing.T) {
		repo := newMemReportRepo()
		logRepo := &memIngestLog{}
		svc := newService(repo, logRepo, &memArtifacts{})

		short := "Question,Answer\n" +
			"only-one-field\n" +
			"Is data encrypted at rest?,\"Yes, AES-256.\"\n"

		report, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
			TenantID: "acme",
			FileName: "short.csv",
			FileText: short,
		})
		require.NoError(t, err)

		entries, err := svc.IngestErrors(ctx, "acme", string(report.ID), 50)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 2, entries[0].Line)
		assert.NotEmpty(t, entries[0].Reason)
	})

	t.Run("a failing ingest log does not fail the analysis", func(t *testing.T) {
		repo := newMemReportRepo()
		svc := newService(repo, &memIngestLog{fail: true}, &memArtifacts{})

		short := "Question,Answer\n" +
			"only-one-field\n" +
			"Is data encrypted at rest?,\"Yes, AES-256.\"\n"

		_, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
			TenantID: "acme",
			FileName: "short.csv",
			FileText: short,
		})
		require.NoError(t, err)
		assert.Len(t, repo.saved, 1)
	})

	t.Run("empty upload is rejected", func(t *testing.T) {
		svc := newService(newMemReportRepo(), &memIngestLog{}, &memArtifacts{})

		_, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
			TenantID: "acme",
			FileName: "empty.csv",
			FileText: "   ",
		})
		assert.ErrorIs(t, err, ingestion.ErrEmptyFile)
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	repo := newMemReportRepo()
	svc := newService(repo, &memIngestLog{}, &memArtifacts{})

	_, err := svc.Analyze(ctx, assessments.AnalyzeCommand{
		TenantID: "acme",
		FileName: "a.csv",
		FileText: "Question,Answer\nIs data encrypted at rest?,\"Yes, AES-256.\"\n",
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "acme", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, summary["total_reports"])
	assert.Equal(t, 0, summary["high"])
	assert.Equal(t, 1, summary["pass"])
}
