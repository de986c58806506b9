package assessments

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/vendorvet/vendorvet/internal/application"
	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/ingestion"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

// Service implements the assessment use-cases: ingest an upload, classify it
// against the tenant's active standard, aggregate, persist. Safe for
// concurrent use; all state lives behind the ports.
type Service struct {
	Repo       assessment.Repository
	Standards  StandardSource
	Ingester   ingestion.Ingester
	IngestLog  ingestion.Repository
	Artifacts  assessment.ArtifactStore
	Classifier assessment.Classifier
	Clock      application.Clock
	Weights    assessment.ScoreWeights
}

// StandardSource resolves the active master standard snapshot for a tenant.
// Selection among named sets happens upstream; classification only ever reads
// the snapshot handed to it.
type StandardSource interface {
	ActiveSnapshot(ctx context.Context, tenant string) (name string, rows []standard.MasterRow, err error)
}

//
// ==== USE CASES ====
//

// Command for analyzing one uploaded questionnaire
type AnalyzeCommand struct {
	TenantID string
	FileName string
	FileText string
	Mapping  ingestion.ColumnMapping
}

// Analyze runs ingest -> classify -> summarize -> persist and returns the
// stored report. Skipped input lines are recorded in the ingest log so the
// gap between file and report is visible to reviewers.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*assessment.AuditReport, error) {
	if strings.TrimSpace(cmd.FileText) == "" {
		return nil, ingestion.ErrEmptyFile
	}

	rows, skipped, err := s.Ingester.Parse(cmd.FileText, cmd.Mapping)
	if err != nil {
		return nil, err
	}

	standardName, masterRows, err := s.Standards.ActiveSnapshot(ctx, cmd.TenantID)
	if err != nil {
		return nil, err
	}

	results, err := s.Classifier.Classify(rows, masterRows)
	if err != nil {
		return nil, err
	}

	id := assessment.ReportID(uuid.New().String())
	report := &assessment.AuditReport{
		ID:           id,
		TenantID:     cmd.TenantID,
		FileName:     cmd.FileName,
		UploadedAt:   s.Clock.Now(),
		StandardName: standardName,
		Rows:         rows,
		Results:      results,
		Summary:      assessment.Summarize(results, s.Weights),
	}

	// keep the raw upload as the audit artifact; a failed upload degrades the
	// report rather than losing the analysis
	if s.Artifacts != nil {
		key := fmt.Sprintf("%s/questionnaires/%s/%s", cmd.TenantID, id, safeFileName(cmd.FileName))
		url, aerr := s.Artifacts.Upload(ctx, key, "text/csv", strings.NewReader(cmd.FileText), int64(len(cmd.FileText)))
		if aerr != nil {
			log.Printf("artifact upload failed for report=%s: %v", id, aerr)
		} else {
			report.ArtifactURL = url
		}
	}

	if err := s.Repo.Save(ctx, report); err != nil {
		return nil, err
	}

	if s.IngestLog != nil {
		for _, sk := range skipped {
			if lerr := s.IngestLog.Save(ctx, &ingestion.IngestError{
				TenantID:  cmd.TenantID,
				ReportID:  string(id),
				Line:      sk.Line,
				Reason:    sk.Reason,
				CreatedAt: s.Clock.Now(),
			}); lerr != nil {
				log.Printf("ingest log save failed for report=%s line=%d: %v", id, sk.Line, lerr)
			}
		}
	}

	return report, nil
}

// Get fetches one report by id
func (s *Service) Get(ctx context.Context, tenant string, id assessment.ReportID) (*assessment.AuditReport, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Latest returns the most recent reports for a tenant
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*assessment.AuditReport, error) {
	return s.Repo.Latest(ctx, tenant, limit)
}

// Paginate returns one page of reports, optionally filtered
func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int, filters map[string]interface{}) (assessment.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize, filters)
}

// Summary aggregates verdict counts over the last N days
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (map[string]any, error) {
	total, high, medium, pass, err := s.Repo.Summary(ctx, tenant, sinceDays)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_reports": total,
		"high":          high,
		"medium":        medium,
		"pass":          pass,
	}, nil
}

// IngestErrors lists the skipped-line audit for one report
func (s *Service) IngestErrors(ctx context.Context, tenant, reportID string, limit int) ([]*ingestion.IngestError, error) {
	return s.IngestLog.ListByReport(ctx, tenant, reportID, limit)
}

func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload.csv"
	}
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, "\\", "_")
}
