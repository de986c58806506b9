package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	domain "github.com/vendorvet/vendorvet/internal/domain/assessment"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save insert/update AuditReport record. Rows and results are JSON documents;
// the summary counts are flattened into columns so the dashboard can
// aggregate without unpacking JSON.
func (r *ReportRepository) Save(ctx context.Context, rep *domain.AuditReport) error {
	const q = `
INSERT INTO audit_reports
(id, tenant_id, file_name, uploaded_at, standard_name, artifact_url,
 rows_json, results_json,
 total, high, medium, low, pass, score)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 standard_name=VALUES(standard_name), artifact_url=VALUES(artifact_url),
 rows_json=VALUES(rows_json), results_json=VALUES(results_json),
 total=VALUES(total), high=VALUES(high), medium=VALUES(medium), low=VALUES(low),
 pass=VALUES(pass), score=VALUES(score);
`
	rowsJSON, err := json.Marshal(rep.Rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	resultsJSON, err := json.Marshal(rep.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	tenant := stringOrDash(rep.TenantID)
	fileName := stringOrDash(rep.FileName)
	uploaded := rep.UploadedAt
	if uploaded.IsZero() {
		uploaded = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, tenant, fileName, uploaded, rep.StandardName, rep.ArtifactURL,
		rowsJSON, resultsJSON,
		rep.Summary.Total, rep.Summary.HighCount, rep.Summary.MediumCount,
		rep.Summary.LowCount, rep.Summary.PassCount, rep.Summary.Score,
	)
	return err
}

const reportColumns = `id, tenant_id, file_name, uploaded_at, standard_name, artifact_url,
       rows_json, results_json,
       total, high, medium, low, pass, score`

func scanReport(scan func(dest ...any) error) (*domain.AuditReport, error) {
	var rep domain.AuditReport
	var rowsJSON, resultsJSON []byte
	if err := scan(
		&rep.ID, &rep.TenantID, &rep.FileName, &rep.UploadedAt, &rep.StandardName, &rep.ArtifactURL,
		&rowsJSON, &resultsJSON,
		&rep.Summary.Total, &rep.Summary.HighCount, &rep.Summary.MediumCount,
		&rep.Summary.LowCount, &rep.Summary.PassCount, &rep.Summary.Score,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rowsJSON, &rep.Rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	if err := json.Unmarshal(resultsJSON, &rep.Results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return &rep, nil
}

// Get by ID + Tenant
func (r *ReportRepository) Get(ctx context.Context, tenant string, id domain.ReportID) (*domain.AuditReport, error) {
	q := `
SELECT ` + reportColumns + `
FROM audit_reports
WHERE tenant_id=? AND id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, tenant, id)
	rep, err := scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rep, err
}

// Latest reports per tenant
func (r *ReportRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.AuditReport, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + reportColumns + `
FROM audit_reports
WHERE tenant_id=? ORDER BY uploaded_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AuditReport
	for rows.Next() {
		rep, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Summary counts report verdicts since N days
func (r *ReportRepository) Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*) AS total_reports,
       COALESCE(SUM(high),0)   AS high,
       COALESCE(SUM(medium),0) AS medium,
       COALESCE(SUM(pass),0)   AS pass
FROM audit_reports
WHERE tenant_id=? AND uploaded_at >= ?;
`
	var t, h, m, p int
	if err := r.db.QueryRowContext(ctx, q, tenant, cut).Scan(&t, &h, &m, &p); err != nil {
		return 0, 0, 0, 0, err
	}
	return t, h, m, p, nil
}

// Paginate with offset + limit (classic pagination)
func (r *ReportRepository) Paginate(ctx context.Context, tenant string, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
SELECT ` + reportColumns + `
FROM audit_reports
WHERE tenant_id=?`

	args := []interface{}{tenant}

	if filters != nil {
		for key, value := range filters {
			switch key {
			case "standard":
				query += " AND standard_name = ?"
				args = append(args, value)
			case "file_name":
				searchTerm, _ := value.(string)
				query += " AND file_name LIKE ?"
				args = append(args, "%"+escapeLikePattern(searchTerm)+"%")
			case "min_score":
				query += " AND score >= ?"
				args = append(args, value)
			}
		}
	}

	query += "\nORDER BY uploaded_at DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.AuditReport
	for rows.Next() {
		rep, err := scanReport(rows.Scan)
		if err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	total, err := r.count(ctx, tenant, filters)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       reports,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (r *ReportRepository) count(ctx context.Context, tenant string, filters map[string]interface{}) (int64, error) {
	query := `SELECT COUNT(*) FROM audit_reports WHERE tenant_id=?`
	args := []interface{}{tenant}

	if filters != nil {
		for key, value := range filters {
			switch key {
			case "standard":
				query += " AND standard_name = ?"
				args = append(args, value)
			case "file_name":
				searchTerm, _ := value.(string)
				query += " AND file_name LIKE ?"
				args = append(args, "%"+escapeLikePattern(searchTerm)+"%")
			case "min_score":
				query += " AND score >= ?"
				args = append(args, value)
			}
		}
	}

	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}
