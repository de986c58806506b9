package postgres

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

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save insert/update AuditReport record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.AuditReport) error {
	const q = `
INSERT INTO audit_reports
(id, tenant_id, file_name, uploaded_at, standard_name, artifact_url,
 rows_json, results_json,
 total, high, medium, low, pass, score)
VALUES ($1,$2,$3,$4,$5,$6,
        $7,$8,
        $9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
 standard_name = EXCLUDED.standard_name,
 artifact_url = EXCLUDED.artifact_url,
 rows_json = EXCLUDED.rows_json,
 results_json = EXCLUDED.results_json,
 total = EXCLUDED.total,
 high = EXCLUDED.high,
 medium = EXCLUDED.medium,
 low = EXCLUDED.low,
 pass = EXCLUDED.pass,
 score = EXCLUDED.score;`

	rowsJSON, err := json.Marshal(rep.Rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	resultsJSON, err := json.Marshal(rep.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	uploaded := rep.UploadedAt
	if uploaded.IsZero() {
		uploaded = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, stringOrDash(rep.TenantID), stringOrDash(rep.FileName), uploaded,
		rep.StandardName, rep.ArtifactURL,
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

func (r *ReportRepository) Get(ctx context.Context, tenant string, id domain.ReportID) (*domain.AuditReport, error) {
	q := `
SELECT ` + reportColumns + `
FROM audit_reports
WHERE tenant_id=$1 AND id=$2 LIMIT 1;`
	rep, err := scanReport(r.db.QueryRowContext(ctx, q, tenant, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rep, err
}

func (r *ReportRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.AuditReport, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + reportColumns + `
FROM audit_reports
WHERE tenant_id=$1 ORDER BY uploaded_at DESC LIMIT $2;`
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
WHERE tenant_id=$1 AND uploaded_at >= $2;`
	var t, h, m, p int
	if err := r.db.QueryRowContext(ctx, q, tenant, cut).Scan(&t, &h, &m, &p); err != nil {
		return 0, 0, 0, 0, err
	}
	return t, h, m, p, nil
}

// Paginate with offset + limit
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
WHERE tenant_id=$1`
	args := []interface{}{tenant}
	n := 1

	if filters != nil {
		for key, value := range filters {
			switch key {
			case "standard":
				n++
				query += fmt.Sprintf(" AND standard_name = $%d", n)
				args = append(args, value)
			case "file_name":
				searchTerm, _ := value.(string)
				n++
				query += fmt.Sprintf(" AND file_name LIKE $%d", n)
				args = append(args, "%"+escapeLikePattern(searchTerm)+"%")
			case "min_score":
				n++
				query += fmt.Sprintf(" AND score >= $%d", n)
				args = append(args, value)
			}
		}
	}

	query += fmt.Sprintf("\nORDER BY uploaded_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
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
	query := `SELECT COUNT(*) FROM audit_reports WHERE tenant_id=$1`
	args := []interface{}{tenant}
	n := 1

	if filters != nil {
		for key, value := range filters {
			switch key {
			case "standard":
				n++
				query += fmt.Sprintf(" AND standard_name = $%d", n)
				args = append(args, value)
			case "file_name":
				searchTerm, _ := value.(string)
				n++
				query += fmt.Sprintf(" AND file_name LIKE $%d", n)
				args = append(args, "%"+escapeLikePattern(searchTerm)+"%")
			case "min_score":
				n++
				query += fmt.Sprintf(" AND score >= $%d", n)
				args = append(args, value)
			}
		}
	}

	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}
