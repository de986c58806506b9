package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/vendorvet/vendorvet/internal/domain/ingestion"
)

type IngestErrorRepository struct {
	db *sql.DB
}

func NewIngestErrorRepository(db *sql.DB) *IngestErrorRepository {
	return &IngestErrorRepository{db: db}
}

func (r *IngestErrorRepository) Save(ctx context.Context, e *domain.IngestError) error {
	const q = `
INSERT INTO ingest_errors
  (tenant_id, report_id, line, reason, created_at)
VALUES (?,?,?,?,?)
`
	tenant := stringOrDash(e.TenantID)
	report := stringOrDash(e.ReportID)
	reason := e.Reason
	if strings.TrimSpace(reason) == "" {
		reason = "-"
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, tenant, report, e.Line, reason, created)
	return err
}

func (r *IngestErrorRepository) ListByReport(ctx context.Context, tenant string, reportID string, limit int) ([]*domain.IngestError, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, report_id, line, reason, created_at
FROM ingest_errors
WHERE tenant_id = ? AND report_id = ?
ORDER BY line ASC, id ASC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, tenant, reportID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.IngestError
	for rows.Next() {
		var e domain.IngestError
		var created time.Time
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ReportID, &e.Line, &e.Reason, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = created
		out = append(out, &e)
	}
	return out, rows.Err()
}
