package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/vendorvet/vendorvet/internal/domain/review"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Save(ctx context.Context, s *domain.ReviewSet) error {
	const q = `
INSERT INTO review_sets
  (id, tenant_id, name, date_created, status, description, report_ids_json)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), status=VALUES(status), description=VALUES(description),
  report_ids_json=VALUES(report_ids_json);
`
	ids := s.ReportIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding report ids: %w", err)
	}
	created := s.DateCreated
	if created.IsZero() {
		created = time.Now()
	}
	status := s.Status
	if status == "" {
		status = domain.StatusOpen
	}
	_, err = r.db.ExecContext(ctx, q, s.ID, stringOrDash(s.TenantID), stringOrDash(s.Name), created, status, s.Description, idsJSON)
	return err
}

func scanReviewSet(scan func(dest ...any) error) (*domain.ReviewSet, error) {
	var s domain.ReviewSet
	var idsJSON []byte
	if err := scan(&s.ID, &s.TenantID, &s.Name, &s.DateCreated, &s.Status, &s.Description, &idsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(idsJSON, &s.ReportIDs); err != nil {
		return nil, fmt.Errorf("decoding report ids: %w", err)
	}
	return &s, nil
}

func (r *ReviewRepository) Get(ctx context.Context, tenant string, id domain.SetID) (*domain.ReviewSet, error) {
	const q = `
SELECT id, tenant_id, name, date_created, status, description, report_ids_json
FROM review_sets
WHERE tenant_id=? AND id=? LIMIT 1;
`
	s, err := scanReviewSet(r.db.QueryRowContext(ctx, q, tenant, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func (r *ReviewRepository) List(ctx context.Context, tenant string) ([]*domain.ReviewSet, error) {
	const q = `
SELECT id, tenant_id, name, date_created, status, description, report_ids_json
FROM review_sets
WHERE tenant_id=?
ORDER BY date_created DESC;
`
	rows, err := r.db.QueryContext(ctx, q, tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ReviewSet
	for rows.Next() {
		s, err := scanReviewSet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) Delete(ctx context.Context, tenant string, id domain.SetID) error {
	const q = `DELETE FROM review_sets WHERE tenant_id=? AND id=?;`
	res, err := r.db.ExecContext(ctx, q, tenant, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AttachReport appends a report id to the set, read-modify-write on the JSON
// column. Attaching the same report twice is a no-op.
func (r *ReviewRepository) AttachReport(ctx context.Context, tenant string, id domain.SetID, reportID string) error {
	set, err := r.Get(ctx, tenant, id)
	if err != nil {
		return err
	}
	for _, existing := range set.ReportIDs {
		if existing == reportID {
			return nil
		}
	}
	set.ReportIDs = append(set.ReportIDs, reportID)
	return r.Save(ctx, set)
}
