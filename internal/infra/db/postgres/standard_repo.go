package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/vendorvet/vendorvet/internal/domain/standard"
)

type StandardRepository struct{ db *sql.DB }

func NewStandardRepository(db *sql.DB) *StandardRepository { return &StandardRepository{db: db} }

func (r *StandardRepository) Save(ctx context.Context, s *domain.Set) error {
	const q = `
INSERT INTO standard_sets
  (id, tenant_id, name, last_updated, rows_json)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  last_updated = EXCLUDED.last_updated,
  rows_json = EXCLUDED.rows_json;`
	rowsJSON, err := json.Marshal(s.Rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	updated := s.LastUpdated
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q, s.ID, stringOrDash(s.TenantID), stringOrDash(s.Name), updated, rowsJSON)
	return err
}

func scanSet(scan func(dest ...any) error) (*domain.Set, error) {
	var s domain.Set
	var rowsJSON []byte
	if err := scan(&s.ID, &s.TenantID, &s.Name, &s.LastUpdated, &rowsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rowsJSON, &s.Rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	return &s, nil
}

func (r *StandardRepository) Get(ctx context.Context, tenant string, id domain.SetID) (*domain.Set, error) {
	const q = `
SELECT id, tenant_id, name, last_updated, rows_json
FROM standard_sets
WHERE tenant_id=$1 AND id=$2 LIMIT 1;`
	s, err := scanSet(r.db.QueryRowContext(ctx, q, tenant, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func (r *StandardRepository) List(ctx context.Context, tenant string) ([]*domain.Set, error) {
	const q = `
SELECT id, tenant_id, name, last_updated, rows_json
FROM standard_sets
WHERE tenant_id=$1
ORDER BY last_updated DESC;`
	rows, err := r.db.QueryContext(ctx, q, tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Set
	for rows.Next() {
		s, err := scanSet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StandardRepository) Delete(ctx context.Context, tenant string, id domain.SetID) error {
	const q = `DELETE FROM standard_sets WHERE tenant_id=$1 AND id=$2;`
	res, err := r.db.ExecContext(ctx, q, tenant, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StandardRepository) Active(ctx context.Context, tenant string) (*domain.Set, error) {
	const q = `
SELECT s.id, s.tenant_id, s.name, s.last_updated, s.rows_json
FROM standard_sets s
JOIN active_standards a ON a.set_id = s.id AND a.tenant_id = s.tenant_id
WHERE a.tenant_id=$1 LIMIT 1;`
	s, err := scanSet(r.db.QueryRowContext(ctx, q, tenant).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoActiveSet
	}
	return s, err
}

func (r *StandardRepository) SetActive(ctx context.Context, tenant string, id domain.SetID) error {
	const q = `
INSERT INTO active_standards (tenant_id, set_id)
VALUES ($1,$2)
ON CONFLICT (tenant_id) DO UPDATE SET set_id = EXCLUDED.set_id;`
	_, err := r.db.ExecContext(ctx, q, tenant, id)
	return err
}
