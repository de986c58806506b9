package ingestion

import (
	"context"
)

// Repository defines persistence for ingest errors
type Repository interface {
	Save(ctx context.Context, e *IngestError) error
	ListByReport(ctx context.Context, tenant string, reportID string, limit int) ([]*IngestError, error)
}
