package assessment

import (
	"context"
	"errors"
	"io"

	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

// ErrNotFound is returned by repositories when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Classifier port: a classification strategy. Callers select the strategy and
// the master standard snapshot explicitly; implementations hold no ambient
// state and must be safe for repeated invocation.
type Classifier interface {
	Classify(rows []SubmissionRow, master []standard.MasterRow) (map[string]AnalysisResult, error)
}

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *AuditReport) error
	Get(ctx context.Context, tenant string, id ReportID) (*AuditReport, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*AuditReport, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int, filters map[string]interface{}) (PaginatedResult, error)
}

// ArtifactStore port (interface untuk penyimpanan raw upload)
type ArtifactStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
