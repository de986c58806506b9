package review

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a review set does not exist.
var ErrNotFound = errors.New("review set not found")

// Repository port
type Repository interface {
	Save(ctx context.Context, s *ReviewSet) error
	Get(ctx context.Context, tenant string, id SetID) (*ReviewSet, error)
	List(ctx context.Context, tenant string) ([]*ReviewSet, error)
	Delete(ctx context.Context, tenant string, id SetID) error
	AttachReport(ctx context.Context, tenant string, id SetID, reportID string) error
}
