package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vendorvet/vendorvet/internal/application"
	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/review"
)

// Service implements use-cases over review sets (the bid/procurement grouping
// of audit reports).
type Service struct {
	Repo    review.Repository
	Reports assessment.Repository
	Clock   application.Clock
}

type CreateCommand struct {
	TenantID    string
	Name        string
	Description string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*review.ReviewSet, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("review set name is required")
	}
	set := &review.ReviewSet{
		ID:          review.SetID(uuid.New().String()),
		TenantID:    cmd.TenantID,
		Name:        cmd.Name,
		DateCreated: s.Clock.Now(),
		Status:      review.StatusOpen,
		Description: cmd.Description,
	}
	if err := s.Repo.Save(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *Service) Get(ctx context.Context, tenant string, id review.SetID) (*review.ReviewSet, error) {
	return s.Repo.Get(ctx, tenant, id)
}

func (s *Service) List(ctx context.Context, tenant string) ([]*review.ReviewSet, error) {
	return s.Repo.List(ctx, tenant)
}

func (s *Service) Delete(ctx context.Context, tenant string, id review.SetID) error {
	return s.Repo.Delete(ctx, tenant, id)
}

// AttachReport links an existing report into a review set. The report must
// belong to the same tenant.
func (s *Service) AttachReport(ctx context.Context, tenant string, id review.SetID, reportID string) error {
	if _, err := s.Reports.Get(ctx, tenant, assessment.ReportID(reportID)); err != nil {
		return err
	}
	return s.Repo.AttachReport(ctx, tenant, id, reportID)
}

// UpdateStatus moves a review set through Open -> Closed -> Archived.
func (s *Service) UpdateStatus(ctx context.Context, tenant string, id review.SetID, status review.Status) error {
	// accept any casing, store the canonical form
	var canonical review.Status
	switch strings.ToLower(string(status)) {
	case "open":
		canonical = review.StatusOpen
	case "closed":
		canonical = review.StatusClosed
	case "archived":
		canonical = review.StatusArchived
	default:
		return fmt.Errorf("invalid review set status: %s", status)
	}
	set, err := s.Repo.Get(ctx, tenant, id)
	if err != nil {
		return err
	}
	set.Status = canonical
	return s.Repo.Save(ctx, set)
}
