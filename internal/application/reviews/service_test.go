package reviews_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorvet/vendorvet/internal/application/reviews"
	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/review"
)

type memReviewRepo struct {
	sets map[review.SetID]*review.ReviewSet
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{sets: make(map[review.SetID]*review.ReviewSet)}
}

func (m *memReviewRepo) Save(_ context.Context, s *review.ReviewSet) error {
	m.sets[s.ID] = s
	return nil
}

func (m *memReviewRepo) Get(_ context.Context, tenant string, id review.SetID) (*review.ReviewSet, error) {
	s, ok := m.sets[id]
	if !ok || s.TenantID != tenant {
		return nil, review.ErrNotFound
	}
	return s, nil
}

func (m *memReviewRepo) List(_ context.Context, tenant string) ([]*review.ReviewSet, error) {
	var out []*review.ReviewSet
	for _, s := range m.sets {
		if s.TenantID == tenant {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memReviewRepo) Delete(_ context.Context, tenant string, id review.SetID) error {
	if _, err := m.Get(context.Background(), tenant, id); err != nil {
		return err
	}
	delete(m.sets, id)
	return nil
}

func (m *memReviewRepo) AttachReport(ctx context.Context, tenant string, id review.SetID, reportID string) error {
	s, err := m.Get(ctx, tenant, id)
	if err != nil {
		return err
	}
	for _, existing := range s.ReportIDs {
		if existing == reportID {
			return nil
		}
	}
	s.ReportIDs = append(s.ReportIDs, reportID)
	return nil
}

type stubReports struct {
	known map[assessment.ReportID]bool
}

func (s stubReports) Save(context.Context, *assessment.AuditReport) error { return nil }

func (s stubReports) Get(_ context.Context, _ string, id assessment.ReportID) (*assessment.AuditReport, error) {
	if !s.known[id] {
		return nil, assessment.ErrNotFound
	}
	return &assessment.AuditReport{ID: id}, nil
}

func (s stubReports) Latest(context.Context, string, int) ([]*assessment.AuditReport, error) {
	return nil, nil
}

func (s stubReports) Summary(context.Context, string, int) (int, int, int, int, error) {
	return 0, 0, 0, 0, nil
}

func (s stubReports) Paginate(context.Context, string, int, int, map[string]interface{}) (assessment.PaginatedResult, error) {
	return assessment.PaginatedResult{}, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newService(repo *memReviewRepo, reports stubReports) *reviews.Service {
	return &reviews.Service{
		Repo:    repo,
		Reports: reports,
		Clock:   fixedClock{at: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemReviewRepo(), stubReports{})

	t.Run("creates an open set", func(t *testing.T) {
		set, err := svc.Create(ctx, reviews.CreateCommand{TenantID: "acme", Name: "Q3 vendors", Description: "quarterly batch"})
		require.NoError(t, err)
		assert.NotEmpty(t, set.ID)
		assert.Equal(t, review.StatusOpen, set.Status)
		assert.Equal(t, "quarterly batch", set.Description)
		assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), set.DateCreated)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, reviews.CreateCommand{TenantID: "acme"})
		assert.Error(t, err)
	})
}

func TestAttachReport(t *testing.T) {
	ctx := context.Background()
	repo := newMemReviewRepo()
	reports := stubReports{known: map[assessment.ReportID]bool{"rep-1": true}}
	svc := newService(repo, reports)

	set, err := svc.Create(ctx, reviews.CreateCommand{TenantID: "acme", Name: "Q3 vendors"})
	require.NoError(t, err)

	t.Run("attaches an existing report", func(t *testing.T) {
		require.NoError(t, svc.AttachReport(ctx, "acme", set.ID, "rep-1"))
		got, err := svc.Get(ctx, "acme", set.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"rep-1"}, got.ReportIDs)
	})

	t.Run("attach is idempotent", func(t *testing.T) {
		require.NoError(t, svc.AttachReport(ctx, "acme", set.ID, "rep-1"))
		got, err := svc.Get(ctx, "acme", set.ID)
		require.NoError(t, err)
		assert.Len(t, got.ReportIDs, 1)
	})

	t.Run("rejects an unknown report", func(t *testing.T) {
		err := svc.AttachReport(ctx, "acme", set.ID, "missing")
		assert.ErrorIs(t, err, assessment.ErrNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemReviewRepo(), stubReports{})

	set, err := svc.Create(ctx, reviews.CreateCommand{TenantID: "acme", Name: "Q3 vendors"})
	require.NoError(t, err)

	t.Run("moves through the lifecycle", func(t *testing.T) {
		require.NoError(t, svc.UpdateStatus(ctx, "acme", set.ID, review.StatusClosed))
		got, err := svc.Get(ctx, "acme", set.ID)
		require.NoError(t, err)
		assert.Equal(t, review.StatusClosed, got.Status)
	})

	t.Run("accepts lowercase and stores the canonical form", func(t *testing.T) {
		require.NoError(t, svc.UpdateStatus(ctx, "acme", set.ID, review.Status("archived")))
		got, err := svc.Get(ctx, "acme", set.ID)
		require.NoError(t, err)
		assert.Equal(t, review.StatusArchived, got.Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, "acme", set.ID, review.Status("paused"))
		assert.Error(t, err)
	})

	t.Run("unknown set", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, "acme", "missing", review.StatusClosed)
		assert.ErrorIs(t, err, review.ErrNotFound)
	})
}
