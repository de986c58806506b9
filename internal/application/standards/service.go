package standards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vendorvet/vendorvet/internal/application"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

// Service implements use-cases over named master standard sets. Exactly one
// set is active per tenant; the assessment service reads the active snapshot
// through ActiveSnapshot and never touches selection itself.
type Service struct {
	Repo  standard.Repository
	Clock application.Clock
}

// Command for creating or replacing a standard set
type SaveSetCommand struct {
	TenantID string
	ID       string // empty on create
	Name     string
	Rows     []standard.MasterRow
}

func (s *Service) Save(ctx context.Context, cmd SaveSetCommand) (*standard.Set, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("standard set name is required")
	}
	if len(cmd.Rows) == 0 {
		return nil, fmt.Errorf("standard set must contain at least one row")
	}
	for i, r := range cmd.Rows {
		if strings.TrimSpace(r.Question) == "" {
			return nil, fmt.Errorf("row %d: question is required", i+1)
		}
	}

	id := standard.SetID(cmd.ID)
	if id == "" {
		id = standard.SetID(uuid.New().String())
	}
	set := &standard.Set{
		ID:          id,
		TenantID:    cmd.TenantID,
		Name:        cmd.Name,
		LastUpdated: s.Clock.Now(),
		Rows:        cmd.Rows,
	}
	if err := s.Repo.Save(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *Service) Get(ctx context.Context, tenant string, id standard.SetID) (*standard.Set, error) {
	return s.Repo.Get(ctx, tenant, id)
}

func (s *Service) List(ctx context.Context, tenant string) ([]*standard.Set, error) {
	return s.Repo.List(ctx, tenant)
}

func (s *Service) Delete(ctx context.Context, tenant string, id standard.SetID) error {
	return s.Repo.Delete(ctx, tenant, id)
}

func (s *Service) Activate(ctx context.Context, tenant string, id standard.SetID) error {
	if _, err := s.Repo.Get(ctx, tenant, id); err != nil {
		return err
	}
	return s.Repo.SetActive(ctx, tenant, id)
}

func (s *Service) Active(ctx context.Context, tenant string) (*standard.Set, error) {
	return s.Repo.Active(ctx, tenant)
}

// ActiveSnapshot resolves the active set for classification. A tenant with no
// standard at all is bootstrapped with the shipped enterprise seed, so a
// fresh tenant can analyze uploads immediately.
func (s *Service) ActiveSnapshot(ctx context.Context, tenant string) (string, []standard.MasterRow, error) {
	set, err := s.Repo.Active(ctx, tenant)
	if errors.Is(err, standard.ErrNoActiveSet) {
		set, err = s.bootstrapSeed(ctx, tenant)
	}
	if err != nil {
		return "", nil, err
	}
	return set.Name, set.Rows, nil
}

func (s *Service) bootstrapSeed(ctx context.Context, tenant string) (*standard.Set, error) {
	set := &standard.Set{
		ID:          standard.SetID(uuid.New().String()),
		TenantID:    tenant,
		Name:        "Enterprise Standard",
		LastUpdated: s.Clock.Now(),
		Rows:        standard.SeedRows(),
	}
	if err := s.Repo.Save(ctx, set); err != nil {
		return nil, err
	}
	if err := s.Repo.SetActive(ctx, tenant, set.ID); err != nil {
		return nil, err
	}
	return set, nil
}
