package standard

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a set does not exist.
var ErrNotFound = errors.New("standard set not found")

// ErrNoActiveSet is returned when a tenant has no active standard.
var ErrNoActiveSet = errors.New("no active standard set")

// Repository port for named standard sets and the per-tenant active selection
type Repository interface {
	Save(ctx context.Context, s *Set) error
	Get(ctx context.Context, tenant string, id SetID) (*Set, error)
	List(ctx context.Context, tenant string) ([]*Set, error)
	Delete(ctx context.Context, tenant string, id SetID) error
	Active(ctx context.Context, tenant string) (*Set, error)
	SetActive(ctx context.Context, tenant string, id SetID) error
}
