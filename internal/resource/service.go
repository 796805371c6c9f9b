package resource

import (
	"context"

	"github.com/google/uuid"
)

// Service is the read-only catalog the campaign builder consumes.
type Service interface {
	// ListResources returns resources of a category, optionally only those currently available.
	ListResources(ctx context.Context, category Category, activeOnly bool) ([]*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListResources(ctx context.Context, category Category, activeOnly bool) ([]*Resource, error) {
	if category != "" && !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.List(ctx, Filter{Category: category, ActiveOnly: activeOnly})
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	// A malformed id can never match a row; answer without a round trip.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
