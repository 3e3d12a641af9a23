package supplier

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, sup *Supplier) (*Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, errors.New("supplier name is required")
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Service) Update(ctx context.Context, sup *Supplier) (*Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, errors.New("supplier name is required")
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
