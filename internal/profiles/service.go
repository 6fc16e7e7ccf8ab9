// Package profiles manages family profiles.
package profiles

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
	"famorg/internal/repository"
)

type Service struct {
	repo   repository.ProfileRepository
	logger *slog.Logger
}

func NewService(repo repository.ProfileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("profiles.create.ok", "id", p.ID, "children", len(p.Children))
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("profile id is required: %w", common.ErrInvalidInput)
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("profiles.update.ok", "id", p.ID)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*entity.Profile, error) {
	return s.repo.List(ctx)
}

func validate(p *entity.Profile) error {
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("profile needs a name: %w", common.ErrInvalidInput)
	}
	if e := strings.TrimSpace(p.Email); e != "" && !strings.Contains(e, "@") {
		return fmt.Errorf("invalid email %q: %w", p.Email, common.ErrInvalidInput)
	}
	for i, c := range p.Children {
		if strings.TrimSpace(c.FirstName) == "" {
			return fmt.Errorf("child %d needs a first name: %w", i, common.ErrInvalidInput)
		}
	}
	return nil
}
