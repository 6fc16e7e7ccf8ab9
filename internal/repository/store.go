package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
)

// Store bundles profile and task lookup for the document engine. A
// missing task is reported as (nil, nil); a missing profile stays an
// error because nothing can be generated without one.
type Store struct {
	Profiles ProfileRepository
	Tasks    TaskRepository
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return s.Profiles.GetByID(ctx, id)
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return t, err
}
