// Package tasks manages the family task board and the ingestion of
// forwarded emails into tasks.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
	"famorg/internal/llm"
	"famorg/internal/repository"
)

type Service struct {
	repo       repository.TaskRepository
	profiles   repository.ProfileRepository
	classifier llm.TaskClassifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo repository.TaskRepository, profiles repository.ProfileRepository, classifier llm.TaskClassifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		profiles:   profiles,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) Create(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	if err := s.validate(ctx, t); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tasks.create.ok", "id", t.ID, "source", t.Source, "category", t.Category)
	return t, nil
}

func (s *Service) Update(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	if t.ID == uuid.Nil {
		return nil, fmt.Errorf("task id is required: %w", common.ErrInvalidInput)
	}
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("task title is required: %w", common.ErrInvalidInput)
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetDone marks a task done or reopens it.
func (s *Service) SetDone(ctx context.Context, id uuid.UUID, done bool) (*entity.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Done = done
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tasks.done.ok", "id", id, "done", done)
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, profileID uuid.UUID, filter repository.TaskFilter) ([]*entity.Task, error) {
	return s.repo.List(ctx, profileID, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// IngestRequest is a forwarded email or pasted note to turn into a task.
type IngestRequest struct {
	ProfileID     uuid.UUID
	Subject       string
	Sender        string
	Body          string
	AttachmentURL string
}

// IngestEmail classifies the text into task fields and creates the
// task. The classifier's deadline is YYYY-MM-DD; an unparseable one is
// dropped, never guessed.
func (s *Service) IngestEmail(ctx context.Context, req IngestRequest) (*entity.Task, error) {
	if s.classifier == nil {
		return nil, fmt.Errorf("no classifier configured: %w", common.ErrInternal)
	}
	if strings.TrimSpace(req.Body) == "" && strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("nothing to ingest: %w", common.ErrInvalidInput)
	}

	profile, err := s.profiles.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	fields, _, err := s.classifier.ClassifyTask(ctx, llm.ClassifyRequest{
		Text:       req.Body,
		Subject:    req.Subject,
		SenderHint: req.Sender,
		Family: llm.FamilyContext{
			ParentName: profile.FullName(),
			Children:   profile.ChildFirstNames(),
			City:       profile.City,
		},
	})
	if err != nil {
		s.logger.Error("tasks.ingest.classify_failed", "profile_id", req.ProfileID, "error", err)
		return nil, fmt.Errorf("classify: %w", err)
	}

	t := &entity.Task{
		ProfileID:     req.ProfileID,
		Title:         fields.Title,
		Description:   fields.Description,
		Category:      fields.Category,
		ContactName:   fields.ContactName,
		ContactEmail:  fields.ContactEmail,
		ContactPhone:  fields.ContactPhone,
		AttachmentURL: req.AttachmentURL,
		Source:        "email",
	}
	if fields.Deadline != "" {
		if d, perr := time.Parse("2006-01-02", fields.Deadline); perr == nil {
			t.Deadline = d
		} else {
			s.logger.Warn("tasks.ingest.bad_deadline", "deadline", fields.Deadline)
		}
	}

	created, err := s.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info("tasks.ingest.ok",
		"id", created.ID,
		"category", created.Category,
		"has_deadline", !created.Deadline.IsZero(),
		"confidence", fields.ModelConfidence,
	)
	return created, nil
}

func (s *Service) validate(ctx context.Context, t *entity.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required: %w", common.ErrInvalidInput)
	}
	if t.ProfileID == uuid.Nil {
		return fmt.Errorf("task profile id is required: %w", common.ErrInvalidInput)
	}
	ok, err := s.profiles.Exists(ctx, t.ProfileID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("profile %s: %w", t.ProfileID, common.ErrNotFound)
	}
	return nil
}
