package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"famorg/internal/entity"
	"famorg/internal/repository"
)

// Reminder periodically looks for open tasks due within the horizon and
// notifies the owning profile by email and push. Either channel may be
// nil.
type Reminder struct {
	tasks    repository.TaskRepository
	profiles repository.ProfileRepository
	mailer   *Mailer
	push     *Push
	horizon  time.Duration
	interval time.Duration
	logger   *slog.Logger
}

func NewReminder(tasks repository.TaskRepository, profiles repository.ProfileRepository, mailer *Mailer, push *Push, horizon, interval time.Duration, logger *slog.Logger) *Reminder {
	if logger == nil {
		logger = slog.Default()
	}
	if horizon <= 0 {
		horizon = 48 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Reminder{
		tasks:    tasks,
		profiles: profiles,
		mailer:   mailer,
		push:     push,
		horizon:  horizon,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				r.logger.Error("notify.reminder.sweep_failed", "error", err)
			}
		}
	}
}

// Sweep runs one pass: find due tasks, group by profile, notify.
func (r *Reminder) Sweep(ctx context.Context) error {
	now := time.Now()
	due, err := r.tasks.DueBetween(ctx, now, now.Add(r.horizon))
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	byProfile := make(map[uuid.UUID][]*entity.Task)
	for _, t := range due {
		byProfile[t.ProfileID] = append(byProfile[t.ProfileID], t)
	}

	for profileID, tasks := range byProfile {
		profile, err := r.profiles.GetByID(ctx, profileID)
		if err != nil {
			r.logger.Warn("notify.reminder.profile_missing", "profile_id", profileID, "error", err)
			continue
		}
		if r.mailer != nil && profile.Email != "" {
			if err := r.mailer.SendDeadlineReminder(profile.Email, tasks); err != nil {
				r.logger.Warn("notify.reminder.mail_failed", "profile_id", profileID, "error", err)
			}
		}
		if r.push != nil {
			if err := r.push.SendDeadlineReminder(ctx, tasks); err != nil {
				r.logger.Warn("notify.reminder.push_failed", "profile_id", profileID, "error", err)
			}
		}
	}

	r.logger.Info("notify.reminder.sweep_ok", "due", len(due), "profiles", len(byProfile))
	return nil
}
