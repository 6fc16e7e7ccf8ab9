package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
)

// TaskFilter narrows List results. Zero value lists everything for a
// profile.
type TaskFilter struct {
	Done     *bool
	Category string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	Create(ctx context.Context, t *entity.Task) error
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, profileID uuid.UUID, filter TaskFilter) ([]*entity.Task, error)
	// DueBetween returns open tasks whose deadline falls in [from, to),
	// across all profiles. Used by the reminder loop.
	DueBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error)
}

type taskRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTaskRepository(db *sql.DB, logger *slog.Logger) TaskRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskRepository{db: db, logger: logger}
}

const taskColumns = `id, profile_id, title, description, deadline, category,
	contact_name, contact_email, contact_phone, attachment_url, source, done,
	created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, common.ErrNotFound)
	}
	return t, err
}

func (r *taskRepository) Create(ctx context.Context, t *entity.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Source == "" {
		t.Source = "manual"
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.ProfileID.String(), t.Title, t.Description,
		nullableTime(t.Deadline), t.Category,
		t.ContactName, t.ContactEmail, t.ContactPhone, t.AttachmentURL,
		t.Source, boolToInt(t.Done), formatTime(now), formatTime(now))
	if err != nil {
		r.logger.Error("repo.tasks.create_failed", "id", t.ID, "error", err)
		return common.WrapError(err, "create task")
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, deadline = ?, category = ?,
		    contact_name = ?, contact_email = ?, contact_phone = ?,
		    attachment_url = ?, source = ?, done = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, nullableTime(t.Deadline), t.Category,
		t.ContactName, t.ContactEmail, t.ContactPhone,
		t.AttachmentURL, t.Source, boolToInt(t.Done), formatTime(t.UpdatedAt),
		t.ID.String())
	if err != nil {
		r.logger.Error("repo.tasks.update_failed", "id", t.ID, "error", err)
		return common.WrapError(err, "update task")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, common.ErrNotFound)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return common.WrapError(err, "delete task")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *taskRepository) List(ctx context.Context, profileID uuid.UUID, filter TaskFilter) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE profile_id = ?`
	args := []any{profileID.String()}
	if filter.Done != nil {
		query += ` AND done = ?`
		args = append(args, boolToInt(*filter.Done))
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY deadline IS NULL, deadline, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.WrapError(err, "list tasks")
	}
	defer func() { _ = rows.Close() }()
	return collectTasks(rows)
}

func (r *taskRepository) DueBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE done = 0 AND deadline IS NOT NULL AND deadline >= ? AND deadline < ?
		ORDER BY deadline`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, common.WrapError(err, "list due tasks")
	}
	defer func() { _ = rows.Close() }()
	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*entity.Task, error) {
	var out []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var (
		t                               entity.Task
		id, profileID, created, updated string
		deadline                        sql.NullString
		done                            int
	)
	err := row.Scan(&id, &profileID, &t.Title, &t.Description, &deadline, &t.Category,
		&t.ContactName, &t.ContactEmail, &t.ContactPhone, &t.AttachmentURL,
		&t.Source, &done, &created, &updated)
	if err != nil {
		return nil, err
	}
	if t.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse task id: %w", err)
	}
	if t.ProfileID, err = uuid.Parse(profileID); err != nil {
		return nil, fmt.Errorf("parse task profile id: %w", err)
	}
	if deadline.Valid {
		t.Deadline = parseTime(deadline.String)
	}
	t.Done = done != 0
	t.CreatedAt = parseTime(created)
	t.UpdatedAt = parseTime(updated)
	return &t, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
