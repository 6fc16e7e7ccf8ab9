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

type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	Create(ctx context.Context, d *entity.Document) error
	List(ctx context.Context, profileID uuid.UUID) ([]*entity.Document, error)
}

type documentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDocumentRepository(db *sql.DB, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepository{db: db, logger: logger}
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, profile_id, task_id, template_id, filename, url, created_at
		FROM documents WHERE id = ?`, id.String())
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	return d, err
}

func (r *documentRepository) Create(ctx context.Context, d *entity.Document) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now().UTC()

	var taskID any
	if d.TaskID != nil {
		taskID = d.TaskID.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, profile_id, task_id, template_id, filename, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID.String(), d.ProfileID.String(), taskID, d.TemplateID, d.Filename, d.URL,
		formatTime(d.CreatedAt))
	if err != nil {
		r.logger.Error("repo.documents.create_failed", "id", d.ID, "error", err)
		return common.WrapError(err, "create document")
	}
	return nil
}

func (r *documentRepository) List(ctx context.Context, profileID uuid.UUID) ([]*entity.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, profile_id, task_id, template_id, filename, url, created_at
		FROM documents WHERE profile_id = ? ORDER BY created_at DESC`, profileID.String())
	if err != nil {
		return nil, common.WrapError(err, "list documents")
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		d                      entity.Document
		id, profileID, created string
		taskID                 sql.NullString
	)
	err := row.Scan(&id, &profileID, &taskID, &d.TemplateID, &d.Filename, &d.URL, &created)
	if err != nil {
		return nil, err
	}
	if d.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	if d.ProfileID, err = uuid.Parse(profileID); err != nil {
		return nil, fmt.Errorf("parse document profile id: %w", err)
	}
	if taskID.Valid {
		tid, err := uuid.Parse(taskID.String)
		if err != nil {
			return nil, fmt.Errorf("parse document task id: %w", err)
		}
		d.TaskID = &tid
	}
	d.CreatedAt = parseTime(created)
	return &d, nil
}
