package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	Create(ctx context.Context, p *entity.Profile) error
	Update(ctx context.Context, p *entity.Profile) error
	List(ctx context.Context) ([]*entity.Profile, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type profileRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewProfileRepository(db *sql.DB, logger *slog.Logger) ProfileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileRepository{db: db, logger: logger}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, address, postal_code, city,
		       children, spouse, created_at, updated_at
		FROM profiles WHERE id = ?`, id.String())
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, common.ErrNotFound)
	}
	return p, err
}

func (r *profileRepository) Create(ctx context.Context, p *entity.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	children, spouse, err := encodeFamily(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, first_name, last_name, email, address, postal_code, city,
		                      children, spouse, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.FirstName, p.LastName, p.Email, p.Address, p.PostalCode, p.City,
		children, spouse, formatTime(now), formatTime(now))
	if err != nil {
		r.logger.Error("repo.profiles.create_failed", "id", p.ID, "error", err)
		return common.WrapError(err, "create profile")
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now().UTC()

	children, spouse, err := encodeFamily(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET first_name = ?, last_name = ?, email = ?, address = ?, postal_code = ?, city = ?,
		    children = ?, spouse = ?, updated_at = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.Email, p.Address, p.PostalCode, p.City,
		children, spouse, formatTime(p.UpdatedAt), p.ID.String())
	if err != nil {
		r.logger.Error("repo.profiles.update_failed", "id", p.ID, "error", err)
		return common.WrapError(err, "update profile")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", p.ID, common.ErrNotFound)
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, address, postal_code, city,
		       children, spouse, created_at, updated_at
		FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, common.WrapError(err, "list profiles")
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profileRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE id = ?`, id.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*entity.Profile, error) {
	var (
		p                    entity.Profile
		id, created, updated string
		children             string
		spouse               sql.NullString
	)
	err := row.Scan(&id, &p.FirstName, &p.LastName, &p.Email, &p.Address, &p.PostalCode, &p.City,
		&children, &spouse, &created, &updated)
	if err != nil {
		return nil, err
	}
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse profile id: %w", err)
	}
	if err := json.Unmarshal([]byte(children), &p.Children); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	if spouse.Valid && spouse.String != "" {
		var s entity.Spouse
		if err := json.Unmarshal([]byte(spouse.String), &s); err != nil {
			return nil, fmt.Errorf("decode spouse: %w", err)
		}
		p.Spouse = &s
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return &p, nil
}

func encodeFamily(p *entity.Profile) (children string, spouse sql.NullString, err error) {
	kids := p.Children
	if kids == nil {
		kids = []entity.Child{}
	}
	b, err := json.Marshal(kids)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("encode children: %w", err)
	}
	children = string(b)

	if p.Spouse != nil {
		sb, err := json.Marshal(p.Spouse)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("encode spouse: %w", err)
		}
		spouse = sql.NullString{String: string(sb), Valid: true}
	}
	return children, spouse, nil
}

// timeLayout is fixed-width, unlike RFC3339Nano which trims trailing
// fractional zeros. Deadline range scans and ORDER BY compare the
// stored strings lexicographically, so every timestamp must serialize
// to the same length.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
