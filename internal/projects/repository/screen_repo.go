package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

type ScreenRepository struct {
	db *sql.DB
}

func NewScreenRepository(db *sql.DB) *ScreenRepository {
	return &ScreenRepository{db: db}
}

const screenColumns = `id, project_id, screen_id, screen_name, purpose, screen_description, code`

func scanScreen(row rowScanner) (*domain.Screen, error) {
	var (
		s    domain.Screen
		code sql.NullString
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &s.ScreenID, &s.ScreenName, &s.Purpose, &s.Description, &code); err != nil {
		return nil, err
	}
	if code.Valid {
		s.Code = &code.String
	}
	return &s, nil
}

// ListByProject returns screens in insertion order.
func (r *ScreenRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Screen, error) {
	q := `SELECT ` + screenColumns + ` FROM screen_configs WHERE project_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Screen, 0, 8)
	for rows.Next() {
		s, err := scanScreen(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScreenRepository) Get(ctx context.Context, projectID, screenID string) (*domain.Screen, error) {
	q := `SELECT ` + screenColumns + ` FROM screen_configs WHERE project_id = $1 AND screen_id = $2 ORDER BY id ASC LIMIT 1`
	s, err := scanScreen(r.db.QueryRowContext(ctx, q, projectID, screenID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func (r *ScreenRepository) Insert(ctx context.Context, s *domain.Screen) error {
	const q = `
INSERT INTO screen_configs (project_id, screen_id, screen_name, purpose, screen_description, code)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	return r.db.QueryRowContext(ctx, q,
		s.ProjectID, s.ScreenID, s.ScreenName, s.Purpose, s.Description, nullable(s.Code),
	).Scan(&s.ID)
}

// UpdateCode overwrites the screen's generated markup.
func (r *ScreenRepository) UpdateCode(ctx context.Context, projectID, screenID, code string) error {
	const q = `UPDATE screen_configs SET code = $3 WHERE project_id = $1 AND screen_id = $2`
	res, err := r.db.ExecContext(ctx, q, projectID, screenID, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the screen row. Deleting a missing screen is not an error.
func (r *ScreenRepository) Delete(ctx context.Context, projectID, screenID string) error {
	const q = `DELETE FROM screen_configs WHERE project_id = $1 AND screen_id = $2`
	_, err := r.db.ExecContext(ctx, q, projectID, screenID)
	return err
}

// ListMissingCode returns up to limit screens that were never rendered, oldest first.
func (r *ScreenRepository) ListMissingCode(ctx context.Context, limit int) ([]domain.ScreenRef, error) {
	const q = `
SELECT project_id, screen_id
FROM screen_configs
WHERE code IS NULL OR code = ''
ORDER BY id ASC
LIMIT $1
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScreenRef
	for rows.Next() {
		var ref domain.ScreenRef
		if err := rows.Scan(&ref.ProjectID, &ref.ScreenID); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
