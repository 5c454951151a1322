package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, project_id, user_id, user_input, device, project_name, theme,
       project_visual_description, screenshot, config, created_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p          domain.Project
		screenshot sql.NullString
		cfg        []byte
	)
	err := row.Scan(&p.ID, &p.ProjectID, &p.UserID, &p.UserInput, &p.Device, &p.ProjectName, &p.Theme,
		&p.VisualDescription, &screenshot, &cfg, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	if screenshot.Valid {
		p.Screenshot = &screenshot.String
	}
	if len(cfg) > 0 {
		p.Config = cfg
	}
	return &p, nil
}

// Create inserts p and fills in its id and creation time.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (project_id, user_id, user_input, device, project_name, theme, project_visual_description)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_on
`
	err := r.db.QueryRowContext(ctx, q,
		p.ProjectID, p.UserID, p.UserInput, p.Device, p.ProjectName, p.Theme, p.VisualDescription,
	).Scan(&p.ID, &p.CreatedOn)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrProjectExists
		}
		return err
	}
	return nil
}

// Get returns the project when it belongs to userID.
func (r *ProjectRepository) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1 AND user_id = $2`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, projectID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// FindByProjectID returns the project regardless of owner. Used by background jobs.
func (r *ProjectRepository) FindByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, projectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// ListByUser returns the user's projects, newest first.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of upd.
func (r *ProjectRepository) Update(ctx context.Context, userID, projectID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	q := `
UPDATE projects
SET project_name = COALESCE($3, project_name),
    theme = COALESCE($4, theme),
    screenshot = COALESCE($5, screenshot)
WHERE project_id = $1 AND user_id = $2
RETURNING ` + projectColumns
	p, err := scanProject(r.db.QueryRowContext(ctx, q, projectID, userID,
		nullable(upd.ProjectName), nullable(upd.Theme), nullable(upd.Screenshot)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// ApplyConfig records the outcome of configuration generation.
func (r *ProjectRepository) ApplyConfig(ctx context.Context, projectID, name, theme, visual string, raw []byte) error {
	const q = `
UPDATE projects
SET project_name = $2, theme = $3, project_visual_description = $4, config = $5
WHERE project_id = $1
`
	res, err := r.db.ExecContext(ctx, q, projectID, name, theme, visual, raw)
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

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
