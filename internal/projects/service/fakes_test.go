package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

type memProjects struct {
	mu      sync.Mutex
	byID    map[string]*domain.Project
	applied []string
}

func newMemProjects(ps ...*domain.Project) *memProjects {
	m := &memProjects{byID: map[string]*domain.Project{}}
	for _, p := range ps {
		m.byID[p.ProjectID] = p
	}
	return m
}

func (m *memProjects) Create(_ context.Context, p *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ProjectID]; ok {
		return domain.ErrProjectExists
	}
	p.ID = int64(len(m.byID) + 1)
	cp := *p
	m.byID[p.ProjectID] = &cp
	return nil
}

func (m *memProjects) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	p, err := m.FindByProjectID(ctx, projectID)
	if err != nil || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *memProjects) FindByProjectID(_ context.Context, projectID string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) ListByUser(_ context.Context, userID string) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, p := range m.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memProjects) Update(_ context.Context, userID, projectID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[projectID]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if upd.ProjectName != nil {
		p.ProjectName = *upd.ProjectName
	}
	if upd.Theme != nil {
		p.Theme = *upd.Theme
	}
	if upd.Screenshot != nil {
		s := *upd.Screenshot
		p.Screenshot = &s
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) ApplyConfig(_ context.Context, projectID, name, theme, visual string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[projectID]
	if !ok {
		return domain.ErrNotFound
	}
	p.ProjectName, p.Theme, p.VisualDescription, p.Config = name, theme, visual, raw
	m.applied = append(m.applied, projectID)
	return nil
}

type memScreens struct {
	mu   sync.Mutex
	rows []domain.Screen
}

func (m *memScreens) ListByProject(_ context.Context, projectID string) ([]domain.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Screen
	for _, s := range m.rows {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memScreens) Get(_ context.Context, projectID, screenID string) (*domain.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.ProjectID == projectID && s.ScreenID == screenID {
			cp := s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memScreens) Insert(_ context.Context, s *domain.Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memScreens) UpdateCode(_ context.Context, projectID, screenID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ProjectID == projectID && m.rows[i].ScreenID == screenID {
			c := code
			m.rows[i].Code = &c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memScreens) Delete(_ context.Context, projectID, screenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.rows[:0]
	for _, s := range m.rows {
		if !(s.ProjectID == projectID && s.ScreenID == screenID) {
			out = append(out, s)
		}
	}
	m.rows = out
	return nil
}

func (m *memScreens) ListMissingCode(_ context.Context, limit int) ([]domain.ScreenRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ScreenRef
	for _, s := range m.rows {
		if !s.HasCode() && len(out) < limit {
			out = append(out, domain.ScreenRef{ProjectID: s.ProjectID, ScreenID: s.ScreenID})
		}
	}
	return out, nil
}

// scriptedLLM answers by matching a substring of the user message; unmatched calls fall back to def.
type scriptedLLM struct {
	mu      sync.Mutex
	answers map[string]string
	errs    map[string]error
	def     string
	calls   []llmCall
}

type llmCall struct {
	Model, System, User string
}

func (f *scriptedLLM) Complete(_ context.Context, model, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, llmCall{model, system, user})
	for k, err := range f.errs {
		if strings.Contains(user, k) {
			return "", err
		}
	}
	for k, v := range f.answers {
		if strings.Contains(user, k) {
			return v, nil
		}
	}
	return f.def, nil
}

type countingCredits struct {
	calls int
	err   error
}

func (c *countingCredits) ConsumeCredit(context.Context, string) error {
	c.calls++
	return c.err
}

type memScreenshots struct{}

func (memScreenshots) PutScreenshot(_ context.Context, userID, projectID string, _ []byte) (string, error) {
	return "https://cdn.example/" + userID + "/" + projectID + ".png", nil
}
