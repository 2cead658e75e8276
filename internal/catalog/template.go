package catalog

import (
	"time"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

// RunTemplate is a reusable project configuration that captures runs,
// direct pieces, and settings but not solve results, mirroring the
// teacher's ProjectTemplate.
type RunTemplate struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
	Runs         []model.BarRun      `json:"runs"`
	DirectPieces []model.DirectPiece `json:"direct_pieces"`
	Settings     model.ProjectSettings `json:"settings"`
}

// NewRunTemplate creates a new template from the given project data,
// stamping a generated ID and UTC timestamps.
func NewRunTemplate(name, description string, runs []model.BarRun, direct []model.DirectPiece, settings model.ProjectSettings) RunTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return RunTemplate{
		ID:           newID(),
		Name:         name,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
		Runs:         copyRuns(runs),
		DirectPieces: copyDirect(direct),
		Settings:     settings,
	}
}

// TemplateStore holds a collection of run templates.
type TemplateStore struct {
	Templates []RunTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []RunTemplate{}}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t RunTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *RunTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names, for CLI listing.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyRuns(runs []model.BarRun) []model.BarRun {
	if runs == nil {
		return []model.BarRun{}
	}
	cp := make([]model.BarRun, len(runs))
	copy(cp, runs)
	return cp
}

func copyDirect(direct []model.DirectPiece) []model.DirectPiece {
	if direct == nil {
		return []model.DirectPiece{}
	}
	cp := make([]model.DirectPiece, len(direct))
	copy(cp, direct)
	return cp
}
