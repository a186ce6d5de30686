package store

import (
	"bitwise74/task-api/internal/model"
	"bitwise74/task-api/pkg/util"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Projects struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProjects(db *gorm.DB) *Projects {
	return &Projects{db: db, now: time.Now}
}

// Create stores a new project owned by ownerID
func (p *Projects) Create(ctx context.Context, name, ownerID string) (*model.Project, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	project := &model.Project{
		ID:      id,
		Name:    name,
		Creator: ownerID,
		Created: p.now(),
	}

	if err := p.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListByOwner returns the projects of ownerID, newest first. Projects
// created at the same instant are ordered by ID.
func (p *Projects) ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	projects := []model.Project{}

	err := p.db.WithContext(ctx).
		Where("creator = ?", ownerID).
		Order("created desc").
		Order("id desc").
		Find(&projects).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// Get returns the project with the given ID or ErrNotFound
func (p *Projects) Get(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project

	err := p.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	return &project, nil
}

// Owned returns the project if userID created it. A missing project is
// ErrNotFound, someone else's project is ErrForbidden.
func (p *Projects) Owned(ctx context.Context, id, userID string) (*model.Project, error) {
	project, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.Creator != userID {
		return nil, ErrForbidden
	}

	return project, nil
}

// Rename changes the name of a project owned by userID
func (p *Projects) Rename(ctx context.Context, id, name, userID string) (*model.Project, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	project, err := p.Owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	err = p.db.WithContext(ctx).
		Model(project).
		Update("name", name).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	project.Name = name
	return project, nil
}

// Delete removes a project owned by userID together with all of its tasks.
// Tasks go first, if that fails the project is left untouched.
func (p *Projects) Delete(ctx context.Context, id, userID string) error {
	if _, err := p.Owned(ctx, id, userID); err != nil {
		return err
	}

	err := p.db.WithContext(ctx).
		Where("proyecto = ?", id).
		Delete(&model.Task{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}

	err = p.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Project{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
