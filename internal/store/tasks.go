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

// TaskUpdate holds the fields of a task a client wants to change. Nil
// fields are left as they are.
type TaskUpdate struct {
	Name   *string
	Estado *bool
}

type Tasks struct {
	db       *gorm.DB
	projects *Projects
	now      func() time.Time
}

func NewTasks(db *gorm.DB, projects *Projects) *Tasks {
	return &Tasks{db: db, projects: projects, now: time.Now}
}

// project resolves the parent project of a task operation and checks that
// userID owns it. An unresolvable project is never treated as authorized.
func (t *Tasks) project(ctx context.Context, projectID, userID string) (*model.Project, error) {
	project, err := t.projects.Owned(ctx, projectID, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrProjectNotFound
	}

	return project, err
}

// Create adds an incomplete task to a project owned by userID
func (t *Tasks) Create(ctx context.Context, name, projectID, userID string) (*model.Task, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	if _, err := t.project(ctx, projectID, userID); err != nil {
		return nil, err
	}

	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	task := &model.Task{
		ID:       id,
		Name:     name,
		Estado:   false,
		Proyecto: projectID,
		Created:  t.now(),
	}

	if err := t.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListByProject returns the tasks of a project owned by userID, newest
// first. Tasks created at the same instant are ordered by ID.
func (t *Tasks) ListByProject(ctx context.Context, projectID, userID string) ([]model.Task, error) {
	if _, err := t.project(ctx, projectID, userID); err != nil {
		return nil, err
	}

	tasks := []model.Task{}

	err := t.db.WithContext(ctx).
		Where("proyecto = ?", projectID).
		Order("created desc").
		Order("id desc").
		Find(&tasks).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Get returns the task with the given ID or ErrNotFound
func (t *Tasks) Get(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task

	err := t.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}

	return &task, nil
}

// Owned loads a task and the project it belongs to, checking that userID
// owns that project
func (t *Tasks) Owned(ctx context.Context, id, userID string) (*model.Task, *model.Project, error) {
	task, err := t.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	project, err := t.project(ctx, task.Proyecto, userID)
	if err != nil {
		return nil, nil, err
	}

	return task, project, nil
}

// Update applies u to a task whose project is owned by userID
func (t *Tasks) Update(ctx context.Context, id string, u TaskUpdate, userID string) (*model.Task, error) {
	updates := map[string]any{}

	if u.Name != nil {
		name, err := cleanName(*u.Name)
		if err != nil {
			return nil, err
		}

		updates["name"] = name
	}

	if u.Estado != nil {
		updates["estado"] = *u.Estado
	}

	task, _, err := t.Owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return task, nil
	}

	err = t.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Updates(updates).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if name, ok := updates["name"].(string); ok {
		task.Name = name
	}

	if u.Estado != nil {
		task.Estado = *u.Estado
	}

	return task, nil
}

// Delete removes a single task whose project is owned by userID and
// returns that project
func (t *Tasks) Delete(ctx context.Context, id, userID string) (*model.Project, error) {
	_, project, err := t.Owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	err = t.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Task{}).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return project, nil
}

// Orphans deletes tasks whose project no longer exists and returns how
// many were removed
func (t *Tasks) Orphans(ctx context.Context) (int64, error) {
	r := t.db.WithContext(ctx).
		Where("proyecto NOT IN (?)", t.db.Model(&model.Project{}).Select("id")).
		Delete(&model.Task{})
	if r.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned tasks: %w", r.Error)
	}

	return r.RowsAffected, nil
}
