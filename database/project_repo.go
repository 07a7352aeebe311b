package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects, newest first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	projects := []*models.Project{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// AddMany inserts projects in a single batch
func (r *ProjectRepo) AddMany(ctx context.Context, projects []*models.Project) error {
	return r.db.WithContext(ctx).Create(&projects).Error
}

// Replace overwrites every field of an existing project and reloads it into project
func (r *ProjectRepo) Replace(ctx context.Context, project *models.Project) error {
	result := r.db.WithContext(ctx).Model(project).Select("*").Omit("ID", "CreatedAt").Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return r.db.WithContext(ctx).First(project, "id = ?", project.ID).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}
