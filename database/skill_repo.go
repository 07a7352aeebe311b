package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindFeatured returns the featured skills in display order
func (r *SkillRepo) FindFeatured(ctx context.Context) ([]*models.Skill, error) {
	skills := []*models.Skill{}
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("count ASC").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("skill")
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

// AddMany inserts skills in a single batch
func (r *SkillRepo) AddMany(ctx context.Context, skills []*models.Skill) error {
	return r.db.WithContext(ctx).Create(&skills).Error
}

// Replace overwrites every field of an existing skill and reloads it into skill
func (r *SkillRepo) Replace(ctx context.Context, skill *models.Skill) error {
	result := r.db.WithContext(ctx).Model(skill).Select("*").Omit("ID", "CreatedAt").Updates(skill)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return r.db.WithContext(ctx).First(skill, "id = ?", skill.ID).Error
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Skill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return nil
}

func (r *SkillRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&count).Error
	return count, err
}
