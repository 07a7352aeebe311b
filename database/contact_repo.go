package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns every contact message, newest first
func (r *ContactRepo) FindAll(ctx context.Context) ([]*models.ContactMessage, error) {
	messages := []*models.ContactMessage{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *ContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("message")
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ContactRepo) Add(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// MarkRead sets read=true. Calling it on an already read message is a no-op.
func (r *ContactRepo) MarkRead(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("message")
	}
	return r.FindByID(ctx, id)
}

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("message")
	}
	return nil
}

func (r *ContactRepo) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("read = ?", false).Count(&count).Error
	return count, err
}
