package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func (r *GormRepo) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	items := make([]models.ContactMessage, 0)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepo) MarkMessageRead(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
