package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	items := make([]models.Customer, 0)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCustomerIfNotExists inserts c unless the email is already registered.
// An existing row is never modified.
func (r *GormRepo) CreateCustomerIfNotExists(ctx context.Context, c *models.Customer) error {
	candidate := *c
	tx := r.DB.WithContext(ctx).Where("email = ?", c.Email).FirstOrCreate(&candidate)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrEmailTaken
	}
	*c = candidate
	return nil
}

func (r *GormRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}
