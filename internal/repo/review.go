package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func (r *GormRepo) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	items := make([]models.Review, 0)
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).
		Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateReview stores a review for an existing product. Product rating fields
// are not recomputed.
func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Product{}).Where("id = ?", rv.ProductID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrProductMissing
		}
		return tx.Create(rv).Error
	})
}
