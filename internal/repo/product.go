package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

// ListActiveProducts returns active products, newest first. An empty category
// means no filter.
func (r *GormRepo) ListActiveProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	items := make([]models.Product, 0)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ActiveProductsByIDs keeps the order of ids and skips ids that are missing or inactive.
func (r *GormRepo) ActiveProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var found []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ? AND is_active = ?", ids, true).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// CreateProduct inserts prod. is_active has a column default, so an explicit
// false is written in a second statement.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	active := prod.IsActive
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prod).Error; err != nil {
			return err
		}
		if active {
			return nil
		}
		prod.IsActive = false
		return tx.Model(prod).Update("is_active", false).Error
	})
}

// UpdateProduct applies column updates and returns the fresh row.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, updates map[string]any) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates["updated_at"] = time.Now().UTC()
		res := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&prod, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

// DeactivateProduct is the soft delete: the row stays, is_active flips to false.
func (r *GormRepo) DeactivateProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchProducts is a case-insensitive substring match over name and description.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	like := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"
	match := func(db *gorm.DB) *gorm.DB {
		return db.Model(&models.Product{}).
			Where("is_active = ?", true).
			Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Scopes(match).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).Scopes(match).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *GormRepo) CountActiveProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
