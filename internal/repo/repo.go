package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrProductMissing  = errors.New("product does not exist")
	ErrCustomerMissing = errors.New("customer does not exist")
	ErrStockTooLow     = errors.New("insufficient stock")
	ErrEmailTaken      = errors.New("email already registered")
	ErrStatusRegress   = errors.New("status transition not allowed")
)

type GormRepo struct {
	DB *gorm.DB
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
