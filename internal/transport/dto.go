package transport

import (
	"github.com/shopspring/decimal"

	"github.com/safsequence/Avance-Fragrance/internal/validation"
)

type CreateProductRequest struct {
	Name          string           `json:"name"          validate:"required,max=255"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"         validate:"required,gte=0"`
	Category      string           `json:"category"      validate:"required,oneof=men women unisex limited"`
	ImageURL      string           `json:"imageUrl"      validate:"required"`
	Stock         *int             `json:"stock"         validate:"omitempty,gte=0"`
	IsActive      *bool            `json:"isActive"`
	AverageRating *decimal.Decimal `json:"averageRating" validate:"omitempty,gte=0,lte=5"`
	TotalReviews  *int             `json:"totalReviews"  validate:"omitempty,gte=0"`
}

// UpdateProductRequest is a partial update: nil fields are left untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name"          validate:"omitempty,min=1,max=255"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"         validate:"omitempty,gte=0"`
	Category      *string          `json:"category"      validate:"omitempty,oneof=men women unisex limited"`
	ImageURL      *string          `json:"imageUrl"      validate:"omitempty,min=1"`
	Stock         *int             `json:"stock"         validate:"omitempty,gte=0"`
	IsActive      *bool            `json:"isActive"`
	AverageRating *decimal.Decimal `json:"averageRating" validate:"omitempty,gte=0,lte=5"`
	TotalReviews  *int             `json:"totalReviews"  validate:"omitempty,gte=0"`
}

type OrderInput struct {
	CustomerID      *uint            `json:"customerId"      validate:"omitempty,gt=0"`
	CustomerName    string           `json:"customerName"    validate:"required,max=200"`
	CustomerEmail   string           `json:"customerEmail"   validate:"required,email,max=255"`
	CustomerPhone   string           `json:"customerPhone"   validate:"omitempty,max=20"`
	ShippingAddress string           `json:"shippingAddress" validate:"required"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"     validate:"required,gte=0"`
	Status          string           `json:"status"          validate:"omitempty,oneof=pending processing shipped delivered"`
}

type OrderItemInput struct {
	ProductID uint             `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity"  validate:"required,gte=1"`
	Price     *decimal.Decimal `json:"price"     validate:"required,gte=0"`
}

type CreateOrderRequest struct {
	Order OrderInput       `json:"order"`
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered"`
}

type CreateContactMessageRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Message   string `json:"message"   validate:"required"`
}

// SignupRequest is also the admin create-customer body.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Password  string `json:"password"  validate:"required,max=72"`
	Phone     string `json:"phone"     validate:"omitempty,max=20"`
	Address   string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateReviewRequest struct {
	CustomerID    *uint  `json:"customerId"    validate:"omitempty,gt=0"`
	CustomerName  string `json:"customerName"  validate:"required,max=200"`
	CustomerEmail string `json:"customerEmail" validate:"required,email,max=255"`
	Rating        int    `json:"rating"        validate:"required,gte=1,lte=5"`
	Comment       string `json:"comment"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type SearchResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
