package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// OrderStatuses is ordered by lifecycle position.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// StatusRank returns the lifecycle position of s, or -1 for unknown values.
func StatusRank(s string) int {
	for i, st := range OrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

const (
	CategoryMen     = "men"
	CategoryWomen   = "women"
	CategoryUnisex  = "unisex"
	CategoryLimited = "limited"
)

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"                 json:"id"`
	Name          string          `gorm:"size:255;not null"                        json:"name"`
	Description   string          `gorm:"type:text"                                json:"description"`
	Price         Fixed           `gorm:"type:decimal(10,2);not null"              json:"price"`
	Category      string          `gorm:"size:100;not null;index"                  json:"category"`
	ImageURL      string          `gorm:"type:text;not null"                       json:"imageUrl"`
	Stock         int             `gorm:"not null;default:0"                       json:"stock"`
	IsActive      bool            `gorm:"not null;default:true;index"              json:"isActive"`
	AverageRating Fixed           `gorm:"type:decimal(3,2);not null;default:0"     json:"averageRating"`
	TotalReviews  int             `gorm:"not null;default:0"                       json:"totalReviews"`
	CreatedAt     time.Time       `gorm:"index"                                    json:"createdAt"`
	UpdatedAt     time.Time       `                                                json:"updatedAt"`
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	FirstName string    `gorm:"size:100;not null"             json:"firstName"`
	LastName  string    `gorm:"size:100;not null"             json:"lastName"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null"             json:"-"`
	Phone     string    `gorm:"size:20"                       json:"phone"`
	Address   string    `gorm:"type:text"                     json:"address"`
	CreatedAt time.Time `gorm:"index"                         json:"createdAt"`
}

type Review struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint      `gorm:"not null;index"           json:"productId"`
	CustomerID    *uint     `gorm:"index"                    json:"customerId"`
	CustomerName  string    `gorm:"size:200;not null"        json:"customerName"`
	CustomerEmail string    `gorm:"size:255;not null"        json:"customerEmail"`
	Rating        int       `gorm:"not null"                 json:"rating"`
	Comment       string    `gorm:"type:text"                json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"           json:"id"`
	CustomerID      *uint           `gorm:"index"                              json:"customerId"`
	CustomerName    string          `gorm:"size:200;not null"                  json:"customerName"`
	CustomerEmail   string          `gorm:"size:255;not null"                  json:"customerEmail"`
	CustomerPhone   string          `gorm:"size:20"                            json:"customerPhone"`
	ShippingAddress string          `gorm:"type:text;not null"                 json:"shippingAddress"`
	TotalAmount     Fixed           `gorm:"type:decimal(10,2);not null"        json:"totalAmount"`
	Status          string          `gorm:"size:50;not null;default:pending;index" json:"status"`
	OrderDate       time.Time       `gorm:"autoCreateTime;index"               json:"orderDate"`
	ShippedAt       *time.Time      `json:"shippedAt"`
	DeliveredAt     *time.Time      `json:"deliveredAt"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"not null;index"              json:"orderId"`
	ProductID uint            `gorm:"not null;index"              json:"productId"`
	Quantity  int             `gorm:"not null"                    json:"quantity"`
	Price     Fixed           `gorm:"type:decimal(10,2);not null" json:"price"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"size:100;not null"        json:"firstName"`
	LastName  string    `gorm:"size:100;not null"        json:"lastName"`
	Email     string    `gorm:"size:255;not null"        json:"email"`
	Message   string    `gorm:"type:text;not null"       json:"message"`
	IsRead    bool      `gorm:"not null;default:false"   json:"isRead"`
	CreatedAt time.Time `gorm:"index"                    json:"createdAt"`
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&Product{},
		&Customer{},
		&Review{},
		&Order{},
		&OrderItem{},
		&ContactMessage{},
	}
}

type OrderItemWithProduct struct {
	OrderItem
	Product *Product `json:"product"`
}

type OrderWithItems struct {
	Order
	Items    []OrderItemWithProduct `json:"items"`
	Customer *Customer              `json:"customer,omitempty"`
}

type Stats struct {
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalOrders     int64           `json:"totalOrders"`
	PendingOrders   int64           `json:"pendingOrders"`
	CompletedOrders int64           `json:"completedOrders"`
	TotalProducts   int64           `json:"totalProducts"`
	TotalCustomers  int64           `json:"totalCustomers"`
}
