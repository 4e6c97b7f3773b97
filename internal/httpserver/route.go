package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/safsequence/Avance-Fragrance/internal/db"
	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/middleware/auth"
)

type Deps struct {
	DB        *gorm.DB
	Products  *ProductHTTP
	Customers *CustomerHTTP
	Orders    *OrderHTTP
	Contact   *ContactHTTP
	Admin     *AdminHTTP
	Auth      *AuthHTTP
	AuthMW    *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Warn("ready_error", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	admin := d.AuthMW.RequireAdmin
	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.Products.GetProducts)
	products.GET("/search", d.Products.SearchProducts)
	products.GET("/:id", d.Products.GetProduct)
	products.GET("/:id/reviews", d.Products.GetReviews)
	products.POST("/:id/reviews", d.Products.CreateReview)
	products.POST("", d.Products.CreateProduct, admin)
	products.PUT("/:id", d.Products.UpdateProduct, admin)
	products.DELETE("/:id", d.Products.DeleteProduct, admin)

	customers := api.Group("/customers", admin)
	customers.GET("", d.Customers.GetCustomers)
	customers.POST("", d.Customers.CreateCustomer)
	customers.GET("/:id", d.Customers.GetCustomer)
	customers.GET("/:id/orders", d.Customers.GetCustomerOrders)

	orders := api.Group("/orders")
	orders.GET("", d.Orders.GetOrders, admin)
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("/:id", d.Orders.GetOrder)
	orders.PUT("/:id/status", d.Orders.UpdateOrderStatus, admin)

	api.GET("/admin/stats", d.Admin.GetStats, admin)

	messages := api.Group("/contact-messages")
	messages.GET("", d.Contact.GetMessages, admin)
	messages.POST("", d.Contact.CreateMessage)
	messages.PUT("/:id/read", d.Contact.MarkRead, admin)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", d.Auth.Signup)
	authGroup.POST("/login", d.Auth.Login)
}
