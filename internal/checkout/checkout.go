// Package checkout turns a cart and the checkout form into a placed order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safsequence/Avance-Fragrance/internal/cart"
	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
	"github.com/safsequence/Avance-Fragrance/internal/validation"
)

const (
	ShippingStandard  = "standard"
	ShippingExpress   = "express"
	ShippingOvernight = "overnight"

	DefaultPaymentDelay = 2 * time.Second
)

var (
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrUnknownShipping = errors.New("checkout: unknown shipping method")
)

var taxRate = decimal.RequireFromString("0.05")

var shippingCosts = map[string]decimal.Decimal{
	ShippingStandard:  decimal.NewFromInt(100),
	ShippingExpress:   decimal.NewFromInt(200),
	ShippingOvernight: decimal.NewFromInt(500),
}

func ShippingCost(method string) (decimal.Decimal, error) {
	cost, ok := shippingCosts[method]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownShipping, method)
	}
	return cost, nil
}

type Form struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,min=10"`

	Address string `json:"address" validate:"required,min=10"`
	City    string `json:"city"    validate:"required"`
	State   string `json:"state"   validate:"required"`
	ZipCode string `json:"zipCode" validate:"required,min=4"`

	ShippingMethod      string `json:"shippingMethod" validate:"required,oneof=standard express overnight"`
	PaymentMethod       string `json:"paymentMethod"  validate:"required,oneof=card mobile cod"`
	SpecialInstructions string `json:"specialInstructions"`
	Subscribe           bool   `json:"subscribe"`
}

type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize prices the cart. Tax is 5% of the subtotal rounded to a whole unit.
func Summarize(s cart.State, shippingMethod string) (Summary, error) {
	shipping, err := ShippingCost(shippingMethod)
	if err != nil {
		return Summary{}, err
	}

	subtotal := cart.Total(s.Items)
	tax := subtotal.Mul(taxRate).Round(0)
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}, nil
}

// BuildOrder assembles the create-order payload. Item prices are the cart's
// product prices at this moment.
func BuildOrder(f Form, s cart.State) (transport.CreateOrderRequest, error) {
	if s.IsEmpty() {
		return transport.CreateOrderRequest{}, ErrEmptyCart
	}
	sum, err := Summarize(s, f.ShippingMethod)
	if err != nil {
		return transport.CreateOrderRequest{}, err
	}

	items := make([]transport.OrderItemInput, 0, len(s.Items))
	for _, it := range s.Items {
		price := it.Product.Price.Decimal
		items = append(items, transport.OrderItemInput{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     &price,
		})
	}

	total := sum.Total
	return transport.CreateOrderRequest{
		Order: transport.OrderInput{
			CustomerName:    strings.TrimSpace(f.FirstName + " " + f.LastName),
			CustomerEmail:   f.Email,
			CustomerPhone:   f.Phone,
			ShippingAddress: fmt.Sprintf("%s, %s, %s %s", f.Address, f.City, f.State, f.ZipCode),
			TotalAmount:     &total,
			Status:          models.OrderStatusPending,
		},
		Items: items,
	}, nil
}

type OrderPlacer interface {
	CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.OrderWithItems, error)
}

type Flow struct {
	API          OrderPlacer
	Validator    *validation.Validator
	PaymentDelay time.Duration
}

func NewFlow(api OrderPlacer) *Flow {
	return &Flow{API: api, Validator: validation.New(), PaymentDelay: DefaultPaymentDelay}
}

// Submit validates the form, waits out the simulated payment and places the
// order. On success the returned cart is cleared; on failure it is s unchanged.
func (f *Flow) Submit(ctx context.Context, form Form, s cart.State) (*models.OrderWithItems, cart.State, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.submit")

	if f.Validator != nil {
		if err := f.Validator.Validate(&form); err != nil {
			return nil, s, err
		}
	}

	req, err := BuildOrder(form, s)
	if err != nil {
		return nil, s, err
	}

	if f.PaymentDelay > 0 {
		timer := time.NewTimer(f.PaymentDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, s, ctx.Err()
		case <-timer.C:
		}
	}

	order, err := f.API.CreateOrder(ctx, req)
	if err != nil {
		l.Warn("submit_error", "reason", "order rejected", "error", err)
		return nil, s, err
	}

	l.Info("submit_success", "order_id", order.ID, "total", req.Order.TotalAmount.String())
	return order, cart.Reduce(s, cart.Clear{}), nil
}
