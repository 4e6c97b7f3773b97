// Package apiclient is a typed client for the storefront HTTP API.
package apiclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
	"github.com/safsequence/Avance-Fragrance/internal/validation"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// APIError is a non-2xx response. Errors is set for validation failures.
type APIError struct {
	Status  int
	Message string
	Errors  validation.Errors
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Errors.Error())
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	var errBody transport.ValidationErrorResponse

	req := c.http.R().
		SetContext(ctx).
		SetError(&errBody)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := errBody.Message
		if msg == "" {
			msg = resp.Status()
		}
		return &APIError{Status: resp.StatusCode(), Message: msg, Errors: errBody.Errors}
	}
	return nil
}

func (c *Client) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var query map[string]string
	if category != "" {
		query = map[string]string{"category": category}
	}
	var out []models.Product
	if err := c.do(ctx, resty.MethodGet, "/api/products", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, resty.MethodGet, "/api/products/"+strconv.FormatUint(uint64(id), 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.OrderWithItems, error) {
	var out models.OrderWithItems
	if err := c.do(ctx, resty.MethodPost, "/api/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, req transport.SignupRequest) (*models.Customer, error) {
	var out models.Customer
	if err := c.do(ctx, resty.MethodPost, "/api/auth/signup", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.Customer, error) {
	var out models.Customer
	body := transport.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, resty.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendContactMessage(ctx context.Context, req transport.CreateContactMessageRequest) (*models.ContactMessage, error) {
	var out models.ContactMessage
	if err := c.do(ctx, resty.MethodPost, "/api/contact-messages", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
