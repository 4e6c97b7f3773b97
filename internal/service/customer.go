package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/safsequence/Avance-Fragrance/internal/events"
	"github.com/safsequence/Avance-Fragrance/internal/hash"
	"github.com/safsequence/Avance-Fragrance/internal/logging"
	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/statscache"
	"github.com/safsequence/Avance-Fragrance/internal/tokens"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

type CustomerService struct {
	Repo   *repo.GormRepo
	Events *events.Emitter
	Stats  statscache.Cache

	// JWTSecret enables the access token on login. Empty disables it.
	JWTSecret   []byte
	AccessTTL   time.Duration
	AdminEmails []string
}

type LoginResult struct {
	Customer    *models.Customer
	AccessToken string
	AccessExp   time.Time
	IsAdmin     bool
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// dummyPasswordHash gives unknown-email logins the same bcrypt cost as a
// wrong password.
func dummyPasswordHash() string {
	dummyOnce.Do(func() {
		dummyHash, _ = hash.HashPassword("avance-no-such-customer")
	})
	return dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.Repo.ListCustomers(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	c, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

// Register hashes the password and stores the customer. An email that is
// already registered fails with ErrEmailTaken and leaves the existing row as is.
func (s *CustomerService) Register(ctx context.Context, req transport.SignupRequest) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "customer.register")

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	c := &models.Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  pwHash,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   req.Address,
	}

	if err := s.Repo.CreateCustomerIfNotExists(ctx, c); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_error", "reason", "email already registered")
			return nil, ErrEmailTaken
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	invalidateStats(ctx, s.Stats)
	s.Events.Emit(ctx, events.TopicCustomers, c.ID, events.CustomerRegistered, c)
	l.Info("register_success", "customer_id", c.ID)
	return c, nil
}

// Login checks the credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "customer.login")

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	c, err := s.Repo.GetCustomerByEmail(ctx, email)
	if err != nil {
		if !repo.IsNotFound(err) {
			l.Error("login_error", "error", err)
			return nil, err
		}
		hash.CheckPassword(dummyPasswordHash(), password)
		l.Warn("login_failed", "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	if !hash.CheckPassword(c.Password, password) {
		l.Warn("login_failed", "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	res := &LoginResult{Customer: c, IsAdmin: slices.Contains(s.AdminEmails, email)}
	if len(s.JWTSecret) == 0 {
		return res, nil
	}

	role := tokens.RoleCustomer
	if res.IsAdmin {
		role = tokens.RoleAdmin
	}
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	res.AccessExp = time.Now().Add(ttl)
	res.AccessToken, err = tokens.CreateAccessToken(s.JWTSecret, c.ID, c.Email, role, res.AccessExp)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign access token", "error", err)
		return nil, err
	}
	return res, nil
}
