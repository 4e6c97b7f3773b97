package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/events"
	"github.com/safsequence/Avance-Fragrance/internal/hash"
	"github.com/safsequence/Avance-Fragrance/internal/tokens"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

func TestCustomerService_Register(t *testing.T) {
	t.Parallel()

	r, em, pub := newTestDeps(t)
	svc := &CustomerService{Repo: r, Events: em}
	ctx := context.Background()

	c, err := svc.Register(ctx, transport.SignupRequest{
		FirstName: "Nadia",
		LastName:  "Rahman",
		Email:     " Nadia@Example.com ",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "nadia@example.com", c.Email)
	assert.NotEqual(t, "s3cret", c.Password)
	assert.True(t, hash.CheckPassword(c.Password, "s3cret"))

	_, err = svc.Register(ctx, transport.SignupRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "nadia@example.com",
		Password:  "different",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	stored, err := svc.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nadia", stored.FirstName)
	assert.True(t, hash.CheckPassword(stored.Password, "s3cret"))

	_, err = svc.GetCustomer(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{events.CustomerRegistered}, pub.types())
}

func TestCustomerService_Login(t *testing.T) {
	t.Parallel()

	r, em, _ := newTestDeps(t)
	secret := []byte("test-secret")
	svc := &CustomerService{
		Repo:        r,
		Events:      em,
		JWTSecret:   secret,
		AccessTTL:   time.Minute,
		AdminEmails: []string{"boss@example.com"},
	}
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "boss@example.com"} {
		_, err := svc.Register(ctx, transport.SignupRequest{FirstName: "A", LastName: "B", Email: email, Password: "pw"})
		require.NoError(t, err)
	}

	res, err := svc.Login(ctx, "A@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", res.Customer.Email)
	assert.False(t, res.IsAdmin)
	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, secret)
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleCustomer, claims.Role)
	id, err := claims.CustomerID()
	require.NoError(t, err)
	assert.Equal(t, res.Customer.ID, id)

	res, err = svc.Login(ctx, "boss@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)
	claims, err = tokens.AccessClaimsFromToken(res.AccessToken, secret)
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, claims.Role)

	_, wrongPw := svc.Login(ctx, "a@example.com", "nope")
	_, unknown := svc.Login(ctx, "ghost@example.com", "pw")
	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())

	_, err = svc.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerService_Login_NoSecret(t *testing.T) {
	t.Parallel()

	r, em, _ := newTestDeps(t)
	svc := &CustomerService{Repo: r, Events: em}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.SignupRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, res.AccessToken)
}

func TestCustomerService_RegisterInvalidatesStats(t *testing.T) {
	t.Parallel()

	r, em, _ := newTestDeps(t)
	cache := &countingCache{}
	svc := &CustomerService{Repo: r, Events: em, Stats: cache}
	ctx := context.Background()

	req := transport.SignupRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "pw"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)

	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, cache.invalidations)
}
