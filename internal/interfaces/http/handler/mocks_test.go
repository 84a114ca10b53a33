package handler

import (
	"context"
	"time"

	appcatalog "github.com/sannaclaudia/WebAPP/internal/application/catalog"
	appidentity "github.com/sannaclaudia/WebAPP/internal/application/identity"
	"github.com/sannaclaudia/WebAPP/internal/application/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/stretchr/testify/mock"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListDishes(ctx context.Context) ([]appcatalog.DishResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.DishResponse), args.Error(1)
}

func (m *mockCatalog) ListIngredients(ctx context.Context) ([]appcatalog.IngredientResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.IngredientResponse), args.Error(1)
}

func (m *mockCatalog) Pricing(ctx context.Context) (*appcatalog.PricingResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.PricingResponse), args.Error(1)
}

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) ValidateOrder(ctx context.Context, req ordering.ValidateOrderRequest) (*ordering.ValidationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.ValidationResult), args.Error(1)
}

func (m *mockOrders) SubmitOrder(ctx context.Context, req ordering.SubmitOrderRequest) (*ordering.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.OrderResponse), args.Error(1)
}

func (m *mockOrders) CancelOrder(ctx context.Context, req ordering.CancelOrderRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockOrders) ListOrders(ctx context.Context, userID uint) ([]ordering.OrderResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.OrderResponse), args.Error(1)
}

func (m *mockOrders) OrderHistory(ctx context.Context, userID uint) ([]ordering.OrderResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.OrderResponse), args.Error(1)
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Login(ctx context.Context, req appidentity.LoginRequest) (*identity.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func (m *mockAuth) VerifyTOTP(ctx context.Context, sessionID, code string) (*identity.Session, error) {
	args := m.Called(ctx, sessionID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func (m *mockAuth) SkipTOTP(ctx context.Context, sessionID string) (*identity.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// prefixTokens signs a session id as "signed.<id>"
type prefixTokens struct{}

func (prefixTokens) Sign(sessionID string, _ uint, _ time.Time) (string, error) {
	return "signed." + sessionID, nil
}

func (prefixTokens) Parse(token string) (string, error) {
	const prefix = "signed."
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", errBadToken
	}
	return token[len(prefix):], nil
}
