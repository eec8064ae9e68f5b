package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/pocketbank/internal/adapter/http/dto"
	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

type userServiceStub struct {
	registerFn func(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
	updateFn   func(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error)
}

func (s *userServiceStub) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *userServiceStub) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, input)
}

func validRegistration() dto.RegisterUserRequest {
	return dto.RegisterUserRequest{
		Username: "alice",
		Password: "Secret123",
		FullName: "Alice Doe",
		Email:    "alice@example.com",
	}
}

func TestUserHandler_Register(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
			return &domain.User{
				ID:             "user-1",
				Username:       input.Username,
				HashedPassword: "$2a$04$hash",
				Email:          input.Email,
				Role:           domain.RoleCustomer,
				Enabled:        true,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/users", jsonBody(t, validRegistration())))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"role":"CUSTOMER"`) {
		t.Fatalf("expected customer role, got %s", rec.Body.String())
	}
}

func TestUserHandler_RegisterDuplicate(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	})

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/users", jsonBody(t, validRegistration())))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	var captured usecase.UpdateProfileInput
	handler := NewUserHandler(&userServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
			captured = input
			return &domain.User{ID: input.ID, Address: *input.Address}, nil
		},
	})

	req := withURLParams(
		httptest.NewRequest(http.MethodPut, "/users/user-1", strings.NewReader(`{"address":"1 Main St"}`)),
		"id", "user-1",
	)
	rec := httptest.NewRecorder()
	handler.UpdateProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ID != "user-1" || captured.Email != nil || captured.Address == nil {
		t.Fatalf("unexpected input %+v", captured)
	}
}

func TestUserHandler_GetNotFound(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "ghost"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
