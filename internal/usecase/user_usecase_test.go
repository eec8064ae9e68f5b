package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

func validRegistration() usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Username:    "alice",
		Password:    "Secret123",
		FullName:    "Alice Doe",
		Email:       "Alice@Example.com",
		PhoneNumber: "+15550100",
		Address:     "1 Main St",
	}
}

func TestUserUseCase_RegisterUser(t *testing.T) {
	b := newBank(t)

	user, err := b.userUC.RegisterUser(context.Background(), validRegistration())
	require.NoError(t, err)

	require.Equal(t, domain.RoleCustomer, user.Role)
	require.True(t, user.Enabled)
	require.Equal(t, "alice@example.com", user.Email)
	require.Empty(t, user.HashedPassword, "hash must not leak to callers")

	stored, err := b.users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("Secret123")))

	require.Len(t, b.outbox.Events(domain.EventTypeUserRegistered), 1)
}

func TestUserUseCase_RegisterUserLosesUniqueRace(t *testing.T) {
	b := newBank(t)

	// Another registration committed between the existence check and the insert.
	b.users.CreateFunc = func(context.Context, usecase.Tx, *domain.User) error {
		return domain.ErrEmailTaken
	}

	_, err := b.userUC.RegisterUser(context.Background(), validRegistration())
	require.ErrorIs(t, err, domain.ErrEmailTaken)
	require.Equal(t, 0, b.txManager.Committed())
	require.Empty(t, b.outbox.Events(domain.EventTypeUserRegistered))
}

func TestUserUseCase_RegisterUserRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecase.RegisterUserInput)
		want   error
	}{
		{"weak password", func(in *usecase.RegisterUserInput) { in.Password = "password" }, domain.ErrPasswordTooWeak},
		{"bad email", func(in *usecase.RegisterUserInput) { in.Email = "not-an-email" }, domain.ErrInvalidEmail},
		{"bad username", func(in *usecase.RegisterUserInput) { in.Username = "a b" }, domain.ErrInvalidUsername},
		{"empty name", func(in *usecase.RegisterUserInput) { in.FullName = "  " }, domain.ErrInvalidFullName},
		{"username taken", func(in *usecase.RegisterUserInput) { in.Email = "other@example.com" }, domain.ErrUsernameTaken},
		{"email taken", func(in *usecase.RegisterUserInput) { in.Username = "bob" }, domain.ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBank(t)
			_, err := b.userUC.RegisterUser(context.Background(), validRegistration())
			require.NoError(t, err)

			input := validRegistration()
			tt.mutate(&input)

			_, err = b.userUC.RegisterUser(context.Background(), input)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	b := newBank(t)
	user, err := b.userUC.RegisterUser(context.Background(), validRegistration())
	require.NoError(t, err)

	name := "Alice Smith"
	email := "ALICE.SMITH@example.com"
	updated, err := b.userUC.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		ID:       user.ID,
		FullName: &name,
		Email:    &email,
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", updated.FullName)
	require.Equal(t, "alice.smith@example.com", updated.Email)
	require.Equal(t, "+15550100", updated.PhoneNumber, "nil fields are untouched")
	require.Empty(t, updated.HashedPassword)

	logs := b.audit.Logs()
	require.Len(t, logs, 1)
	require.Equal(t, string(domain.AuditActionUserUpdate), logs[0].Action)
	require.Equal(t, "", logs[0].AfterState["HashedPassword"])
}

func TestUserUseCase_UpdateProfileEmailTaken(t *testing.T) {
	b := newBank(t)
	alice, err := b.userUC.RegisterUser(context.Background(), validRegistration())
	require.NoError(t, err)

	other := validRegistration()
	other.Username = "bob"
	other.Email = "bob@example.com"
	_, err = b.userUC.RegisterUser(context.Background(), other)
	require.NoError(t, err)

	email := "bob@example.com"
	_, err = b.userUC.UpdateProfile(context.Background(), usecase.UpdateProfileInput{ID: alice.ID, Email: &email})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserUseCase_ListCustomers(t *testing.T) {
	b := newBank(t)
	_, err := b.userUC.RegisterUser(context.Background(), validRegistration())
	require.NoError(t, err)

	b.users.Put(&domain.User{ID: "admin", Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin})

	customers, err := b.userUC.ListCustomers(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.Empty(t, customers[0].HashedPassword)

	count, err := b.userUC.CountCustomers(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
