package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

// UserUseCase handles customer registration and profiles.
type UserUseCase struct {
	txManager  TxManager
	userRepo   UserRepository
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	idGen      IDGenerator
	hashCost   int
	metrics    *metrics.Metrics
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(
	txManager TxManager,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *UserUseCase {
	return &UserUseCase{
		txManager:  txManager,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		idGen:      idGen,
		hashCost:   bcrypt.DefaultCost,
		metrics:    m,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (uc *UserUseCase) WithHashCost(cost int) *UserUseCase {
	uc.hashCost = cost
	return uc
}

// RegisterUserInput represents input for registering a customer
type RegisterUserInput struct {
	Username    string
	Password    string
	FullName    string
	Email       string
	PhoneNumber string
	Address     string
}

// RegisterUser creates an enabled CUSTOMER with a bcrypt-hashed password
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidateFullName(input.FullName); err != nil {
		return nil, err
	}

	taken, err := uc.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := uc.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       input.Username,
		HashedPassword: hashedPassword,
		FullName:       strings.TrimSpace(input.FullName),
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		Address:        input.Address,
		Role:           domain.RoleCustomer,
		Enabled:        true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = runInTx(ctx, uc.txManager, nil, func(ctx context.Context, tx Tx) error {
		if err := uc.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   user.ID,
			AggregateType: domain.AggregateTypeUser,
			EventType:     domain.EventTypeUserRegistered,
			Payload: domain.MarshalState(domain.UserRegisteredEvent{
				UserID:   user.ID,
				Username: user.Username,
				Email:    user.Email,
			}),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.UsersRegistered.Inc()
	}

	// Don't return hashed password
	user.HashedPassword = ""
	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// GetUserByUsername retrieves a user by login name
func (uc *UserUseCase) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// UpdateProfileInput represents a profile change. Nil fields are left alone.
type UpdateProfileInput struct {
	ID          string
	FullName    *string
	Email       *string
	PhoneNumber *string
	Address     *string
}

// UpdateProfile updates contact details of a user
func (uc *UserUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	before := *user
	before.HashedPassword = ""

	if input.FullName != nil {
		if err := domain.ValidateFullName(*input.FullName); err != nil {
			return nil, err
		}
		user.FullName = strings.TrimSpace(*input.FullName)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := domain.ValidateEmail(email); err != nil {
			return nil, err
		}

		if email != user.Email {
			taken, err := uc.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrEmailTaken
			}
		}
		user.Email = email
	}

	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	if input.Address != nil {
		user.Address = *input.Address
	}

	user.UpdatedAt = time.Now().UTC()

	err = runInTx(ctx, uc.txManager, nil, func(ctx context.Context, tx Tx) error {
		if err := uc.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}

		after := *user
		after.HashedPassword = ""

		return recordAudit(ctx, tx, uc.auditRepo, uc.idGen, uc.metrics, auditEntry{
			action:       domain.AuditActionUserUpdate,
			resourceType: domain.AggregateTypeUser,
			resourceID:   user.ID,
			before:       before,
			after:        after,
		})
	})
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// ListCustomers lists users with the CUSTOMER role
func (uc *UserUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	users, err := uc.userRepo.ListByRole(ctx, domain.RoleCustomer, limit, offset)
	if err != nil {
		return nil, err
	}

	// Remove hashed passwords
	for _, user := range users {
		user.HashedPassword = ""
	}

	return users, nil
}

// CountCustomers returns the number of customers
func (uc *UserUseCase) CountCustomers(ctx context.Context) (int64, error) {
	return uc.userRepo.CountByRole(ctx, domain.RoleCustomer)
}

func (uc *UserUseCase) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
