package user

import (
	"context"
	"log/slog"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/auth"
)

// Repository defines the data access methods for users. Lookups by id or
// username return internal.ErrUserNotFound on a miss.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context) ([]*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Query(ctx context.Context, criteria map[string]interface{}) ([]*User, error)
}

type Service struct {
	repo   Repository
	hasher *auth.Hasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher *auth.Hasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Create hashes the incoming password and persists a new user. Username
// uniqueness is pre-checked by the resolver, not here.
func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         auth.Role(dto.Role),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *Service) FindAll(ctx context.Context) ([]*User, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// Update applies only the fields provided in the DTO, then re-reads and
// returns the persisted record.
func (s *Service) Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if dto.Username != nil {
		fields["username"] = *dto.Username
	}
	if dto.Email != nil {
		fields["email"] = *dto.Email
	}
	if dto.Role != nil {
		fields["role"] = *dto.Role
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, internal.NewInternalError("failed to update user", err)
		}
	}

	return s.repo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Query returns users matching an equality filter, e.g. {"email": ...}.
func (s *Service) Query(ctx context.Context, criteria map[string]interface{}) ([]*User, error) {
	return s.repo.Query(ctx, criteria)
}
