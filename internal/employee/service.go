package employee

import (
	"context"
	"log/slog"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/core/events"
)

// Repository defines the data access methods for employees. FindByID
// returns internal.ErrEmployeeNotFound on a miss.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Query(ctx context.Context, criteria map[string]interface{}) ([]*Employee, error)
}

// Publisher is the slice of the event bus the service needs.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   Repository
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Create persists a new employee and publishes an employee-created event.
// The event triggers the welcome email; publishing is fire-and-forget and a
// failure never rolls back the creation.
func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e := &Employee{
		Name:       dto.Name,
		Email:      dto.Email,
		JobTitle:   dto.JobTitle,
		Department: dto.Department,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	if err := s.bus.Publish(ctx, events.NewEmployeeCreatedEvent(e.ID, e.Name, e.Email)); err != nil {
		s.logger.Error("failed to publish employee created event",
			"employee_id", e.ID, "error", err)
	}

	s.logger.Info("employee created", "employee_id", e.ID, "email", e.Email)
	return e, nil
}

func (s *Service) FindAll(ctx context.Context) ([]*Employee, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id string) (*Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies only the fields provided in the DTO, then re-reads and
// returns the persisted record.
func (s *Service) Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Email != nil {
		fields["email"] = *dto.Email
	}
	if dto.JobTitle != nil {
		fields["job_title"] = *dto.JobTitle
	}
	if dto.Department != nil {
		fields["department"] = *dto.Department
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, internal.NewInternalError("failed to update employee", err)
		}
	}

	return s.repo.FindByID(ctx, id)
}

// Delete removes the record. At the storage layer deleting a missing id is
// a silent no-op; resolvers pre-check existence and fail first.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete employee", err)
	}
	s.logger.Info("employee deleted", "employee_id", id)
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

// Query returns employees matching an equality filter. Resolvers use it for
// the email-uniqueness pre-check at create time.
func (s *Service) Query(ctx context.Context, criteria map[string]interface{}) ([]*Employee, error) {
	return s.repo.Query(ctx, criteria)
}
