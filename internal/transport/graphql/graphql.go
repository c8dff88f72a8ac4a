// Package graphql exposes the HR API as a single GraphQL endpoint. The
// schema is defined in code, every field declares its own role allow-list
// and resolvers delegate to the domain services.
package graphql

import (
	"context"
	"log/slog"

	"github.com/peopleops/hr-management/internal/auth"
	"github.com/peopleops/hr-management/internal/employee"
	"github.com/peopleops/hr-management/internal/user"
)

// AuthService is the slice of the auth layer the resolvers need.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.Payload, error)
}

// UserService covers the user operations reachable from the schema.
type UserService interface {
	Create(ctx context.Context, dto user.CreateUserDTO) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Update(ctx context.Context, id string, dto user.UpdateUserDTO) (*user.User, error)
	Delete(ctx context.Context, id string) error
}

// EmployeeService covers the employee operations reachable from the schema.
type EmployeeService interface {
	Create(ctx context.Context, dto employee.CreateEmployeeDTO) (*employee.Employee, error)
	FindAll(ctx context.Context) ([]*employee.Employee, error)
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	Update(ctx context.Context, id string, dto employee.UpdateEmployeeDTO) (*employee.Employee, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, criteria map[string]interface{}) ([]*employee.Employee, error)
}

// Resolvers holds the dependencies shared by all schema fields.
type Resolvers struct {
	auth      AuthService
	users     UserService
	employees EmployeeService
	guard     *auth.Guard
	logger    *slog.Logger
}

func NewResolvers(authSvc AuthService, users UserService, employees EmployeeService, guard *auth.Guard, logger *slog.Logger) *Resolvers {
	return &Resolvers{
		auth:      authSvc,
		users:     users,
		employees: employees,
		guard:     guard,
		logger:    logger,
	}
}

// authPayloadView mirrors auth.Payload with a plain int role so the Int
// scalar coercion accepts it.
type authPayloadView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         int    `json:"role"`
}

func viewAuthPayload(p *auth.Payload) *authPayloadView {
	return &authPayloadView{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		Username:     p.Username,
		Email:        p.Email,
		Role:         int(p.Role),
	}
}
