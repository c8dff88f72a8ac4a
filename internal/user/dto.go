package user

import (
	errors "github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/auth"
	"github.com/peopleops/hr-management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8)
	v.Field("role", d.Role).IntIn(auth.RoleValues()...)
	return v.Validate()
}

// UpdateUserDTO carries a partial update: nil fields are left untouched.
type UpdateUserDTO struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *int    `json:"role,omitempty"`
}

func (d UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Username != nil {
		v.Field("username", *d.Username).Required().MaxLength(100)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	if d.Role != nil {
		v.Field("role", *d.Role).IntIn(auth.RoleValues()...)
	}
	return v.Validate()
}
