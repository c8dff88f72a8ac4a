package employee

import (
	errors "github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
}

func (d CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email()
	v.Field("jobTitle", d.JobTitle).Required().MaxLength(200)
	v.Field("department", d.Department).Required().MaxLength(200)
	return v.Validate()
}

// UpdateEmployeeDTO carries a partial update: nil fields are left untouched.
type UpdateEmployeeDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	JobTitle   *string `json:"jobTitle,omitempty"`
	Department *string `json:"department,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	if d.JobTitle != nil {
		v.Field("jobTitle", *d.JobTitle).Required().MaxLength(200)
	}
	if d.Department != nil {
		v.Field("department", *d.Department).Required().MaxLength(200)
	}
	return v.Validate()
}
