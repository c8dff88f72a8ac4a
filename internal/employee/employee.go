package employee

import (
	"time"

	employeeDatamodel "github.com/peopleops/hr-management/internal/core/datamodel/employee"
)

type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	JobTitle   string    `json:"jobTitle"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created"`
	UpdatedAt  time.Time `json:"updated"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		JobTitle:   e.JobTitle,
		Department: e.Department,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		JobTitle:   m.JobTitle,
		Department: m.Department,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
