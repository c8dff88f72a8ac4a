package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/peopleops/hr-management/internal"
	employeeDatamodel "github.com/peopleops/hr-management/internal/core/datamodel/employee"
	"github.com/peopleops/hr-management/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	model := employee.ToDataModel(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*e = *employee.FromDataModel(model)
	return nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	var models []*employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&model), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&employeeDatamodel.Employee{}).Error
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) Query(ctx context.Context, criteria map[string]interface{}) ([]*employee.Employee, error) {
	var models []*employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Where(criteria).Find(&models).Error; err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

func fromModels(models []*employeeDatamodel.Employee) []*employee.Employee {
	out := make([]*employee.Employee, len(models))
	for i, m := range models {
		out[i] = employee.FromDataModel(m)
	}
	return out
}
