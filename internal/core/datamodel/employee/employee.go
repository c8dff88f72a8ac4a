package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Email carries no unique index: duplicate checks are an application-level
// pre-check at create time, not a storage constraint.
type Employee struct {
	ID         string    `gorm:"primaryKey;column:id"`
	Name       string    `gorm:"column:name;not null"`
	Email      string    `gorm:"column:email;not null"`
	JobTitle   string    `gorm:"column:job_title;not null"`
	Department string    `gorm:"column:department;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
