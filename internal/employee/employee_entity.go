package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive       = "active"
	StatusNoticePeriod = "notice_period"
	StatusExited       = "exited"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	EmployeeCode string    `gorm:"type:varchar(20);not null;uniqueIndex"`

	FirstName string `gorm:"type:varchar(50);not null"`
	LastName  string `gorm:"type:varchar(50);not null"`
	Email     string `gorm:"type:varchar(100);not null;uniqueIndex"`

	DepartmentID  uuid.UUID `gorm:"type:uuid;not null"`
	DesignationID uuid.UUID `gorm:"type:uuid;not null"`
	// ReportingManagerID is nil for the organisation's root.
	ReportingManagerID *uuid.UUID `gorm:"type:uuid;index"`

	Status        string    `gorm:"type:varchar(20);not null;default:'active';index"`
	DateOfJoining time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string { return "employees" }

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
