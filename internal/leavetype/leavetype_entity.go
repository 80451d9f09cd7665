package leavetype

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType is reference data created by administrators. Rows are treated as
// immutable once requests reference them; only new types are added.
type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	DefaultDays int       `gorm:"type:int;not null;default:0"`
	IsPaid      bool      `gorm:"not null;default:true"`
	// WorkdaysOnly makes requested spans count working days only (weekends
	// and holidays excluded).
	WorkdaysOnly bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (LeaveType) TableName() string { return "leave_types" }
