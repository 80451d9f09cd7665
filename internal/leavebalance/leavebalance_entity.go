package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one row per (employee, leave type, year). used_days covers
// both approved leave and days reserved by pending requests; the approval
// workflow is the only writer.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_key"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_key"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:idx_balance_key"`
	TotalDays   int       `gorm:"type:int;not null;default:0"`
	UsedDays    int       `gorm:"type:int;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LeaveBalance) TableName() string { return "leave_balances" }

func (b *LeaveBalance) Remaining() int {
	return b.TotalDays - b.UsedDays
}
