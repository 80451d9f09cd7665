package payroll

import (
	"time"

	"github.com/google/uuid"
)

// Payslip amounts are stored in minor currency units (paise/cents) so sums
// and comparisons stay exact.
type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payslip_period"`
	Month      int       `gorm:"type:int;not null;uniqueIndex:idx_payslip_period"`
	Year       int       `gorm:"type:int;not null;uniqueIndex:idx_payslip_period"`

	BasicPay   int64 `gorm:"type:bigint;not null"`
	Allowances int64 `gorm:"type:bigint;not null;default:0"`
	Deductions int64 `gorm:"type:bigint;not null;default:0"`
	NetPay     int64 `gorm:"type:bigint;not null"`

	// IsLocked freezes the row once the payroll run is finalised.
	IsLocked bool `gorm:"not null;default:false"`

	GeneratedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Payslip) TableName() string { return "payslips" }

func computeNetPay(basic, allowances, deductions int64) int64 {
	return basic + allowances - deductions
}
