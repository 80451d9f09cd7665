package exitreq

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusInitiated       = "initiated"
	StatusManagerApproved = "manager_approved"
	StatusHRApproved      = "hr_approved"
	StatusCompleted       = "completed"
	StatusCancelled       = "cancelled"
)

// ExitRequest tracks an employee's offboarding through the two approval
// stages and the final clearance. Rows are kept after completion for audit.
type ExitRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	Reason         string    `gorm:"type:text;not null"`
	LastWorkingDay time.Time `gorm:"type:date;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'initiated';index"`

	ManagerApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ManagerApprovedAt *time.Time
	HRApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	HRApprovedAt      *time.Time

	// Clearance checklist; all three gate completion.
	AssetReturned        bool `gorm:"not null;default:false"`
	KnowledgeTransferred bool `gorm:"not null;default:false"`
	FinalSettlementDone  bool `gorm:"not null;default:false"`

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ExitRequest) TableName() string { return "exit_requests" }

func (e ExitRequest) ChecklistComplete() bool {
	return e.AssetReturned && e.KnowledgeTransferred && e.FinalSettlementDone
}

func canTransition(from, to string) bool {
	switch from {
	case StatusInitiated:
		return to == StatusManagerApproved || to == StatusCancelled
	case StatusManagerApproved:
		return to == StatusHRApproved || to == StatusCancelled
	case StatusHRApproved:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}
