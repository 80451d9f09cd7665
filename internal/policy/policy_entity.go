package policy

import (
	"time"

	"github.com/google/uuid"
)

type Policy struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string    `gorm:"type:varchar(200);not null"`
	Content       string    `gorm:"type:text;not null"`
	Version       int       `gorm:"type:int;not null;default:1"`
	IsActive      bool      `gorm:"not null;default:true;index"`
	EffectiveDate time.Time `gorm:"type:date;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Policy) TableName() string { return "policies" }

// PolicyAcknowledgement records that an employee has read a policy version.
// One row per employee and policy.
type PolicyAcknowledgement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PolicyID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_policy_ack"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_policy_ack"`
	AcknowledgedAt time.Time `gorm:"not null"`
}

func (PolicyAcknowledgement) TableName() string { return "policy_acknowledgements" }
