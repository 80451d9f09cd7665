package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(100);not null"`
	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_holidays_date"`
	// IsOptional marks floating holidays employees may choose to work.
	// Optional holidays still count as working days.
	IsOptional bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (Holiday) TableName() string { return "holidays" }
