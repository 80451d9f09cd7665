package designation

import (
	"time"

	"github.com/google/uuid"
)

type Designation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Level     int       `gorm:"type:int;not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Designation) TableName() string { return "designations" }
