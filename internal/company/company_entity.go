package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(150);not null"`
	Logo            *string   `gorm:"type:text"`
	AnnualLeaveDays int       `gorm:"not null;default:25"`
	CreatedAt       time.Time `gorm:"not null;default:now()"`
	UpdatedAt       time.Time `gorm:"not null;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
