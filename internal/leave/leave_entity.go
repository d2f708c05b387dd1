package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	HalfDayMorning   = "MORNING"
	HalfDayAfternoon = "AFTERNOON"
)

type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	MembershipID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_membership_dates"`

	Type          string          `gorm:"column:type;type:varchar(20);not null"`
	StartDate     time.Time       `gorm:"type:date;not null;index:idx_leaves_membership_dates"`
	EndDate       time.Time       `gorm:"type:date;not null;index:idx_leaves_membership_dates"`
	HalfDayPeriod *string         `gorm:"type:varchar(10)"`
	TotalDays     decimal.Decimal `gorm:"type:numeric(5,1);not null"`
	Reason        string          `gorm:"type:text"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_company_status"`
	ManagerID   *uuid.UUID `gorm:"type:uuid"`
	ManagerNote *string    `gorm:"type:text"`
	ReviewedAt  *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

// OverlapConstraint forbids two non-rejected leaves of one membership from
// sharing a day.
const OverlapConstraint = "ex_leaves_membership_period"

func (Leave) TableName() string {
	return "leaves"
}
