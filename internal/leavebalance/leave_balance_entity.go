package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is the running total for one (membership, leave type). It is
// only ever written by the Ledger.
type LeaveBalance struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MembershipID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_membership_type"`
	LeaveType     string          `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_balances_membership_type"`
	RemainingDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// LeaveBalanceHistory is append-only.
type LeaveBalanceHistory struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveBalanceID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	MembershipID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeaveType       string          `gorm:"type:varchar(20);not null"`
	Change          decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	PreviousBalance decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	NewBalance      decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	Reason          string          `gorm:"type:text;not null"`
	HistoryType     string          `gorm:"type:varchar(30);not null"`
	ActorID         uuid.UUID       `gorm:"type:uuid;not null"`
	LeaveID         *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt       time.Time
}

func (LeaveBalanceHistory) TableName() string {
	return "leave_balance_histories"
}
