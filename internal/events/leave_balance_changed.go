package events

import "time"

const (
	LeaveBalanceChangedTopic = "leave.balance.changed.v1"
	LeaveBalanceChangedType  = "leave_balance_changed"
)

type LeaveBalanceChangedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	CompanyID    string    `json:"company_id"`
	MembershipID string    `json:"membership_id"`
	LeaveType    string    `json:"leave_type"`
	HistoryType  string    `json:"history_type"`
	Change       string    `json:"change"`
	NewBalance   string    `json:"new_balance"`
	ActorID      string    `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
