package events

import "time"

const (
	LeaveReviewedTopic = "leave.review.v1"
	LeaveReviewedType  = "leave_reviewed"
)

// LeaveReviewedEvent is emitted once per leave, when a manager approves or
// rejects it.
type LeaveReviewedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	CompanyID    string    `json:"company_id"`
	MembershipID string    `json:"membership_id"`
	LeaveType    string    `json:"leave_type"`
	Status       string    `json:"status"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	TotalDays    string    `json:"total_days"`
	ReviewedBy   string    `json:"reviewed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
