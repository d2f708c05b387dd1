package leavebalance

import "github.com/shopspring/decimal"

type UpdateBalanceRequest struct {
	Type   string          `json:"type" binding:"required"`
	Change decimal.Decimal `json:"change"`
	Reason string          `json:"reason" binding:"required"`
}

type AllocateAnnualLeaveRequest struct {
	Year int `json:"year" binding:"required,min=2000,max=2100"`
}

type BalanceResponse struct {
	ID           string  `json:"id"`
	MembershipID string  `json:"membershipId"`
	LeaveType    string  `json:"leaveType"`
	Balance      float64 `json:"balance"`
	Used         float64 `json:"used"`
	Remaining    float64 `json:"remaining"`
	Year         int     `json:"year"`
}

type HistoryResponse struct {
	ID              string  `json:"id"`
	MembershipID    string  `json:"membershipId"`
	LeaveType       string  `json:"leaveType"`
	PreviousBalance float64 `json:"previousBalance"`
	NewBalance      float64 `json:"newBalance"`
	ChangeAmount    float64 `json:"changeAmount"`
	Reason          string  `json:"reason"`
	HistoryType     string  `json:"historyType"`
	LeaveID         *string `json:"leaveId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	CreatedBy       string  `json:"createdBy"`
}

type AllocationResponse struct {
	Year          int     `json:"year"`
	LeaveType     string  `json:"leaveType"`
	DaysPerMember float64 `json:"daysPerMember"`
	Memberships   int     `json:"memberships"`
}
