package leave

type CreateLeaveRequest struct {
	Type          string `json:"type" binding:"required,oneof=PAID SICK RTT UNPAID MARRIAGE PATERNITY MATERNITY"`
	StartDate     string `json:"startDate" binding:"required"`
	EndDate       string `json:"endDate" binding:"required"`
	HalfDayPeriod string `json:"halfDayPeriod" binding:"omitempty,oneof=MORNING AFTERNOON"`
	Reason        string `json:"reason" binding:"max=1000"`
}

// UpdateLeaveRequest is a partial update. An empty halfDayPeriod clears it.
type UpdateLeaveRequest struct {
	Type          *string `json:"type" binding:"omitempty,oneof=PAID SICK RTT UNPAID MARRIAGE PATERNITY MATERNITY"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	HalfDayPeriod *string `json:"halfDayPeriod" binding:"omitempty,oneof=MORNING AFTERNOON ''"`
	Reason        *string `json:"reason" binding:"omitempty,max=1000"`
}

type ReviewLeaveRequest struct {
	Status      string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	ManagerNote *string `json:"managerNote" binding:"omitempty,max=1000"`
}

type CompanyLeavesFilter struct {
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"companyId"`
	MembershipID  string  `json:"membershipId"`
	Type          string  `json:"type"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	HalfDayPeriod *string `json:"halfDayPeriod,omitempty"`
	Days          float64 `json:"days"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
	ManagerID     *string `json:"managerId,omitempty"`
	ManagerNote   *string `json:"managerNote,omitempty"`
	ReviewedAt    *string `json:"reviewedAt,omitempty"`
	CreatedBy     string  `json:"createdBy"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}
