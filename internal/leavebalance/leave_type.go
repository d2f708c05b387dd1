package leavebalance

const (
	TypePaid      = "PAID"
	TypeSick      = "SICK"
	TypeRTT       = "RTT"
	TypeUnpaid    = "UNPAID"
	TypeMarriage  = "MARRIAGE"
	TypePaternity = "PATERNITY"
	TypeMaternity = "MATERNITY"
)

// LeaveTypes lists every leave type in display order.
var LeaveTypes = []string{
	TypePaid,
	TypeSick,
	TypeRTT,
	TypeUnpaid,
	TypeMarriage,
	TypePaternity,
	TypeMaternity,
}

func IsValidLeaveType(t string) bool {
	for _, known := range LeaveTypes {
		if t == known {
			return true
		}
	}
	return false
}

const (
	HistoryManualCredit     = "MANUAL_CREDIT"
	HistoryManualDebit      = "MANUAL_DEBIT"
	HistoryLeaveTaken       = "LEAVE_TAKEN"
	HistoryAnnualAllocation = "ANNUAL_ALLOCATION"
)

func isValidHistoryType(t string) bool {
	switch t {
	case HistoryManualCredit, HistoryManualDebit, HistoryLeaveTaken, HistoryAnnualAllocation:
		return true
	default:
		return false
	}
}
