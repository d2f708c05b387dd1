package leave

import (
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavebalance"

	"github.com/shopspring/decimal"
)

const (
	dateLayout   = "2006-01-02"
	maxLeaveDays = 365
)

var halfDay = decimal.NewFromFloat(0.5)

// LeaveInput is the raw shape shared by create and update once a patch has
// been merged onto the stored leave.
type LeaveInput struct {
	Type          string
	StartDate     string
	EndDate       string
	HalfDayPeriod string
	Reason        string
}

// ValidLeave is a LeaveInput that passed ValidateLeaveInput.
type ValidLeave struct {
	Type          string
	StartDate     time.Time
	EndDate       time.Time
	HalfDayPeriod *string
	Reason        string
	TotalDays     decimal.Decimal
}

func ValidateLeaveInput(in LeaveInput) (ValidLeave, error) {
	if !leavebalance.IsValidLeaveType(in.Type) {
		return ValidLeave{}, leaveerrors.ErrInvalidLeaveType
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return ValidLeave{}, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return ValidLeave{}, err
	}
	if start.After(end) {
		return ValidLeave{}, leaveerrors.ErrInvalidDateRange
	}

	var period *string
	if in.HalfDayPeriod != "" {
		if in.HalfDayPeriod != HalfDayMorning && in.HalfDayPeriod != HalfDayAfternoon {
			return ValidLeave{}, leaveerrors.ErrInvalidHalfDayPeriod
		}
		if !start.Equal(end) {
			return ValidLeave{}, leaveerrors.ErrHalfDaySpansDays
		}
		p := in.HalfDayPeriod
		period = &p
	}

	days := DayCount(start, end, period != nil)
	if days.GreaterThan(decimal.NewFromInt(maxLeaveDays)) {
		return ValidLeave{}, leaveerrors.ErrLeaveTooLong
	}

	return ValidLeave{
		Type:          in.Type,
		StartDate:     start,
		EndDate:       end,
		HalfDayPeriod: period,
		Reason:        strings.TrimSpace(in.Reason),
		TotalDays:     days,
	}, nil
}

// DayCount counts calendar days, both ends included.
func DayCount(start, end time.Time, halfDayPeriod bool) decimal.Decimal {
	if halfDayPeriod {
		return halfDay
	}
	days := int64(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
