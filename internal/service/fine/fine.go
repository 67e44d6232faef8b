package fine

import (
	"math"
	"time"
)

// DailyRate is the fine accrued per day overdue, in currency units.
const DailyRate = 5

type Amount struct {
	DaysOverdue int `json:"daysOverdue"`
	Total       int `json:"total"`
}

// Calc derives the fine for a loan due at due, observed at reference.
// The reference is the return date for settled loans and "now" for live
// queries; the same rule serves both. Any started day counts in full.
func Calc(due, reference time.Time) Amount {
	if !reference.After(due) {
		return Amount{}
	}
	days := int(math.Ceil(reference.Sub(due).Hours() / 24))
	return Amount{
		DaysOverdue: days,
		Total:       days * DailyRate,
	}
}
