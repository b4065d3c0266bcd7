package domain

import (
	"errors"
	"time"
)

// FreeSessionsPerMonth is the number of practice sessions a free user may
// start per calendar month (UTC).
const FreeSessionsPerMonth = 3

// ErrQuotaExceeded is returned when a free user has used the month's sessions.
var ErrQuotaExceeded = errors.New("monthly practice session limit reached")

type Subscription struct {
	Tier      Tier
	UpdatedAt time.Time
}

// MonthlyLimit returns the session allowance for the tier, or -1 when
// unlimited.
func (t Tier) MonthlyLimit() int {
	if t == TierPremium {
		return -1
	}
	return FreeSessionsPerMonth
}

// Usage summarises quota consumption for the current month.
type Usage struct {
	Tier       Tier
	Used       int
	Limit      int // -1 for unlimited
	MonthStart time.Time
}

// Remaining returns sessions left this month, or -1 when unlimited.
func (u Usage) Remaining() int {
	if u.Limit < 0 {
		return -1
	}
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

// CanStart reports whether another session may begin this month.
func (u Usage) CanStart() bool {
	return u.Limit < 0 || u.Used < u.Limit
}

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
