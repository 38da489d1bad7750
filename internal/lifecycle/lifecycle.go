// Package lifecycle holds the pure service-record derivations: the
// retest-date rule and the status classification. Both are recomputed on
// every use; neither is ever persisted.
package lifecycle

import "time"

type Status string

const (
	StatusValid   Status = "valid"
	StatusDueSoon Status = "due_soon"
	StatusExpired Status = "expired"
	StatusInvalid Status = "invalid"
)

// RetestInterval is exactly 364 days, not one calendar year. Certificates
// are reissued on the same weekday a year on.
const RetestInterval = 364

// DueSoonWindow is how far ahead of the retest date a record starts
// reporting due_soon.
const DueSoonWindow = 30 * 24 * time.Hour

// RetestDate returns serviceDate + 364 days.
func RetestDate(serviceDate time.Time) time.Time {
	return serviceDate.AddDate(0, 0, RetestInterval)
}

// Classify derives the status of a record from its retest date.
// The lower bound is inclusive: a retest date equal to now is due_soon,
// not expired. The upper bound is exclusive: exactly 30 days out is
// valid.
func Classify(retestDate *time.Time, now time.Time) Status {
	if retestDate == nil || retestDate.IsZero() {
		return StatusInvalid
	}
	if retestDate.Before(now) {
		return StatusExpired
	}
	if retestDate.Sub(now) < DueSoonWindow {
		return StatusDueSoon
	}
	return StatusValid
}
