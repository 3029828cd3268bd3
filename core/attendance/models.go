package attendance

import (
	"time"

	"github.com/edupoint/portal/core"
)

// Status of a single attendance record.
type Status string

const (
	StatusPresent Status = "P"
	StatusAbsent  Status = "A"
)

func (s Status) Valid() bool { return s == StatusPresent || s == StatusAbsent }

// Record marks one student present or absent for one subject on one calendar
// day. The (studentId, subject, date) triple is unique; re-recording the same
// triple overwrites the status.
type Record struct {
	StudentID string       `json:"studentId"`
	Subject   core.Subject `json:"subject"`
	Date      string       `json:"date"` // YYYY-MM-DD
	Status    Status       `json:"status"`
}

// Summary is the per-subject attendance rollup.
type Summary struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Percent float64 `json:"percent"`
}

// Challenge is an active online-attendance code. There is at most one per
// service; it is never persisted.
type Challenge struct {
	Code      string       `json:"code"`
	Subject   core.Subject `json:"subject"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Remaining returns the time left before expiry, clamped at zero.
func (c Challenge) Remaining(now time.Time) time.Duration {
	left := c.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// SubmissionResult is the outcome of a student submitting an attendance code.
type SubmissionResult int

const (
	SubmissionNoChallenge SubmissionResult = iota
	SubmissionExpired
	SubmissionWrongCode
	SubmissionAccepted
)

func (r SubmissionResult) String() string {
	switch r {
	case SubmissionAccepted:
		return "accepted"
	case SubmissionWrongCode:
		return "wrong code"
	case SubmissionExpired:
		return "code expired"
	case SubmissionNoChallenge:
		return "no active code"
	}
	return "unknown"
}
