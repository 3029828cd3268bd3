package attendance

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/edupoint/portal/core"
)

var (
	// errors
	ErrNotFound       = errors.New("attendance record not found")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrInvalidStatus  = errors.New("invalid attendance status")

	nowFunc = time.Now // mockable

	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type (
	Repository interface {
		// UpsertAttendance is keyed by (studentId, subject, date); last write
		// wins for a given key.
		UpsertAttendance(rec Record) error
		QueryAttendance(studentID string, subject core.Subject) ([]Record, error)
		GetAttendance(studentID string, subject core.Subject, date string) (Record, error)
	}

	Service struct {
		repo Repository
		conf *core.Config

		mu        sync.Mutex
		challenge *Challenge
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, conf: conf}
}

// Today returns the current calendar day key.
func (svc *Service) Today() string {
	return nowFunc().Format("2006-01-02")
}

// Record upserts one attendance record.
func (svc *Service) Record(studentID string, subject core.Subject, date string, status Status) error {
	if !subject.Valid() {
		return ErrUnknownSubject
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return svc.repo.UpsertAttendance(Record{
		StudentID: studentID,
		Subject:   subject,
		Date:      date,
		Status:    status,
	})
}

// RecordToday upserts an attendance record for the current day.
func (svc *Service) RecordToday(studentID string, subject core.Subject, status Status) error {
	return svc.Record(studentID, subject, svc.Today(), status)
}

// SubjectSummary rolls up one student's records for one subject.
// Percent is 0 when no records exist.
func (svc *Service) SubjectSummary(studentID string, subject core.Subject) (Summary, error) {
	if !subject.Valid() {
		return Summary{}, ErrUnknownSubject
	}
	recs, err := svc.repo.QueryAttendance(studentID, subject)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Total: len(recs)}
	for _, rec := range recs {
		if rec.Status == StatusPresent {
			sum.Present++
		}
	}
	if sum.Total > 0 {
		sum.Percent = float64(sum.Present) * 100 / float64(sum.Total)
	}
	return sum, nil
}

// OverallPercent averages the per-subject percentages across only the
// subjects that have at least one record. nil means "no data", which callers
// must keep distinct from 0%.
func (svc *Service) OverallPercent(studentID string) (*float64, error) {
	var sum float64
	var count int
	for _, subj := range core.Subjects {
		s, err := svc.SubjectSummary(studentID, subj)
		if err != nil {
			return nil, err
		}
		if s.Total > 0 {
			sum += s.Percent
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	pct := sum / float64(count)
	return &pct, nil
}

// IsLow reports whether an overall percentage is below the configured
// threshold. Only meaningful for non-nil percentages.
func (svc *Service) IsLow(percent float64) bool {
	return percent < svc.conf.LowAttendancePct
}

// TodayStatus returns the student's recorded status for a subject today;
// ok is false when nothing has been recorded yet.
func (svc *Service) TodayStatus(studentID string, subject core.Subject) (Status, bool, error) {
	rec, err := svc.repo.GetAttendance(studentID, subject, svc.Today())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.Status, true, nil
}

// IssueCode activates a new online-attendance challenge for a subject,
// unconditionally replacing any prior one. The code is one uppercase letter
// followed by five digits from a uniform (non-cryptographic) source.
func (svc *Service) IssueCode(subject core.Subject) (Challenge, error) {
	if !subject.Valid() {
		return Challenge{}, ErrUnknownSubject
	}
	ch := Challenge{
		Code:      generateCode(),
		Subject:   subject,
		ExpiresAt: nowFunc().Add(svc.conf.CodeTTL),
	}
	svc.mu.Lock()
	svc.challenge = &ch
	svc.mu.Unlock()
	return ch, nil
}

// Current returns the active challenge for display, lazily discarding an
// expired one. ok is false when the state is idle.
func (svc *Service) Current() (Challenge, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	ch := svc.activeLocked()
	if ch == nil {
		return Challenge{}, false
	}
	return *ch, true
}

// Submit validates a student's code submission against the active challenge.
// An accepted submission records the student present for the challenge's
// subject today; the challenge itself stays active until expiry or
// replacement, so other students may reuse the same code.
func (svc *Service) Submit(studentID, code string) (SubmissionResult, error) {
	code = core.CleanString(code)

	svc.mu.Lock()
	if svc.challenge == nil {
		svc.mu.Unlock()
		return SubmissionNoChallenge, nil
	}
	if !svc.challenge.ExpiresAt.After(nowFunc()) {
		svc.challenge = nil
		svc.mu.Unlock()
		return SubmissionExpired, nil
	}
	ch := *svc.challenge
	svc.mu.Unlock()

	if code != ch.Code {
		return SubmissionWrongCode, nil
	}
	if err := svc.RecordToday(studentID, ch.Subject, StatusPresent); err != nil {
		return SubmissionNoChallenge, err
	}
	return SubmissionAccepted, nil
}

// activeLocked is the explicit idle/active state check; it must run at the
// top of every challenge-touching operation. Caller holds svc.mu.
func (svc *Service) activeLocked() *Challenge {
	if svc.challenge != nil && !svc.challenge.ExpiresAt.After(nowFunc()) {
		svc.challenge = nil
	}
	return svc.challenge
}

func generateCode() string {
	buf := make([]byte, 0, 6)
	buf = append(buf, codeLetters[rand.Intn(len(codeLetters))])
	for i := 0; i < 5; i++ {
		buf = append(buf, byte('0'+rand.Intn(10)))
	}
	return string(buf)
}
