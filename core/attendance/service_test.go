package attendance

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edupoint/portal/core"
)

// memRepo is a minimal in-memory Repository for engine tests.
type memRepo struct {
	recs map[[3]string]Record
}

func newMemRepo() *memRepo {
	return &memRepo{recs: make(map[[3]string]Record)}
}

func (r *memRepo) key(studentID string, subj core.Subject, date string) [3]string {
	return [3]string{studentID, string(subj), date}
}

func (r *memRepo) UpsertAttendance(rec Record) error {
	r.recs[r.key(rec.StudentID, rec.Subject, rec.Date)] = rec
	return nil
}

func (r *memRepo) QueryAttendance(studentID string, subj core.Subject) ([]Record, error) {
	var out []Record
	for _, rec := range r.recs {
		if rec.StudentID == studentID && rec.Subject == subj {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo) GetAttendance(studentID string, subj core.Subject, date string) (Record, error) {
	if rec, ok := r.recs[r.key(studentID, subj, date)]; ok {
		return rec, nil
	}
	return Record{}, ErrNotFound
}

func testConf() *core.Config {
	return &core.Config{CodeTTL: 60 * time.Second, LowAttendancePct: 75}
}

func TestService_Record_upsert(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, testConf())

	assert.NoError(t, svc.Record("1", core.SubjectMaths, "2026-08-01", StatusAbsent))
	// same (student, subject, date) key: last write wins, no duplicate
	assert.NoError(t, svc.Record("1", core.SubjectMaths, "2026-08-01", StatusPresent))

	sum, err := svc.SubjectSummary("1", core.SubjectMaths)
	assert.NoError(t, err)
	assert.Equal(t, Summary{Total: 1, Present: 1, Percent: 100}, sum)

	assert.ErrorIs(t, svc.Record("1", "YOGA", "2026-08-01", StatusPresent), ErrUnknownSubject)
	assert.ErrorIs(t, svc.Record("1", core.SubjectMaths, "2026-08-01", "X"), ErrInvalidStatus)
}

func TestService_SubjectSummary_empty(t *testing.T) {
	svc := NewService(newMemRepo(), testConf())

	sum, err := svc.SubjectSummary("1", core.SubjectMaths)
	assert.NoError(t, err)
	assert.Equal(t, Summary{}, sum)

	_, err = svc.SubjectSummary("1", "YOGA")
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestService_OverallPercent(t *testing.T) {
	svc := NewService(newMemRepo(), testConf())

	// no records at all: nil, not 0
	pct, err := svc.OverallPercent("1")
	assert.NoError(t, err)
	assert.Nil(t, pct)

	// maths 1/2 = 50%, english 1/1 = 100%; zero-record subjects are not
	// averaged in -> (50+100)/2 = 75
	assert.NoError(t, svc.Record("1", core.SubjectMaths, "2026-08-01", StatusPresent))
	assert.NoError(t, svc.Record("1", core.SubjectMaths, "2026-08-02", StatusAbsent))
	assert.NoError(t, svc.Record("1", core.SubjectEnglish, "2026-08-01", StatusPresent))

	pct, err = svc.OverallPercent("1")
	assert.NoError(t, err)
	if assert.NotNil(t, pct) {
		assert.InDelta(t, 75.0, *pct, 1e-9)
	}

	assert.False(t, svc.IsLow(*pct))
	assert.True(t, svc.IsLow(74.9))
}

func TestService_ChallengeLifecycle(t *testing.T) {
	base := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return base }
	defer func() { nowFunc = time.Now }()

	repo := newMemRepo()
	svc := NewService(repo, testConf())

	// idle state
	_, ok := svc.Current()
	assert.False(t, ok)
	res, err := svc.Submit("1", "A12345")
	assert.NoError(t, err)
	assert.Equal(t, SubmissionNoChallenge, res)

	ch, err := svc.IssueCode(core.SubjectOOPS)
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z][0-9]{5}$`), ch.Code)
	assert.Equal(t, base.Add(60*time.Second), ch.ExpiresAt)

	cur, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, ch, cur)

	// wrong code leaves the challenge active and records nothing
	res, err = svc.Submit("1", "WRONG1")
	assert.NoError(t, err)
	assert.Equal(t, SubmissionWrongCode, res)
	_, err = repo.GetAttendance("1", core.SubjectOOPS, "2026-08-28")
	assert.ErrorIs(t, err, ErrNotFound)

	// correct code marks the student present today
	res, err = svc.Submit("1", ch.Code)
	assert.NoError(t, err)
	assert.Equal(t, SubmissionAccepted, res)
	rec, err := repo.GetAttendance("1", core.SubjectOOPS, "2026-08-28")
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, rec.Status)

	// the code is reusable by other students until expiry
	res, err = svc.Submit("2", ch.Code)
	assert.NoError(t, err)
	assert.Equal(t, SubmissionAccepted, res)

	// after the TTL elapses the same code is expired...
	nowFunc = func() time.Time { return base.Add(60 * time.Second) }
	res, err = svc.Submit("3", ch.Code)
	assert.NoError(t, err)
	assert.Equal(t, SubmissionExpired, res)

	// ...the state collapses to idle...
	_, ok = svc.Current()
	assert.False(t, ok)

	// ...and further submissions see no challenge at all
	res, err = svc.Submit("3", ch.Code)
	assert.NoError(t, err)
	assert.Equal(t, SubmissionNoChallenge, res)
}

func TestService_IssueCode_replaces(t *testing.T) {
	base := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return base }
	defer func() { nowFunc = time.Now }()

	svc := NewService(newMemRepo(), testConf())

	first, err := svc.IssueCode(core.SubjectMaths)
	assert.NoError(t, err)
	second, err := svc.IssueCode(core.SubjectEnglish)
	assert.NoError(t, err)

	cur, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, second, cur)

	// the replaced code is dead even before its own expiry
	if first.Code != second.Code {
		res, err := svc.Submit("1", first.Code)
		assert.NoError(t, err)
		assert.Equal(t, SubmissionWrongCode, res)
	}

	_, err = svc.IssueCode("YOGA")
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestService_Current_lazyExpiry(t *testing.T) {
	base := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return base }
	defer func() { nowFunc = time.Now }()

	svc := NewService(newMemRepo(), testConf())
	ch, err := svc.IssueCode(core.SubjectMaths)
	assert.NoError(t, err)
	assert.Equal(t, 60*time.Second, ch.Remaining(base))

	// expiry is evaluated against the wall clock on read, never cached
	nowFunc = func() time.Time { return base.Add(59 * time.Second) }
	_, ok := svc.Current()
	assert.True(t, ok)

	nowFunc = func() time.Time { return base.Add(60 * time.Second) }
	_, ok = svc.Current()
	assert.False(t, ok)
	assert.Zero(t, ch.Remaining(base.Add(2*time.Minute)))
}
