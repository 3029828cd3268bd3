package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edupoint/portal/core"
	"github.com/edupoint/portal/core/attendance"
	"github.com/edupoint/portal/core/student"
	"github.com/edupoint/portal/core/user"
	"github.com/edupoint/portal/storage/snapshot"
)

func sampleSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Users: []user.User{
			{Username: "ADMIN", Password: "admin123", Role: user.RoleAdmin},
			{Username: "23CSE101", Password: "student1", Role: user.RoleStudent, StudentID: "1"},
		},
		Students: []student.Student{
			{ID: "1", Roll: "23CSE101", Name: "Aashish Kumar", Dept: "CSE", CGPA: 9},
		},
		Marks: []student.MarksRecord{
			{StudentID: "1", Scores: student.Scores{English: 78, Aptitude: 82, OOPS: 88, Maths: 91, CodingSkills: 85}},
		},
		Fees: []student.FeeRecord{
			{StudentID: "1", Paid: 120000},
		},
		Attendance: []attendance.Record{
			{StudentID: "1", Subject: core.SubjectMaths, Date: "2026-08-01", Status: attendance.StatusPresent},
		},
	}
}

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal_snapshot.json")
	b := snapshot.NewFileBackend(path)

	// no prior state
	snap, err := b.Load()
	assert.NoError(t, err)
	assert.Nil(t, snap)

	want := sampleSnapshot()
	assert.NoError(t, b.Save(want))

	got, err := b.Load()
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, want, *got)
	}

	// saving again overwrites the whole snapshot
	want.Fees[0].Paid = 240000
	assert.NoError(t, b.Save(want))
	got, err = b.Load()
	assert.NoError(t, err)
	assert.Equal(t, 240000, got.Fees[0].Paid)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileBackend_Load_corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal_snapshot.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := snapshot.NewFileBackend(path).Load()
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	b := snapshot.Discard{}
	assert.NoError(t, b.Save(sampleSnapshot()))
	snap, err := b.Load()
	assert.NoError(t, err)
	assert.Nil(t, snap)
}
