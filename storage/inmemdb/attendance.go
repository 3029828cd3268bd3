package inmemdb

import (
	"sort"

	"github.com/edupoint/portal/core"
	"github.com/edupoint/portal/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) UpsertAttendance(rec attendance.Record) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := attKey{rec.StudentID, rec.Subject, rec.Date}
	if prev, ok := repo.db.attendance[key]; ok {
		prev.Status = rec.Status
	} else {
		repo.db.attendance[key] = &rec
	}
	repo.db.persistLocked()
	return nil
}

func (repo *attendanceRepository) QueryAttendance(studentID string, subject core.Subject) ([]attendance.Record, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var recs []attendance.Record
	for key, rec := range repo.db.attendance {
		if key.studentID == studentID && key.subject == subject {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Date < recs[j].Date })
	return recs, nil
}

func (repo *attendanceRepository) GetAttendance(studentID string, subject core.Subject, date string) (attendance.Record, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if rec, ok := repo.db.attendance[attKey{studentID, subject, date}]; ok {
		return *rec, nil
	}
	return attendance.Record{}, attendance.ErrNotFound
}
