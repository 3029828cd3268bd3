package inmemdb

import (
	"sort"
	"sync"

	"github.com/edupoint/portal/core"
	"github.com/edupoint/portal/core/attendance"
	"github.com/edupoint/portal/core/student"
	"github.com/edupoint/portal/core/user"
	"github.com/edupoint/portal/storage/snapshot"
)

type attKey struct {
	studentID string
	subject   core.Subject
	date      string
}

// DB holds every entity collection in memory and re-serializes the whole
// store to its snapshot backend after each mutation. Persistence is
// best-effort: save failures are logged, never propagated.
type DB struct {
	mu      sync.RWMutex
	backend snapshot.Backend
	log     core.Logger

	users      map[string]*user.User            // by username
	students   map[string]*student.Student      // by id
	marks      map[string]*student.MarksRecord  // by student id
	fees       map[string]*student.FeeRecord    // by student id
	attendance map[attKey]*attendance.Record
}

// Open restores the store from the backend's snapshot, falling back to the
// seed dataset when no snapshot exists or it cannot be decoded. Every
// student's CGPA is recomputed from the restored marks before first use.
func Open(backend snapshot.Backend, log core.Logger) (*DB, error) {
	db := &DB{
		backend:    backend,
		log:        log,
		users:      make(map[string]*user.User),
		students:   make(map[string]*student.Student),
		marks:      make(map[string]*student.MarksRecord),
		fees:       make(map[string]*student.FeeRecord),
		attendance: make(map[attKey]*attendance.Record),
	}

	snap, err := backend.Load()
	if err != nil {
		db.log.Warn("snapshot load failed; starting from seed data", err)
		snap = nil
	}
	if snap == nil {
		seed := DefaultSeed()
		snap = &seed
	}
	db.restore(*snap)

	db.mu.Lock()
	for id, st := range db.students {
		var sc student.Scores
		if rec, ok := db.marks[id]; ok {
			sc = rec.Scores
		}
		st.CGPA = student.ComputeCGPA(sc)
	}
	db.persistLocked()
	db.mu.Unlock()

	return db, nil
}

func (db *DB) restore(snap snapshot.Snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := range snap.Users {
		u := snap.Users[i]
		db.users[u.Username] = &u
	}
	for i := range snap.Students {
		s := snap.Students[i]
		db.students[s.ID] = &s
	}
	for i := range snap.Marks {
		m := snap.Marks[i]
		db.marks[m.StudentID] = &m
	}
	for i := range snap.Fees {
		f := snap.Fees[i]
		db.fees[f.StudentID] = &f
	}
	for i := range snap.Attendance {
		a := snap.Attendance[i]
		db.attendance[attKey{a.StudentID, a.Subject, a.Date}] = &a
	}
}

// Dump serializes the current store state as a snapshot with deterministic
// collection ordering.
func (db *DB) Dump() snapshot.Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.dumpLocked()
}

func (db *DB) dumpLocked() snapshot.Snapshot {
	snap := snapshot.Snapshot{
		Users:      make([]user.User, 0, len(db.users)),
		Students:   make([]student.Student, 0, len(db.students)),
		Marks:      make([]student.MarksRecord, 0, len(db.marks)),
		Fees:       make([]student.FeeRecord, 0, len(db.fees)),
		Attendance: make([]attendance.Record, 0, len(db.attendance)),
	}
	for _, u := range db.users {
		snap.Users = append(snap.Users, *u)
	}
	for _, s := range db.students {
		snap.Students = append(snap.Students, *s)
	}
	for _, m := range db.marks {
		snap.Marks = append(snap.Marks, *m)
	}
	for _, f := range db.fees {
		snap.Fees = append(snap.Fees, *f)
	}
	for _, a := range db.attendance {
		snap.Attendance = append(snap.Attendance, *a)
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].Username < snap.Users[j].Username })
	sort.Slice(snap.Students, func(i, j int) bool { return snap.Students[i].ID < snap.Students[j].ID })
	sort.Slice(snap.Marks, func(i, j int) bool { return snap.Marks[i].StudentID < snap.Marks[j].StudentID })
	sort.Slice(snap.Fees, func(i, j int) bool { return snap.Fees[i].StudentID < snap.Fees[j].StudentID })
	sort.Slice(snap.Attendance, func(i, j int) bool {
		a, b := snap.Attendance[i], snap.Attendance[j]
		if a.StudentID != b.StudentID {
			return a.StudentID < b.StudentID
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Date < b.Date
	})
	return snap
}

// persistLocked snapshots the whole store to the backend. Caller holds db.mu.
func (db *DB) persistLocked() {
	if err := db.backend.Save(db.dumpLocked()); err != nil {
		db.log.Warn("snapshot save failed", err)
	}
}
