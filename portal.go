// Package portal wires the student-portal core together: the records store,
// the grading and attendance engines and the auth service. It is the full
// collaborator surface exposed to a view layer; there is no network or CLI
// boundary here.
package portal

import (
	"github.com/edupoint/portal/core"
	"github.com/edupoint/portal/core/attendance"
	"github.com/edupoint/portal/core/student"
	"github.com/edupoint/portal/core/user"
	"github.com/edupoint/portal/storage/inmemdb"
	"github.com/edupoint/portal/storage/snapshot"
)

// Portal bundles the engine services over one records store. Multiple
// independent portals may coexist; nothing here is package-global.
type Portal struct {
	Conf       *core.Config
	Users      *user.Service
	Students   *student.Service
	Attendance *attendance.Service

	db *inmemdb.DB
}

// New opens a portal persisted to the configured snapshot file.
func New(conf *core.Config, log core.Logger) (*Portal, error) {
	return NewWithBackend(conf, log, snapshot.NewFileBackend(conf.SnapshotPath))
}

// NewWithBackend opens a portal over an explicit snapshot backend.
func NewWithBackend(conf *core.Config, log core.Logger, backend snapshot.Backend) (*Portal, error) {
	db, err := inmemdb.Open(backend, log)
	if err != nil {
		return nil, err
	}

	usrRepo := inmemdb.NewUserRepository(db)
	attSvc := attendance.NewService(inmemdb.NewAttendanceRepository(db), conf)

	return &Portal{
		Conf:       conf,
		Users:      user.NewService(usrRepo, conf),
		Students:   student.NewService(inmemdb.NewStudentRepository(db), usrRepo, attSvc, conf),
		Attendance: attSvc,
		db:         db,
	}, nil
}

// Login authenticates a username/password pair.
func (p *Portal) Login(username, password string) (user.User, error) {
	return p.Users.Authenticate(username, password)
}

// Snapshot returns the current persisted-state view of the store.
func (p *Portal) Snapshot() snapshot.Snapshot {
	return p.db.Dump()
}
