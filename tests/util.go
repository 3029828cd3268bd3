package testutil

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/edupoint/portal/core"
	"github.com/edupoint/portal/core/attendance"
	"github.com/edupoint/portal/core/student"
	"github.com/edupoint/portal/core/user"
	logsvc "github.com/edupoint/portal/services/logger"
	"github.com/edupoint/portal/storage/inmemdb"
	"github.com/edupoint/portal/storage/snapshot"
)

// NewConfig returns a fixed test configuration, independent of the
// environment.
func NewConfig() *core.Config {
	return &core.Config{
		Debug:                  false,
		AppName:                "StudentPortal",
		Env:                    "TEST",
		TotalFee:               360000,
		DefaultStudentPassword: "student123",
		MinPasswordLen:         4,
		CodeTTL:                60 * time.Second,
		LowAttendancePct:       75,
	}
}

// NewLogger returns a silent console logger.
func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), conf)
}

// OpenDB opens a seeded store over a discard backend.
func OpenDB(t *testing.T, backend ...snapshot.Backend) *inmemdb.DB {
	t.Helper()
	var b snapshot.Backend = snapshot.Discard{}
	if len(backend) > 0 {
		b = backend[0]
	}
	db, err := inmemdb.Open(b, NewLogger(NewConfig()))
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// Services wires the full service stack over one test store.
func Services(t *testing.T, backend ...snapshot.Backend) (*user.Service, *student.Service, *attendance.Service) {
	t.Helper()
	conf := NewConfig()
	db := OpenDB(t, backend...)
	usrRepo := inmemdb.NewUserRepository(db)
	attSvc := attendance.NewService(inmemdb.NewAttendanceRepository(db), conf)
	stSvc := student.NewService(inmemdb.NewStudentRepository(db), usrRepo, attSvc, conf)
	return user.NewService(usrRepo, conf), stSvc, attSvc
}
