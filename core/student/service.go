package student

import (
	"errors"

	"github.com/edupoint/portal/core"
	"github.com/edupoint/portal/core/user"
)

var (
	// errors
	ErrNotFound         = errors.New("student not found")
	ErrIDExists         = errors.New("a student with this id already exists")
	ErrRollExists       = errors.New("a student with this roll already exists")
	ErrInvalidAmount    = errors.New("invalid payment amount")
	ErrAmountExceedsDue = errors.New("amount is more than due")
)

type (
	Repository interface {
		CheckStudentUniqueness(id, roll string) error
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		UpdateStudentCGPA(id string, cgpa float64) error
		// DeleteStudent cascades: the matching user, marks record, fee record
		// and all attendance records go with the student.
		DeleteStudent(id string) error

		GetMarks(studentID string) (MarksRecord, error)
		UpsertMarks(rec MarksRecord) error

		GetOrCreateFees(studentID string) (FeeRecord, error)
		SetFeePaid(studentID string, paid int) error
	}

	// AttendanceSummarizer is what the admin overview needs from the
	// attendance engine.
	AttendanceSummarizer interface {
		OverallPercent(studentID string) (*float64, error)
		IsLow(percent float64) bool
	}

	Service struct {
		repo  Repository
		users user.Repository
		att   AttendanceSummarizer
		conf  *core.Config
	}
)

func NewService(repo Repository, users user.Repository, att AttendanceSummarizer, conf *core.Config) *Service {
	return &Service{repo: repo, users: users, att: att, conf: conf}
}

func (svc *Service) checkUniqueness(id, roll string) error {
	if err := svc.repo.CheckStudentUniqueness(id, roll); err != nil {
		var field string
		switch err {
		case ErrIDExists:
			field = "id"
		case ErrRollExists:
			field = "roll"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Create registers a student together with its login, mark sheet and fee
// record. The login username is the roll and the password is the configured
// default; CGPA is computed from the supplied scores (all-zero if none).
func (svc *Service) Create(ns NewStudent) (Student, error) {
	if err := ns.Validate(svc); err != nil {
		return Student{}, err
	}

	st := Student{
		ID:   ns.ID,
		Roll: ns.Roll,
		Name: ns.Name,
		Dept: ns.Dept,
		CGPA: ComputeCGPA(ns.Scores),
	}
	st, err := svc.repo.CreateStudent(st)
	if err != nil {
		return Student{}, err
	}
	if err := svc.repo.UpsertMarks(MarksRecord{StudentID: st.ID, Scores: ns.Scores}); err != nil {
		return Student{}, err
	}
	if _, err := svc.repo.GetOrCreateFees(st.ID); err != nil {
		return Student{}, err
	}
	_, err = svc.users.CreateUser(user.User{
		Username:  st.Roll,
		Password:  svc.conf.DefaultStudentPassword,
		Role:      user.RoleStudent,
		StudentID: st.ID,
	})
	if err != nil {
		return Student{}, err
	}
	return st, nil
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteStudent(core.CleanString(id))
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(core.CleanString(id))
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

// Marks returns the student's mark sheet, an all-zero one if none exists.
func (svc *Service) Marks(studentID string) (MarksRecord, error) {
	if _, err := svc.repo.GetStudentByID(studentID); err != nil {
		return MarksRecord{}, err
	}
	rec, err := svc.repo.GetMarks(studentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return MarksRecord{StudentID: studentID}, nil
		}
		return MarksRecord{}, err
	}
	return rec, nil
}

// SetMarks replaces all subject scores for the student, creating the marks
// record if absent, and recomputes the CGPA.
func (svc *Service) SetMarks(studentID string, sc Scores) (Student, error) {
	st, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		return Student{}, err
	}
	if err := svc.repo.UpsertMarks(MarksRecord{StudentID: st.ID, Scores: sc}); err != nil {
		return Student{}, err
	}
	cgpa, err := svc.RecomputeCGPA(st.ID)
	if err != nil {
		return Student{}, err
	}
	st.CGPA = cgpa
	return st, nil
}

// RecomputeCGPA recomputes and stores the student's CGPA from its current
// marks record (all-zero when the record is absent).
func (svc *Service) RecomputeCGPA(studentID string) (float64, error) {
	rec, err := svc.repo.GetMarks(studentID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	cgpa := ComputeCGPA(rec.Scores)
	if err := svc.repo.UpdateStudentCGPA(studentID, cgpa); err != nil {
		return 0, err
	}
	return cgpa, nil
}

// FeeStatus returns the derived fee view for a student.
func (svc *Service) FeeStatus(studentID string) (FeeStatus, error) {
	if _, err := svc.repo.GetStudentByID(studentID); err != nil {
		return FeeStatus{}, err
	}
	fee, err := svc.repo.GetOrCreateFees(studentID)
	if err != nil {
		return FeeStatus{}, err
	}
	return svc.feeStatus(fee), nil
}

// ApplyPayment records a payment. Non-positive amounts are rejected as
// invalid; amounts above the outstanding due are rejected without mutating
// the fee record.
func (svc *Service) ApplyPayment(studentID string, amount int) (FeeStatus, error) {
	if amount <= 0 {
		return FeeStatus{}, ErrInvalidAmount
	}
	if _, err := svc.repo.GetStudentByID(studentID); err != nil {
		return FeeStatus{}, err
	}
	fee, err := svc.repo.GetOrCreateFees(studentID)
	if err != nil {
		return FeeStatus{}, err
	}
	due := svc.conf.TotalFee - fee.Paid
	if amount > due {
		return FeeStatus{}, ErrAmountExceedsDue
	}
	fee.Paid += amount
	if err := svc.repo.SetFeePaid(studentID, fee.Paid); err != nil {
		return FeeStatus{}, err
	}
	return svc.feeStatus(fee), nil
}

func (svc *Service) feeStatus(fee FeeRecord) FeeStatus {
	return FeeStatus{
		Total: svc.conf.TotalFee,
		Paid:  fee.Paid,
		Due:   svc.conf.TotalFee - fee.Paid,
	}
}

// Overview builds the admin roster: every student with its overall attendance
// percentage and the low-attendance flag.
func (svc *Service) Overview() ([]OverviewRow, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	rows := make([]OverviewRow, 0, len(students))
	for _, st := range students {
		pct, err := svc.att.OverallPercent(st.ID)
		if err != nil {
			return nil, err
		}
		row := OverviewRow{Student: st, Attendance: pct}
		if pct != nil {
			row.LowAttendance = svc.att.IsLow(*pct)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
