package inmemdb

import (
	"sort"

	"github.com/edupoint/portal/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckStudentUniqueness(id, roll string) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, st := range repo.db.students {
		if st.ID == id {
			return student.ErrIDExists
		}
		if st.Roll == roll {
			return student.ErrRollExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.students[st.ID]; ok {
		return student.Student{}, student.ErrIDExists
	}
	repo.db.students[st.ID] = &st
	repo.db.persistLocked()
	return st, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for _, st := range repo.db.students {
		students = append(students, *st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudentCGPA(id string, cgpa float64) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	st, ok := repo.db.students[id]
	if !ok {
		return student.ErrNotFound
	}
	st.CGPA = cgpa
	repo.db.persistLocked()
	return nil
}

func (repo *studentRepository) DeleteStudent(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.students, id)
	delete(repo.db.marks, id)
	delete(repo.db.fees, id)
	for uname, usr := range repo.db.users {
		if usr.StudentID == id {
			delete(repo.db.users, uname)
		}
	}
	for key := range repo.db.attendance {
		if key.studentID == id {
			delete(repo.db.attendance, key)
		}
	}
	repo.db.persistLocked()
	return nil
}

func (repo *studentRepository) GetMarks(studentID string) (student.MarksRecord, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if rec, ok := repo.db.marks[studentID]; ok {
		return *rec, nil
	}
	return student.MarksRecord{}, student.ErrNotFound
}

func (repo *studentRepository) UpsertMarks(rec student.MarksRecord) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.marks[rec.StudentID] = &rec
	repo.db.persistLocked()
	return nil
}

func (repo *studentRepository) GetOrCreateFees(studentID string) (student.FeeRecord, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if fee, ok := repo.db.fees[studentID]; ok {
		return *fee, nil
	}
	fee := student.FeeRecord{StudentID: studentID}
	repo.db.fees[studentID] = &fee
	repo.db.persistLocked()
	return fee, nil
}

func (repo *studentRepository) SetFeePaid(studentID string, paid int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	fee, ok := repo.db.fees[studentID]
	if !ok {
		fee = &student.FeeRecord{StudentID: studentID}
		repo.db.fees[studentID] = fee
	}
	fee.Paid = paid
	repo.db.persistLocked()
	return nil
}
