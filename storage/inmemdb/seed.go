package inmemdb

import (
	"github.com/edupoint/portal/core/attendance"
	"github.com/edupoint/portal/core/student"
	"github.com/edupoint/portal/core/user"
	"github.com/edupoint/portal/storage/snapshot"
)

// DefaultSeed is the built-in dataset used when no snapshot exists.
// CGPA fields are zero here; they are recomputed from marks at open.
func DefaultSeed() snapshot.Snapshot {
	return snapshot.Snapshot{
		Users: []user.User{
			{Username: "ADMIN", Password: "admin123", Role: user.RoleAdmin},
			{Username: "23CSE101", Password: "student1", Role: user.RoleStudent, StudentID: "1"},
			{Username: "23ECE050", Password: "student2", Role: user.RoleStudent, StudentID: "2"},
		},
		Students: []student.Student{
			{ID: "1", Roll: "23CSE101", Name: "Aashish Kumar", Dept: "CSE"},
			{ID: "2", Roll: "23ECE050", Name: "Priya Sharma", Dept: "ECE"},
		},
		Marks: []student.MarksRecord{
			{StudentID: "1", Scores: student.Scores{English: 78, Aptitude: 82, OOPS: 88, Maths: 91, CodingSkills: 85}},
			{StudentID: "2", Scores: student.Scores{English: 72, Aptitude: 79, OOPS: 80, Maths: 75, CodingSkills: 83}},
		},
		Fees: []student.FeeRecord{
			{StudentID: "1", Paid: 120000},
			{StudentID: "2", Paid: 180000},
		},
		Attendance: []attendance.Record{},
	}
}
