package core

// Subject enumerates the closed set of taught subjects. The set and its credit
// weights are fixed at design time; no operation may add or remove subjects.
type Subject string

const (
	SubjectEnglish      Subject = "ENGLISH"
	SubjectAptitude     Subject = "APTITUDE"
	SubjectOOPS         Subject = "OOPS"
	SubjectMaths        Subject = "MATHS"
	SubjectCodingSkills Subject = "CODING SKILLS"
)

// Subjects lists all subjects in their canonical order.
var Subjects = []Subject{
	SubjectEnglish,
	SubjectAptitude,
	SubjectOOPS,
	SubjectMaths,
	SubjectCodingSkills,
}

var subjectCredits = map[Subject]int{
	SubjectEnglish:      3,
	SubjectAptitude:     2,
	SubjectOOPS:         3,
	SubjectMaths:        3,
	SubjectCodingSkills: 3,
}

// Credit returns the credit weight of a subject, 0 for unknown subjects.
func (s Subject) Credit() int { return subjectCredits[s] }

// Valid reports whether s belongs to the taught subject set.
func (s Subject) Valid() bool {
	_, ok := subjectCredits[s]
	return ok
}

// TotalCredits is the credit denominator of the CGPA formula.
func TotalCredits() int {
	var total int
	for _, cr := range subjectCredits {
		total += cr
	}
	return total
}
