package student

import "github.com/edupoint/portal/core"

// GradePoint buckets a raw mark into a grade point. Marks below 40 (including
// negative ones) yield 0; marks above 100 are graded through the same
// thresholds unchanged.
func GradePoint(mark float64) int {
	switch {
	case mark >= 90:
		return 10
	case mark >= 80:
		return 9
	case mark >= 70:
		return 8
	case mark >= 60:
		return 7
	case mark >= 50:
		return 6
	case mark >= 40:
		return 5
	}
	return 0
}

// ComputeCGPA is the credit-weighted mean of grade points over the full
// subject set: sum(GradePoint(mark) * credit) / sum(credit).
func ComputeCGPA(sc Scores) float64 {
	var num, den int
	for _, subj := range core.Subjects {
		cr := subj.Credit()
		num += GradePoint(sc.Get(subj)) * cr
		den += cr
	}
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
