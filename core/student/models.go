package student

import (
	"encoding/json"

	"github.com/edupoint/portal/core"
)

// Student is a portal student record. CGPA is derived from the marks record
// and overwritten on every mark mutation; it is never set directly.
type Student struct {
	ID   string  `json:"id"`
	Roll string  `json:"roll"`
	Name string  `json:"name"`
	Dept string  `json:"dept"`
	CGPA float64 `json:"cgpa"`
}

// Scores is a fixed-shape mark sheet over the closed subject set.
// Raw marks are unvalidated on purpose: a 150 is accepted and graded
// through the same thresholds as everything else.
type Scores struct {
	English      float64
	Aptitude     float64
	OOPS         float64
	Maths        float64
	CodingSkills float64
}

// Get returns the raw mark for a subject, 0 for unknown subjects.
func (s Scores) Get(subj core.Subject) float64 {
	switch subj {
	case core.SubjectEnglish:
		return s.English
	case core.SubjectAptitude:
		return s.Aptitude
	case core.SubjectOOPS:
		return s.OOPS
	case core.SubjectMaths:
		return s.Maths
	case core.SubjectCodingSkills:
		return s.CodingSkills
	}
	return 0
}

// Set stores the raw mark for a subject; unknown subjects are ignored.
func (s *Scores) Set(subj core.Subject, mark float64) {
	switch subj {
	case core.SubjectEnglish:
		s.English = mark
	case core.SubjectAptitude:
		s.Aptitude = mark
	case core.SubjectOOPS:
		s.OOPS = mark
	case core.SubjectMaths:
		s.Maths = mark
	case core.SubjectCodingSkills:
		s.CodingSkills = mark
	}
}

// MarshalJSON serializes scores keyed by the canonical subject names
// (including "CODING SKILLS", which cannot be expressed as a struct tag).
func (s Scores) MarshalJSON() ([]byte, error) {
	m := make(map[core.Subject]float64, len(core.Subjects))
	for _, subj := range core.Subjects {
		m[subj] = s.Get(subj)
	}
	return json.Marshal(m)
}

func (s *Scores) UnmarshalJSON(data []byte) error {
	var m map[core.Subject]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for subj, mark := range m {
		s.Set(subj, mark) // unknown keys dropped
	}
	return nil
}

// MarksRecord is the one-to-one mark sheet of a student. A student without a
// record is treated as all-zero everywhere.
type MarksRecord struct {
	StudentID string `json:"studentId"`
	Scores    Scores `json:"scores"`
}

// FeeRecord tracks the amount a student has paid so far. Lazily created with
// Paid=0 on first access.
type FeeRecord struct {
	StudentID string `json:"studentId"`
	Paid      int    `json:"paid"`
}

// FeeStatus is the derived fee view: Due = Total - Paid.
type FeeStatus struct {
	Total int `json:"total"`
	Paid  int `json:"paid"`
	Due   int `json:"due"`
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	ID     string `json:"id" validate:"required,alphanum_"`
	Roll   string `json:"roll" validate:"required,alphanum_"`
	Name   string `json:"name" validate:"required"`
	Dept   string `json:"dept" validate:"required"`
	Scores Scores `json:"scores"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.ID = core.CleanString(ns.ID)
	ns.Roll = core.CleanString(ns.Roll)
	ns.Name = core.CleanString(ns.Name)
	ns.Dept = core.CleanString(ns.Dept)

	if err := core.Validate.Struct(ns); err != nil {
		return core.TranslateError(err)
	}
	return svc.checkUniqueness(ns.ID, ns.Roll)
}

// OverviewRow is one admin-roster line: the student plus the derived
// attendance figures. Attendance is nil when the student has no records at
// all, which is distinct from 0%.
type OverviewRow struct {
	Student       Student  `json:"student"`
	Attendance    *float64 `json:"attendance"`
	LowAttendance bool     `json:"lowAttendance"`
}
