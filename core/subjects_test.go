package core

import "testing"

func TestSubjectCredits(t *testing.T) {
	wantCredits := map[Subject]int{
		SubjectEnglish:      3,
		SubjectAptitude:     2,
		SubjectOOPS:         3,
		SubjectMaths:        3,
		SubjectCodingSkills: 3,
	}
	for subj, want := range wantCredits {
		if got := subj.Credit(); got != want {
			t.Errorf("%s.Credit() = %d, want %d", subj, got, want)
		}
		if !subj.Valid() {
			t.Errorf("%s.Valid() = false", subj)
		}
	}
	if got := TotalCredits(); got != 14 {
		t.Errorf("TotalCredits() = %d, want 14", got)
	}
	if Subject("YOGA").Valid() {
		t.Error(`Subject("YOGA").Valid() = true`)
	}
	if got := Subject("YOGA").Credit(); got != 0 {
		t.Errorf(`Subject("YOGA").Credit() = %d, want 0`, got)
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Foo Bar  "); got != "Foo Bar" {
		t.Errorf("CleanString() = %q", got)
	}
	if got := CleanString("  FOO ", true); got != "foo" {
		t.Errorf("CleanString(lower) = %q", got)
	}
}
