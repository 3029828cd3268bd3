package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edupoint/portal/core"
)

func TestService_TodayPlan(t *testing.T) {
	svc := NewService(newMemRepo(), testConf())

	// Friday 2026-08-28
	nowFunc = func() time.Time { return time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	plan := svc.TodayPlan()
	assert.Equal(t, "Friday", plan.Day)
	assert.Equal(t, "28/08/2026", plan.Date)
	assert.False(t, plan.Holiday)
	assert.Len(t, plan.Periods, 4)

	seen := make(map[core.Subject]bool)
	for i, p := range plan.Periods {
		assert.Equal(t, periodSlots[i], p.Time)
		assert.True(t, p.Subject.Valid())
		assert.False(t, seen[p.Subject], "subject %s scheduled twice", p.Subject)
		seen[p.Subject] = true
	}
}

func TestService_TodayPlan_weekend(t *testing.T) {
	svc := NewService(newMemRepo(), testConf())

	nowFunc = func() time.Time { return time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC) } // Saturday
	defer func() { nowFunc = time.Now }()

	plan := svc.TodayPlan()
	assert.True(t, plan.Holiday)
	assert.Empty(t, plan.Periods)
}

func TestService_DayStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, testConf())

	nowFunc = func() time.Time { return time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	plan := DayPlan{Periods: []Period{
		{Time: periodSlots[0], Subject: core.SubjectMaths},
		{Time: periodSlots[1], Subject: core.SubjectEnglish},
	}}

	// nothing recorded yet
	_, ok, err := svc.DayStatus("1", plan)
	assert.NoError(t, err)
	assert.False(t, ok)

	// one absence -> absent
	assert.NoError(t, svc.RecordToday("1", core.SubjectMaths, StatusAbsent))
	st, ok, err := svc.DayStatus("1", plan)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StatusAbsent, st)

	// any presence wins over absences
	assert.NoError(t, svc.RecordToday("1", core.SubjectEnglish, StatusPresent))
	st, ok, err = svc.DayStatus("1", plan)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StatusPresent, st)
}
