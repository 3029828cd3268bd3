package attendance

import (
	"math/rand"
	"time"

	"github.com/edupoint/portal/core"
)

var periodSlots = []string{
	"9:00 – 10:00 AM",
	"10:00 – 11:00 AM",
	"11:00 AM – 12:00 PM",
	"2:00 – 3:00 PM",
}

type Period struct {
	Time    string       `json:"time"`
	Subject core.Subject `json:"subject"`
}

// DayPlan is the day's class schedule. Weekends are holidays with no periods;
// weekdays get four distinct subjects drawn at random.
type DayPlan struct {
	Day     string   `json:"day"`
	Date    string   `json:"date"`
	Holiday bool     `json:"holiday"`
	Periods []Period `json:"periods"`
}

// TodayPlan builds the schedule for the current day.
func (svc *Service) TodayPlan() DayPlan {
	now := nowFunc()
	plan := DayPlan{
		Day:  now.Weekday().String(),
		Date: now.Format("02/01/2006"),
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		plan.Holiday = true
		return plan
	}

	pool := append([]core.Subject(nil), core.Subjects...)
	for i := 0; i < len(periodSlots) && len(pool) > 0; i++ {
		r := rand.Intn(len(pool))
		plan.Periods = append(plan.Periods, Period{Time: periodSlots[i], Subject: pool[r]})
		pool = append(pool[:r], pool[r+1:]...)
	}
	return plan
}

// DayStatus rolls today's recorded statuses over the planned periods into a
// single status line: present as soon as any period is P, absent when some
// period is A and none is P; ok is false when nothing is recorded.
func (svc *Service) DayStatus(studentID string, plan DayPlan) (Status, bool, error) {
	var sawAbsent bool
	for _, p := range plan.Periods {
		st, ok, err := svc.TodayStatus(studentID, p.Subject)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		if st == StatusPresent {
			return StatusPresent, true, nil
		}
		sawAbsent = true
	}
	if sawAbsent {
		return StatusAbsent, true, nil
	}
	return "", false, nil
}
