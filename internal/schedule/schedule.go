// Package schedule models the per-day race and charging time windows.
package schedule

import "fmt"

// Day is the race and charging time windows for one calendar day of
// racing. Times are real-valued seconds in a common absolute timebase.
type Day struct {
	RaceStartTime             float64
	RaceEndTime               float64
	MorningChargingStartTime  float64
	MorningChargingEndTime    float64
	EveningChargingStartTime  float64
	EveningChargingEndTime    float64
}

// Schedule is a finite ordered sequence of Days, indexed by day number
// starting at 0.
type Schedule struct {
	days []Day
}

// New validates and wraps the given days into a Schedule.
//
// Invariant per day d: morning_charging_start < morning_charging_end <=
// race_start <= race_end <= evening_charging_start <
// evening_charging_end, and race_start[d+1] > evening_charging_end[d].
func New(days []Day) (*Schedule, error) {
	for i, d := range days {
		if !(d.MorningChargingStartTime < d.MorningChargingEndTime &&
			d.MorningChargingEndTime <= d.RaceStartTime &&
			d.RaceStartTime <= d.RaceEndTime &&
			d.RaceEndTime <= d.EveningChargingStartTime &&
			d.EveningChargingStartTime < d.EveningChargingEndTime) {
			return nil, fmt.Errorf("schedule: day %d violates the charging/race window ordering invariant", i)
		}
		if i > 0 && !(d.RaceStartTime > days[i-1].EveningChargingEndTime) {
			return nil, fmt.Errorf("schedule: day %d race_start_time does not exceed day %d evening_charging_end_time", i, i-1)
		}
	}
	return &Schedule{days: days}, nil
}

// Day returns the schedule for day index i.
func (s *Schedule) Day(i int) Day {
	return s.days[i]
}

// Len returns the number of scheduled days.
func (s *Schedule) Len() int {
	return len(s.days)
}
