package domain

import (
	"time"
)

type ShiftPeriod string

// Display order: MORNING < INTERMEDIATE < AFTERNOON < NIGHT.
const (
	PeriodMorning      ShiftPeriod = "MORNING"
	PeriodIntermediate ShiftPeriod = "INTERMEDIATE"
	PeriodAfternoon    ShiftPeriod = "AFTERNOON"
	PeriodNight        ShiftPeriod = "NIGHT"
)

// ShiftPeriods lists the four periods in display order.
var ShiftPeriods = []ShiftPeriod{PeriodMorning, PeriodIntermediate, PeriodAfternoon, PeriodNight}

func (p ShiftPeriod) Valid() bool {
	switch p {
	case PeriodMorning, PeriodIntermediate, PeriodAfternoon, PeriodNight:
		return true
	}
	return false
}

// Shift is one assignment of a physiotherapist to a team slot. No two shifts
// may share (date, period, physiotherapist); the per-(date, period, team)
// count is bounded by the team's capacity for the date's day class.
type Shift struct {
	ID                int64       `json:"id"`
	Date              time.Time   `json:"date"`
	Period            ShiftPeriod `json:"period"`
	PhysiotherapistID int64       `json:"physiotherapistId"`
	TeamID            int64       `json:"teamId"`
	CreatedAt         time.Time   `json:"createdAt"`
}
