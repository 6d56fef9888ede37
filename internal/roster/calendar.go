package roster

import (
	"time"
)

// DayClass selects which of a team's two capacity rows applies to a date.
type DayClass string

const (
	Weekday        DayClass = "weekday"
	WeekendHoliday DayClass = "weekend/holiday"
)

// Label is the user-facing pt-BR name of the day class, used in decision
// messages.
func (c DayClass) Label() string {
	if c == WeekendHoliday {
		return "fim de semana/feriado"
	}
	return "dia útil"
}

// HolidayFn reports whether a date is a registered holiday. Membership is an
// exact calendar-day match, supplied by the caller so this package stays free
// of I/O.
type HolidayFn func(date time.Time) bool

// IsWeekend reports whether the date falls on Saturday or Sunday. This is a
// fixed calendar rule, not configurable.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ClassifyDay returns WeekendHoliday for Saturdays, Sundays and registered
// holidays (even a Tuesday holiday), Weekday otherwise.
func ClassifyDay(date time.Time, isHoliday HolidayFn) DayClass {
	if IsWeekend(date) {
		return WeekendHoliday
	}
	if isHoliday != nil && isHoliday(date) {
		return WeekendHoliday
	}
	return Weekday
}
