// Package roster decides whether a new shift assignment may be admitted into
// a team slot. It is a pure decision layer: occupancy counts, holiday
// membership and persistence all belong to the caller, which must also hold
// the authoritative storage-level guards (unique assignee index, guarded
// insert) since the read-then-decide sequence here is racy by itself.
package roster

import (
	"fmt"
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

// Reason classifies the outcome of an admission attempt. Rejections are
// normal results, not errors.
type Reason string

const (
	ReasonAccepted     Reason = "ACCEPTED"
	ReasonCapacityFull Reason = "CAPACITY_FULL"
	ReasonDuplicate    Reason = "DUPLICATE_ASSIGNMENT"
)

// Decision is the result of one admission attempt.
type Decision struct {
	Accepted bool     `json:"accepted"`
	Reason   Reason   `json:"reasonCode"`
	DayClass DayClass `json:"dayClass"`
	Capacity int32    `json:"capacity"`
	Message  string   `json:"message"`
}

// ConfigurationError marks malformed input (unknown period, negative or
// missing capacity). It is fatal for the request and never retryable.
type ConfigurationError struct {
	Field  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid roster configuration: %s: %s", e.Field, e.Detail)
}

// CapacityTable is the normalized {day class, period} -> capacity mapping of
// one team.
type CapacityTable map[DayClass]map[domain.ShiftPeriod]int32

// NewCapacityTable flattens a team's eight capacity fields into a lookup
// table, rejecting negative values.
func NewCapacityTable(team *domain.Team) (CapacityTable, error) {
	if team == nil {
		return nil, &ConfigurationError{Field: "team", Detail: "missing team"}
	}

	table := CapacityTable{
		Weekday: {
			domain.PeriodMorning:      team.WeekdayMorningSlots,
			domain.PeriodIntermediate: team.WeekdayIntermediateSlots,
			domain.PeriodAfternoon:    team.WeekdayAfternoonSlots,
			domain.PeriodNight:        team.WeekdayNightSlots,
		},
		WeekendHoliday: {
			domain.PeriodMorning:      team.WeekendMorningSlots,
			domain.PeriodIntermediate: team.WeekendIntermediateSlots,
			domain.PeriodAfternoon:    team.WeekendAfternoonSlots,
			domain.PeriodNight:        team.WeekendNightSlots,
		},
	}

	for class, row := range table {
		for period, capacity := range row {
			if capacity < 0 {
				return nil, &ConfigurationError{
					Field:  fmt.Sprintf("%s %s slots", class, period),
					Detail: fmt.Sprintf("capacity must be non-negative, got %d", capacity),
				}
			}
		}
	}

	return table, nil
}

// Capacity returns the stored capacity for the given day class and period.
func (t CapacityTable) Capacity(class DayClass, period domain.ShiftPeriod) int32 {
	return t[class][period]
}

// Request carries everything one admission decision needs, read fresh by the
// caller at decision time.
type Request struct {
	Date   time.Time
	Period domain.ShiftPeriod
	Team   *domain.Team
	// Occupancy is the current count of assignments sharing
	// (date, period, team).
	Occupancy int32
	// AssigneeBooked is true when the assignee already holds a shift at the
	// exact (date, period), in any team.
	AssigneeBooked bool
}

// TryAdmit decides whether a new assignment may be admitted. The duplicate
// check runs first and is independent of capacity. The function has no side
// effects and yields identical decisions for identical inputs.
func TryAdmit(req Request, isHoliday HolidayFn) (*Decision, error) {
	if !req.Period.Valid() {
		return nil, &ConfigurationError{Field: "period", Detail: fmt.Sprintf("unknown shift period %q", req.Period)}
	}
	if req.Occupancy < 0 {
		return nil, &ConfigurationError{Field: "occupancy", Detail: "occupancy must be non-negative"}
	}

	table, err := NewCapacityTable(req.Team)
	if err != nil {
		return nil, err
	}

	class := ClassifyDay(req.Date, isHoliday)
	capacity := table.Capacity(class, req.Period)

	if req.AssigneeBooked {
		return &Decision{
			Accepted: false,
			Reason:   ReasonDuplicate,
			DayClass: class,
			Capacity: capacity,
			Message:  "o fisioterapeuta já possui um plantão nessa data e período",
		}, nil
	}

	if req.Occupancy >= capacity {
		return &Decision{
			Accepted: false,
			Reason:   ReasonCapacityFull,
			DayClass: class,
			Capacity: capacity,
			Message:  fmt.Sprintf("não há vagas para esse período nessa data; limite para %s: %d", class.Label(), capacity),
		}, nil
	}

	return &Decision{
		Accepted: true,
		Reason:   ReasonAccepted,
		DayClass: class,
		Capacity: capacity,
		Message:  "plantão admitido",
	}, nil
}
