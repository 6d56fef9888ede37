package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func testTeam() *domain.Team {
	return &domain.Team{
		ID:   1,
		Name: "UTI Adulto",

		WeekdayMorningSlots:      2,
		WeekdayIntermediateSlots: 1,
		WeekdayAfternoonSlots:    2,
		WeekdayNightSlots:        1,

		WeekendMorningSlots:      1,
		WeekendIntermediateSlots: 0,
		WeekendAfternoonSlots:    1,
		WeekendNightSlots:        1,
	}
}

func noHolidays(time.Time) bool { return false }

func TestClassifyDay(t *testing.T) {
	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, WeekendHoliday, ClassifyDay(saturday, noHolidays))
	assert.Equal(t, WeekendHoliday, ClassifyDay(sunday, noHolidays))
	assert.Equal(t, Weekday, ClassifyDay(monday, noHolidays))

	// a Monday holiday follows weekend rules
	holidays := func(d time.Time) bool { return d.Equal(monday) }
	assert.Equal(t, WeekendHoliday, ClassifyDay(monday, holidays))

	// nil predicate means no holidays are registered
	assert.Equal(t, Weekday, ClassifyDay(monday, nil))
}

func TestTryAdmitAccepts(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	decision, err := TryAdmit(Request{
		Date:      monday,
		Period:    domain.PeriodMorning,
		Team:      testTeam(),
		Occupancy: 1,
	}, noHolidays)

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Equal(t, ReasonAccepted, decision.Reason)
	assert.Equal(t, Weekday, decision.DayClass)
	assert.Equal(t, int32(2), decision.Capacity)
}

func TestTryAdmitCapacityFull(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	decision, err := TryAdmit(Request{
		Date:      monday,
		Period:    domain.PeriodMorning,
		Team:      testTeam(),
		Occupancy: 2,
	}, noHolidays)

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, ReasonCapacityFull, decision.Reason)
	assert.Contains(t, decision.Message, "limite para dia útil: 2")
}

func TestTryAdmitZeroCapacityPeriod(t *testing.T) {
	// weekend intermediate capacity is 0, so the period is closed
	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	decision, err := TryAdmit(Request{
		Date:      saturday,
		Period:    domain.PeriodIntermediate,
		Team:      testTeam(),
		Occupancy: 0,
	}, noHolidays)

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, ReasonCapacityFull, decision.Reason)
	assert.Equal(t, int32(0), decision.Capacity)
}

func TestTryAdmitDuplicateWinsOverCapacity(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// slot is also full; the duplicate reason must still win
	decision, err := TryAdmit(Request{
		Date:           monday,
		Period:         domain.PeriodMorning,
		Team:           testTeam(),
		Occupancy:      2,
		AssigneeBooked: true,
	}, noHolidays)

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, ReasonDuplicate, decision.Reason)
}

func TestTryAdmitHolidayUsesWeekendCapacity(t *testing.T) {
	// a Wednesday registered as holiday: weekday morning capacity is 2 but
	// the holiday flips it to the weekend capacity of 1
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	holidays := func(d time.Time) bool { return d.Equal(wednesday) }

	first, err := TryAdmit(Request{
		Date:      wednesday,
		Period:    domain.PeriodMorning,
		Team:      testTeam(),
		Occupancy: 0,
	}, holidays)
	require.NoError(t, err)
	assert.True(t, first.Accepted)
	assert.Equal(t, WeekendHoliday, first.DayClass)
	assert.Equal(t, int32(1), first.Capacity)

	second, err := TryAdmit(Request{
		Date:      wednesday,
		Period:    domain.PeriodMorning,
		Team:      testTeam(),
		Occupancy: 1,
	}, holidays)
	require.NoError(t, err)
	assert.False(t, second.Accepted)
	assert.Equal(t, ReasonCapacityFull, second.Reason)
}

func TestTryAdmitConfigurationErrors(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := TryAdmit(Request{
		Date:   monday,
		Period: "DAWN",
		Team:   testTeam(),
	}, noHolidays)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "period", cfgErr.Field)

	_, err = TryAdmit(Request{
		Date:      monday,
		Period:    domain.PeriodMorning,
		Team:      testTeam(),
		Occupancy: -1,
	}, noHolidays)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "occupancy", cfgErr.Field)

	_, err = TryAdmit(Request{
		Date:   monday,
		Period: domain.PeriodMorning,
		Team:   nil,
	}, noHolidays)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "team", cfgErr.Field)

	broken := testTeam()
	broken.WeekendNightSlots = -1
	_, err = TryAdmit(Request{
		Date:   monday,
		Period: domain.PeriodMorning,
		Team:   broken,
	}, noHolidays)
	require.ErrorAs(t, err, &cfgErr)
}

func TestTryAdmitIsDeterministic(t *testing.T) {
	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	req := Request{
		Date:      saturday,
		Period:    domain.PeriodNight,
		Team:      testTeam(),
		Occupancy: 0,
	}

	first, err := TryAdmit(req, noHolidays)
	require.NoError(t, err)
	second, err := TryAdmit(req, noHolidays)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
