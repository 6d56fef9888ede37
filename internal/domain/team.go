package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team is a roster team with one slot capacity per (day class, period).
// A capacity of 0 means the period is closed for that day class.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	WeekdayMorningSlots      int32 `json:"weekdayMorningSlots"`
	WeekdayIntermediateSlots int32 `json:"weekdayIntermediateSlots"`
	WeekdayAfternoonSlots    int32 `json:"weekdayAfternoonSlots"`
	WeekdayNightSlots        int32 `json:"weekdayNightSlots"`

	WeekendMorningSlots      int32 `json:"weekendMorningSlots"`
	WeekendIntermediateSlots int32 `json:"weekendIntermediateSlots"`
	WeekendAfternoonSlots    int32 `json:"weekendAfternoonSlots"`
	WeekendNightSlots        int32 `json:"weekendNightSlots"`

	ShiftValue decimal.Decimal `json:"shiftValue"`
	CreatedAt  time.Time       `json:"createdAt"`
	Version    int32           `json:"-"`
}
