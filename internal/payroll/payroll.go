// Package payroll computes the monthly payment figures of a physiotherapist
// from shift counts and contract values. All arithmetic is decimal; the
// package performs no I/O.
package payroll

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthRange resolves a reference month ("YYYY-MM") to its first instant and
// the first instant of the following month (half-open interval).
func MonthRange(month string) (start, end time.Time, err error) {
	if !monthPattern.MatchString(month) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid reference month %q, expected YYYY-MM", month)
	}

	start, err = time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// Summary is the computed payment of one physiotherapist for one month.
type Summary struct {
	PhysiotherapistID int64               `json:"physiotherapistId"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	ContractType      domain.ContractType `json:"contractType"`
	TotalShifts       int                 `json:"totalShifts"`
	TotalShiftValue   decimal.Decimal     `json:"totalShiftValue"`
	AdditionalValue   decimal.Decimal     `json:"additionalValue"`
	Discount          decimal.Decimal     `json:"discount"`
	GrossValue        decimal.Decimal     `json:"grossValue"`
	NetValue          decimal.Decimal     `json:"netValue"`
}

// Compute derives the month's figures for one physiotherapist: shifts times
// the hour value, plus the fixed additional, minus the RPA discount (zero for
// other contract types).
func Compute(p *domain.Physiotherapist, shiftCount int, discount decimal.Decimal) Summary {
	shiftValue := p.HourValue.Mul(decimal.NewFromInt(int64(shiftCount)))
	gross := shiftValue.Add(p.AdditionalValue)

	if p.ContractType != domain.ContractRPA {
		discount = decimal.Zero
	}
	net := gross.Sub(discount)

	return Summary{
		PhysiotherapistID: p.ID,
		Name:              p.Name,
		Email:             p.Email,
		ContractType:      p.ContractType,
		TotalShifts:       shiftCount,
		TotalShiftValue:   shiftValue,
		AdditionalValue:   p.AdditionalValue,
		Discount:          discount,
		GrossValue:        gross,
		NetValue:          net,
	}
}
