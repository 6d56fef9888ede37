package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2025-06")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthRangeYearBoundary(t *testing.T) {
	start, end, err := MonthRange("2025-12")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthRangeRejectsInvalidInput(t *testing.T) {
	for _, month := range []string{"", "2025", "2025-13", "2025-00", "2025-6", "06-2025", "2025/06", "2025-06-01"} {
		_, _, err := MonthRange(month)
		assert.Error(t, err, "month %q", month)
	}
}

func testPhysiotherapist(contract domain.ContractType) *domain.Physiotherapist {
	return &domain.Physiotherapist{
		ID:              7,
		Name:            "Ana Souza",
		Email:           "ana@example.com.br",
		ContractType:    contract,
		HourValue:       decimal.NewFromFloat(150.50),
		AdditionalValue: decimal.NewFromInt(200),
	}
}

func TestComputeRPA(t *testing.T) {
	p := testPhysiotherapist(domain.ContractRPA)

	s := Compute(p, 10, decimal.NewFromFloat(120.30))

	assert.Equal(t, int64(7), s.PhysiotherapistID)
	assert.Equal(t, "Ana Souza", s.Name)
	assert.Equal(t, domain.ContractRPA, s.ContractType)
	assert.Equal(t, 10, s.TotalShifts)
	assert.True(t, s.TotalShiftValue.Equal(decimal.NewFromFloat(1505)), "shift value %s", s.TotalShiftValue)
	assert.True(t, s.GrossValue.Equal(decimal.NewFromFloat(1705)), "gross %s", s.GrossValue)
	assert.True(t, s.Discount.Equal(decimal.NewFromFloat(120.30)), "discount %s", s.Discount)
	assert.True(t, s.NetValue.Equal(decimal.NewFromFloat(1584.70)), "net %s", s.NetValue)
}

func TestComputeIgnoresDiscountForPJ(t *testing.T) {
	p := testPhysiotherapist(domain.ContractPJ)

	s := Compute(p, 4, decimal.NewFromInt(300))

	assert.True(t, s.Discount.IsZero(), "discount %s", s.Discount)
	assert.True(t, s.GrossValue.Equal(s.NetValue), "gross %s net %s", s.GrossValue, s.NetValue)
}

func TestComputeIgnoresDiscountWithoutContract(t *testing.T) {
	p := testPhysiotherapist(domain.ContractNil)

	s := Compute(p, 1, decimal.NewFromInt(50))

	assert.True(t, s.Discount.IsZero())
	assert.True(t, s.NetValue.Equal(decimal.NewFromFloat(350.50)), "net %s", s.NetValue)
}

func TestComputeZeroShifts(t *testing.T) {
	p := testPhysiotherapist(domain.ContractRPA)

	s := Compute(p, 0, decimal.Zero)

	assert.True(t, s.TotalShiftValue.IsZero())
	// The fixed additional is still owed with no shifts worked.
	assert.True(t, s.GrossValue.Equal(decimal.NewFromInt(200)), "gross %s", s.GrossValue)
	assert.True(t, s.NetValue.Equal(decimal.NewFromInt(200)), "net %s", s.NetValue)
}
