package contract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"0", "R$ 0,00"},
		{"9.5", "R$ 9,50"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-120.30", "-R$ 120,30"},
	}
	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.value))
		assert.Equal(t, tt.want, got, "value %s", tt.value)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/06/2025", FormatDate(time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)))
}
