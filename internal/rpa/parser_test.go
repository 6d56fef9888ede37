package rpa

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"R$ 1.234,56", "1234.56"},
		{"12.345.678,90", "12345678.90"},
		{"0,00", "0.00"},
		{"sem valor", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "raw %q got %s", tt.raw, got)
	}
}

const sampleReceipt = `
RECIBO DE PAGAMENTO A AUTÔNOMO
Data de Emissão: 05/06/2025

1. Valor Serviço Prestado    R$ 1.500,00

DESCONTOS
2. Dedução INSS              165,00
3. IRRF                      37,50
4. ISS                       75,00
5. Outros Descontos          10,00
TOTAL                        287,50

Valor Líquido                R$ 1.212,50
`

func TestExtractLabelledValues(t *testing.T) {
	v := Extract(sampleReceipt)
	require.NotNil(t, v)

	assert.True(t, v.ServiceValue.Equal(decimal.NewFromFloat(1500)), "service %s", v.ServiceValue)
	assert.True(t, v.INSS.Equal(decimal.NewFromFloat(165)), "inss %s", v.INSS)
	assert.True(t, v.IRRF.Equal(decimal.NewFromFloat(37.50)), "irrf %s", v.IRRF)
	assert.True(t, v.ISS.Equal(decimal.NewFromFloat(75)), "iss %s", v.ISS)
	assert.True(t, v.OtherDiscounts.Equal(decimal.NewFromFloat(10)), "other %s", v.OtherDiscounts)
	assert.True(t, v.TotalDiscounts.Equal(decimal.NewFromFloat(287.50)), "total %s", v.TotalDiscounts)
	assert.True(t, v.NetValue.Equal(decimal.NewFromFloat(1212.50)), "net %s", v.NetValue)
}

func TestExtractDerivesMissingTotals(t *testing.T) {
	text := `
Valor Serviço Prestado 2.000,00
Dedução INSS 220,00
IRRF 50,00
`
	v := Extract(text)

	// No TOTAL line: the discount total is the sum of the deductions, and
	// the net value follows from it.
	assert.True(t, v.TotalDiscounts.Equal(decimal.NewFromFloat(270)), "total %s", v.TotalDiscounts)
	assert.True(t, v.NetValue.Equal(decimal.NewFromFloat(1730)), "net %s", v.NetValue)
}

func TestExtractServiceValueFallback(t *testing.T) {
	// No recognizable labels: the largest amount on the page is taken as
	// the service value.
	v := Extract("recibo 450,00 honorarios 1.800,00 referencia 120,00")

	assert.True(t, v.ServiceValue.Equal(decimal.NewFromFloat(1800)), "service %s", v.ServiceValue)
	assert.True(t, v.TotalDiscounts.IsZero())
	assert.True(t, v.NetValue.Equal(decimal.NewFromFloat(1800)), "net %s", v.NetValue)
}

func TestExtractISSIgnoresEmissao(t *testing.T) {
	// "Emissão" folds to EMISSAO; the ISS label must not match inside it.
	v := Extract(`
Data de Emissão 05,06
ISS 75,00
`)

	assert.True(t, v.ISS.Equal(decimal.NewFromFloat(75)), "iss %s", v.ISS)
}

func TestExtractHandlesMangledSpacing(t *testing.T) {
	// Extracted PDF text often breaks labels across lines and runs.
	v := Extract("VALOR   SERVICO\nPRESTADO  950,00\nVALOR\nLIQUIDO  900,00")

	assert.True(t, v.ServiceValue.Equal(decimal.NewFromFloat(950)), "service %s", v.ServiceValue)
	assert.True(t, v.NetValue.Equal(decimal.NewFromFloat(900)), "net %s", v.NetValue)
}

func TestExtractEmptyText(t *testing.T) {
	v := Extract("")
	require.NotNil(t, v)

	assert.True(t, v.ServiceValue.IsZero())
	assert.True(t, v.NetValue.IsZero())
}
