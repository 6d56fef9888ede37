package cnab

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompany() CompanyProfile {
	return CompanyProfile{
		CNPJ:         "12.345.678/0001-99",
		LegalName:    "Clínica Furquim Fisioterapia LTDA",
		Account:      "123456",
		AccountDigit: "7",
		Street:       "Rua das Acácias",
		Number:       "120",
		Complement:   "Sala 3",
		City:         "São Paulo",
		PostalCode:   "01310-100",
		State:        "SP",
	}
}

func testGeneratedAt() time.Time {
	return time.Date(2025, time.June, 5, 14, 30, 45, 0, time.UTC)
}

func encodeOne(t *testing.T, p PaymentInstruction) []string {
	t.Helper()
	file, err := Encode(testCompany(), []PaymentInstruction{p}, 1, testGeneratedAt())
	require.NoError(t, err)
	return strings.Split(file.Content, "\n")
}

func TestEncodeStructure(t *testing.T) {
	payments := []PaymentInstruction{
		{Name: "Ana Souza", TaxID: "11144477735", PixKeyType: PixCPF, PixKey: "11144477735", Amount: decimal.NewFromFloat(1234.56)},
		{Name: "Bruno Lima", TaxID: "22255588846", PixKeyType: PixEmail, PixKey: "bruno@example.com.br", Amount: decimal.NewFromFloat(800)},
	}

	file, err := Encode(testCompany(), payments, 1, testGeneratedAt())
	require.NoError(t, err)

	assert.Equal(t, "C1240_001_0000001.REM", file.Name)

	lines := strings.Split(file.Content, "\n")
	require.Len(t, lines, 2*len(payments)+4)
	for i, line := range lines {
		assert.Len(t, line, 240, "line %d", i)
	}

	// Every record carries the bank code and the expected record type.
	assert.Equal(t, "077", lines[0][0:3])
	assert.Equal(t, "0", lines[0][7:8])
	assert.Equal(t, "1", lines[1][7:8])
	assert.Equal(t, "3", lines[2][7:8])
	assert.Equal(t, "5", lines[len(lines)-2][7:8])
	assert.Equal(t, "9", lines[len(lines)-1][7:8])

	// Segments alternate A/B with an increasing detail sequence.
	assert.Equal(t, "A", lines[2][13:14])
	assert.Equal(t, "00001", lines[2][8:13])
	assert.Equal(t, "B", lines[3][13:14])
	assert.Equal(t, "00002", lines[3][8:13])
	assert.Equal(t, "A", lines[4][13:14])
	assert.Equal(t, "00003", lines[4][8:13])
	assert.Equal(t, "B", lines[5][13:14])
	assert.Equal(t, "00004", lines[5][8:13])
}

func TestEncodeFileHeader(t *testing.T) {
	lines := encodeOne(t, PaymentInstruction{
		Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromInt(100),
	})
	header := lines[0]

	assert.Equal(t, "12345678000199", header[18:32])
	assert.Equal(t, "CLINICA FURQUIM FISIOTERAPIA L", header[72:102])
	assert.Contains(t, header, "BANCO INTER")
	assert.Equal(t, "05062025", header[143:151])
	assert.Equal(t, "143045", header[151:157])
	assert.Equal(t, "000001", header[157:163])
}

func TestEncodeSegmentAAmount(t *testing.T) {
	lines := encodeOne(t, PaymentInstruction{
		Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromFloat(1234.56),
	})
	segA := lines[2]

	assert.Equal(t, "000000000123456", segA[119:134])
	assert.Equal(t, "ANA SOUZA", strings.TrimRight(segA[43:73], " "))
	assert.Equal(t, "BRL", segA[101:104])
}

func TestEncodeSegmentBTaxIDKey(t *testing.T) {
	lines := encodeOne(t, PaymentInstruction{
		Name: "Ana Souza", TaxID: "111.444.777-35", PixKeyType: PixCPF, PixKey: "111.444.777-35", Amount: decimal.NewFromInt(100),
	})
	segB := lines[3]

	assert.Equal(t, "03 ", segB[14:17])
	assert.Equal(t, "1", segB[17:18])
	assert.Equal(t, "00011144477735", segB[18:32])
	assert.Equal(t, "", strings.TrimSpace(segB[127:226]))
}

func TestEncodeSegmentBCNPJKey(t *testing.T) {
	lines := encodeOne(t, PaymentInstruction{
		Name: "Fisio Prime LTDA", TaxID: "12345678000199", PixKeyType: PixCNPJ, PixKey: "", Amount: decimal.NewFromInt(100),
	})
	segB := lines[3]

	// Empty PixKey falls back to the payee tax ID.
	assert.Equal(t, "2", segB[17:18])
	assert.Equal(t, "12345678000199", segB[18:32])
}

func TestEncodeSegmentBFreeFormKey(t *testing.T) {
	lines := encodeOne(t, PaymentInstruction{
		Name: "Ana Souza", TaxID: "11144477735", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromInt(100),
	})
	segB := lines[3]

	assert.Equal(t, "02 ", segB[14:17])
	assert.Equal(t, "00000000000000", segB[18:32])
	assert.Equal(t, "ana@example.com.br", strings.TrimRight(segB[127:226], " "))
}

func TestEncodeLotTrailerTotals(t *testing.T) {
	payments := []PaymentInstruction{
		{Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromFloat(60.50)},
		{Name: "Bruno Lima", PixKeyType: PixEmail, PixKey: "bruno@example.com.br", Amount: decimal.NewFromFloat(39.50)},
	}

	file, err := Encode(testCompany(), payments, 1, testGeneratedAt())
	require.NoError(t, err)

	lines := strings.Split(file.Content, "\n")
	lot := lines[len(lines)-2]

	// Header + trailer + two segments per payment.
	assert.Equal(t, "000006", lot[17:23])
	// 60.50 + 39.50 = 100.00 in cents.
	assert.Equal(t, "000000000000010000", lot[23:41])
}

func TestEncodeFileTrailerCounts(t *testing.T) {
	payments := []PaymentInstruction{
		{Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromInt(100)},
		{Name: "Bruno Lima", PixKeyType: PixEmail, PixKey: "bruno@example.com.br", Amount: decimal.NewFromInt(100)},
		{Name: "Carla Dias", PixKeyType: PixEmail, PixKey: "carla@example.com.br", Amount: decimal.NewFromInt(100)},
	}

	file, err := Encode(testCompany(), payments, 42, testGeneratedAt())
	require.NoError(t, err)

	assert.Equal(t, "C1240_001_0000042.REM", file.Name)

	lines := strings.Split(file.Content, "\n")
	trailer := lines[len(lines)-1]

	assert.Equal(t, "000001", trailer[17:23])
	assert.Equal(t, "000010", trailer[23:29])
}

func TestEncodeFiltersNonPositiveAmounts(t *testing.T) {
	payments := []PaymentInstruction{
		{Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromInt(100)},
		{Name: "Bruno Lima", PixKeyType: PixEmail, PixKey: "bruno@example.com.br", Amount: decimal.Zero},
		{Name: "Carla Dias", PixKeyType: PixEmail, PixKey: "carla@example.com.br", Amount: decimal.NewFromInt(-50)},
	}

	file, err := Encode(testCompany(), payments, 1, testGeneratedAt())
	require.NoError(t, err)

	lines := strings.Split(file.Content, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[2], "ANA SOUZA")
	assert.NotContains(t, file.Content, "BRUNO")
	assert.NotContains(t, file.Content, "CARLA")
}

func TestEncodeAllAmountsFiltered(t *testing.T) {
	payments := []PaymentInstruction{
		{Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.Zero},
	}

	_, err := Encode(testCompany(), payments, 1, testGeneratedAt())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "no payments with a positive amount")
}

func TestEncodeRejectsInvalidFileSeq(t *testing.T) {
	payments := []PaymentInstruction{
		{Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromInt(100)},
	}

	_, err := Encode(testCompany(), payments, 0, testGeneratedAt())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file sequence", vErr.Field)
}

func TestEncodeRejectsIncompleteCompany(t *testing.T) {
	company := testCompany()
	company.City = ""

	payments := []PaymentInstruction{
		{Name: "Ana Souza", PixKeyType: PixEmail, PixKey: "ana@example.com.br", Amount: decimal.NewFromInt(100)},
	}

	_, err := Encode(company, payments, 1, testGeneratedAt())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "city", vErr.Field)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "JOSE DA SILVA", Normalize("José da Silva"))
	assert.Equal(t, "CLINICA ACAO10", Normalize("Clínica Ação-10!"))
	assert.Equal(t, "", Normalize("@#$%"))
}

func TestNormalizePixKeyType(t *testing.T) {
	tests := []struct {
		raw  string
		want PixKeyType
	}{
		{"CPF", PixCPF},
		{"cpf", PixCPF},
		{"CNPJ", PixCNPJ},
		{"TELEFONE", PixCelular},
		{"celular", PixCelular},
		{"CHAVE_ALEATORIA", PixAleatoria},
		{"RANDOM", PixAleatoria},
		{"aleatoria", PixAleatoria},
		{"DADOS_BANCARIOS", PixDadosBancarios},
		{"EMAIL", PixEmail},
		{"", PixEmail},
		{"whatsapp", PixEmail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePixKeyType(tt.raw), "raw %q", tt.raw)
	}
}
