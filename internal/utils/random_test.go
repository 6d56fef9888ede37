package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cpfCheckDigit(digits []int, weightStart int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (weightStart - i)
	}
	return (sum * 10 % 11) % 10
}

func TestGenerateRandomCPF(t *testing.T) {
	for i := 0; i < 50; i++ {
		cpf := GenerateRandomCPF()
		require.Len(t, cpf, 11)

		d := make([]int, 11)
		for j, r := range cpf {
			require.True(t, r >= '0' && r <= '9')
			d[j] = int(r - '0')
		}

		assert.Equal(t, cpfCheckDigit(d[:9], 10), d[9], "cpf %s", cpf)
		assert.Equal(t, cpfCheckDigit(d[:10], 11), d[10], "cpf %s", cpf)
	}
}

func TestUsernameFromName(t *testing.T) {
	username := UsernameFromName("José da Silva")

	assert.True(t, strings.HasPrefix(username, "jose.da.silva"), "username %s", username)
	assert.Regexp(t, regexp.MustCompile(`^jose\.da\.silva\d{1,3}$`), username)
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), GenerateRandomOTP())
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(16)
	assert.Len(t, password, 16)

	assert.NotEqual(t, GenerateRandomPassword(16), GenerateRandomPassword(16))
}

func TestGenerateRandomBrazilianName(t *testing.T) {
	name := GenerateRandomBrazilianName()
	parts := strings.Fields(name)
	require.Len(t, parts, 2)
	assert.Contains(t, commonFirstNames, parts[0])
	assert.Contains(t, commonSurnames, parts[1])
}
