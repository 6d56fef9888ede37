package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var commonFirstNames = []string{
	"Ana", "Beatriz", "Bruno", "Camila", "Carlos", "Daniela", "Eduardo",
	"Fernanda", "Gabriel", "Helena", "João", "Juliana", "Larissa", "Lucas",
	"Mariana", "Mateus", "Patrícia", "Paulo", "Rafael", "Renata", "Thiago",
}

var commonSurnames = []string{
	"Almeida", "Araújo", "Barbosa", "Carvalho", "Costa", "Ferreira", "Gomes",
	"Lima", "Martins", "Oliveira", "Pereira", "Ribeiro", "Rocha", "Santos",
	"Silva", "Souza", "Teixeira", "Vieira",
}

func GenerateRandomBrazilianName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + surname
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// UsernameFromName lowercases the full name, folds accents and appends a few
// random digits: "José Silva" -> "jose.silva123".
func UsernameFromName(name string) string {
	folded, _, err := transform.String(foldMarks, name)
	if err != nil {
		folded = name
	}

	parts := strings.Fields(strings.ToLower(folded))
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}
	return username
}

var digits = "0123456789"

// GenerateRandomCPF produces an 11-digit document with valid check digits.
func GenerateRandomCPF() string {
	d := make([]int, 11)
	for i := 0; i < 9; i++ {
		d[i] = rand.Intn(10)
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (10 - i)
	}
	d[9] = (sum * 10 % 11) % 10

	sum = 0
	for i := 0; i < 10; i++ {
		sum += d[i] * (11 - i)
	}
	d[10] = (sum * 10 % 11) % 10

	var b strings.Builder
	for _, v := range d {
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
