package cnab

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// recordLength is the fixed width of every CNAB 240 record.
const recordLength = 240

// stripDiacritics decomposes and drops combining marks, so "José" becomes
// "Jose" before the alphanumeric filter runs.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares text for alphanumeric fields: diacritics stripped,
// anything that is not a letter, digit or space dropped, result uppercased.
// The bank format requires 7-bit-clean uppercase text.
func Normalize(s string) string {
	folded, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(unicode.ToUpper(r))
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// onlyDigits drops every non-digit byte.
func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// alphaField normalizes, right-pads with spaces and truncates to width.
// Padding before truncation keeps short contents left-aligned.
func alphaField(v string, width int) string {
	s := Normalize(v)
	if len(s) < width {
		s += strings.Repeat(" ", width-len(s))
	}
	return s[:width]
}

// numericField keeps digits only and left-pads with zeros. Oversized values
// keep the rightmost digits: least-significant digits survive, which is the
// behavior sequence and monetary fields need.
func numericField(v string, width int) string {
	digits := onlyDigits(v)
	if len(digits) > width {
		digits = digits[len(digits)-width:]
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

// pixKeyField pads and truncates without normalizing: e-mail addresses and
// random keys legitimately carry '@', '.' and '-'.
func pixKeyField(v string, width int) string {
	if len(v) < width {
		v += strings.Repeat(" ", width-len(v))
	}
	return v[:width]
}

type fieldKind int

const (
	alpha fieldKind = iota
	numeric
	pixKey
)

// field is one column of a record layout: what to write, how wide, and which
// formatting rule applies.
type field struct {
	kind  fieldKind
	width int
	value string
}

func a(value string, width int) field { return field{kind: alpha, width: width, value: value} }
func n(value string, width int) field { return field{kind: numeric, width: width, value: value} }
func k(value string, width int) field { return field{kind: pixKey, width: width, value: value} }

// buildRecord formats each field in order and forces the line to exactly 240
// characters. The final pad/truncate should be a no-op when every width in
// the layout is respected; it exists so a layout mistake can never leak a
// malformed line into the file.
func buildRecord(fields []field) string {
	var b strings.Builder
	b.Grow(recordLength)
	for _, f := range fields {
		switch f.kind {
		case alpha:
			b.WriteString(alphaField(f.value, f.width))
		case numeric:
			b.WriteString(numericField(f.value, f.width))
		case pixKey:
			b.WriteString(pixKeyField(f.value, f.width))
		}
	}

	line := b.String()
	if len(line) < recordLength {
		line += strings.Repeat(" ", recordLength-len(line))
	}
	return line[:recordLength]
}
