// Package rpa extracts payment values from the text of an RPA (autonomous
// service receipt) document. The input is plain text already pulled out of
// the PDF by an external tool; this package only does the label-anchored
// value hunting. The heuristics follow the clinic's receipt layout and are
// deliberately forgiving about spacing and number formats.
package rpa

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ReceiptValues are the monetary figures of one RPA receipt.
type ReceiptValues struct {
	ServiceValue   decimal.Decimal `json:"serviceValue"`
	OtherDiscounts decimal.Decimal `json:"otherDiscounts"`
	ISS            decimal.Decimal `json:"iss"`
	IRRF           decimal.Decimal `json:"irrf"`
	INSS           decimal.Decimal `json:"inss"`
	TotalDiscounts decimal.Decimal `json:"totalDiscounts"`
	NetValue       decimal.Decimal `json:"netValue"`
}

var (
	foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	spaceRun  = regexp.MustCompile(`\s+`)

	// moneyToken matches "1.234,56", "1,234.56", "1234.56" and "1234,56".
	moneyToken = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})*[.,]\d{2}`)

	reNetValue       = labelled(`VALOR LIQUIDO`)
	reServiceValue   = labelled(`VALOR SERVICO PRESTADO`)
	reIRRF           = labelled(`IRRF`)
	reINSS           = labelled(`DEDUCAO INSS`)
	reISS            = labelled(`ISS`)
	reOtherDiscounts = labelled(`OUTROS DESCONTOS`)
	reDiscountTotal  = regexp.MustCompile(`DESCONTOS[\s\S]*?TOTAL\D*?(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`)
)

// labelled builds a pattern matching the first money token after a label.
// Labels may carry item numbers ("5.IRRF") and arbitrary separators.
func labelled(label string) *regexp.Regexp {
	words := strings.Split(label, " ")
	return regexp.MustCompile(`(?:\d\s*\.\s*)?\b` + strings.Join(words, `\s*`) + `\b\D{0,10}?(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`)
}

// ParseAmount converts a money token to a decimal, accepting both Brazilian
// ("1.234,56") and US ("1,234.56") formats. The rightmost separator is the
// decimal mark; the other one is a thousands separator.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == ',' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	var normalized string
	switch {
	case lastComma > lastDot:
		normalized = strings.ReplaceAll(cleaned, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	case lastDot > lastComma:
		normalized = strings.ReplaceAll(cleaned, ",", "")
	default:
		normalized = strings.Replace(cleaned, ",", ".", 1)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// prepare uppercases, folds diacritics and collapses whitespace so label
// matching survives the erratic spacing of extracted PDF text.
func prepare(text string) string {
	folded, _, err := transform.String(foldMarks, text)
	if err != nil {
		folded = text
	}
	return spaceRun.ReplaceAllString(strings.ToUpper(folded), " ")
}

func firstMatch(re *regexp.Regexp, text string) decimal.Decimal {
	if m := re.FindStringSubmatch(text); m != nil {
		return ParseAmount(m[1])
	}
	return decimal.Zero
}

// Extract pulls the receipt values out of extracted document text. Missing
// totals are derived: the discount total falls back to the sum of the
// individual deductions, and the net value to service minus discounts.
func Extract(text string) *ReceiptValues {
	prepared := prepare(text)

	v := &ReceiptValues{
		NetValue:       firstMatch(reNetValue, prepared),
		ServiceValue:   firstMatch(reServiceValue, prepared),
		IRRF:           firstMatch(reIRRF, prepared),
		INSS:           firstMatch(reINSS, prepared),
		ISS:            firstMatch(reISS, prepared),
		OtherDiscounts: firstMatch(reOtherDiscounts, prepared),
		TotalDiscounts: firstMatch(reDiscountTotal, prepared),
	}

	if v.ServiceValue.IsZero() {
		// Fallback: the service value is the largest amount on the receipt.
		for _, token := range moneyToken.FindAllString(prepared, -1) {
			if amount := ParseAmount(token); amount.GreaterThan(v.ServiceValue) {
				v.ServiceValue = amount
			}
		}
	}

	if v.TotalDiscounts.IsZero() {
		v.TotalDiscounts = v.OtherDiscounts.Add(v.ISS).Add(v.IRRF).Add(v.INSS)
	}

	if v.NetValue.IsZero() && v.ServiceValue.IsPositive() {
		v.NetValue = v.ServiceValue.Sub(v.TotalDiscounts)
	}

	return v
}
