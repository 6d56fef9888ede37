// Package cnab encodes PIX payment batches as CNAB 240 remittance files in
// the Banco Inter profile of the FEBRABAN layout. Encoding is all-or-nothing
// and fully in-memory; each call is independent, so concurrent calls need no
// coordination.
package cnab

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fixed bank constants of the Banco Inter remittance profile.
const (
	bankCode          = "077"
	bankName          = "BANCO INTER"
	agency            = "0001"
	agencyDigit       = "9"
	fileLayoutVersion = "107"
	lotLayoutVersion  = "046"
	serviceType       = "30" // salary payments
	launchForm        = "45" // PIX transfer
	recordingDensity  = "01600"
)

// PixKeyType is the canonical declared type of a PIX key.
type PixKeyType string

const (
	PixCPF            PixKeyType = "CPF"
	PixCNPJ           PixKeyType = "CNPJ"
	PixEmail          PixKeyType = "EMAIL"
	PixCelular        PixKeyType = "CELULAR"
	PixAleatoria      PixKeyType = "ALEATORIA"
	PixDadosBancarios PixKeyType = "DADOS_BANCARIOS"
)

// pixInitiationCodes maps the key type to the Segment-B initiation form
// code. CPF and CNPJ share a code.
var pixInitiationCodes = map[PixKeyType]string{
	PixCelular:        "01",
	PixEmail:          "02",
	PixCPF:            "03",
	PixCNPJ:           "03",
	PixAleatoria:      "04",
	PixDadosBancarios: "05",
}

// NormalizePixKeyType folds the synonyms seen across the clinic's data entry
// surfaces into the canonical enum. Unknown or empty input defaults to EMAIL.
func NormalizePixKeyType(raw string) PixKeyType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CPF":
		return PixCPF
	case "CNPJ":
		return PixCNPJ
	case "CELULAR", "TELEFONE":
		return PixCelular
	case "ALEATORIA", "CHAVE_ALEATORIA", "RANDOM":
		return PixAleatoria
	case "DADOS_BANCARIOS":
		return PixDadosBancarios
	default:
		return PixEmail
	}
}

// taxIDKey reports whether the key type carries the payee's tax ID instead
// of a free-form key.
func (t PixKeyType) taxIDKey() bool {
	return t == PixCPF || t == PixCNPJ
}

// CompanyProfile identifies the paying company. All fields except Complement
// are required.
type CompanyProfile struct {
	CNPJ         string
	LegalName    string
	Account      string
	AccountDigit string
	Street       string
	Number       string
	Complement   string
	City         string
	PostalCode   string
	State        string
}

// PaymentInstruction is one payee entry of the batch. Instructions with a
// non-positive amount are dropped before encoding.
type PaymentInstruction struct {
	Name       string
	TaxID      string
	PixKeyType PixKeyType
	PixKey     string
	Amount     decimal.Decimal
}

// File is the encoded remittance, ready to be written with a .REM extension.
type File struct {
	Name    string
	Content string
}

// ValidationError marks input the encoder refuses to turn into a file. The
// call is fatal and retrying with identical input is never useful.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cnab: %s", e.Detail)
	}
	return fmt.Sprintf("cnab: %s: %s", e.Field, e.Detail)
}

func (c *CompanyProfile) validate() error {
	required := []struct {
		field string
		// normalized is the value after the formatting rule that will apply
		// to it; a field that normalizes to nothing would emit blank columns.
		normalized string
	}{
		{"cnpj", onlyDigits(c.CNPJ)},
		{"legal name", Normalize(c.LegalName)},
		{"account", onlyDigits(c.Account)},
		{"account digit", onlyDigits(c.AccountDigit)},
		{"street", Normalize(c.Street)},
		{"number", onlyDigits(c.Number)},
		{"city", Normalize(c.City)},
		{"postal code", onlyDigits(c.PostalCode)},
		{"state", Normalize(c.State)},
	}
	for _, r := range required {
		if strings.TrimSpace(r.normalized) == "" {
			return &ValidationError{Field: r.field, Detail: "required company field is empty"}
		}
	}
	return nil
}

// cents converts a monetary amount to an integer count of the minor unit,
// rounding half away from zero (round(amount * 100)).
func cents(v decimal.Decimal) string {
	return v.Shift(2).Round(0).String()
}

// Encode builds the remittance file for the given company and payment batch.
// fileSeq feeds both the file name and the header sequence field; generatedAt
// stamps the header date/time and the scheduled payment date.
func Encode(company CompanyProfile, payments []PaymentInstruction, fileSeq int, generatedAt time.Time) (*File, error) {
	if fileSeq <= 0 {
		return nil, &ValidationError{Field: "file sequence", Detail: "must be a positive integer"}
	}
	if err := company.validate(); err != nil {
		return nil, err
	}

	// Documented filter, not an error: zero and negative amounts never reach
	// the file.
	payable := make([]PaymentInstruction, 0, len(payments))
	for _, p := range payments {
		if p.Amount.IsPositive() {
			payable = append(payable, p)
		}
	}
	if len(payable) == 0 {
		return nil, &ValidationError{Detail: "no payments with a positive amount to encode"}
	}

	genDate := generatedAt.Format("02012006")
	genTime := generatedAt.Format("150405")
	companyCNPJ := onlyDigits(company.CNPJ)
	postal := numericField(company.PostalCode, 8)

	lines := make([]string, 0, 2*len(payable)+4)

	// File header.
	lines = append(lines, buildRecord([]field{
		n(bankCode, 3),              // bank code
		n("0000", 4),                // service lot
		n("0", 1),                   // record type
		a("", 9),                    // FEBRABAN reserved
		n("2", 1),                   // inscription type (CNPJ)
		n(companyCNPJ, 14),          // company CNPJ
		a("", 20),                   // agreement code
		n(agency, 5),                // agency
		a(agencyDigit, 1),           // agency digit
		n(company.Account, 12),      // account
		n(company.AccountDigit, 1),  // account digit
		a("", 1),                    // agency/account digit
		a(company.LegalName, 30),    // company name
		a(bankName, 30),             // bank name
		a("", 10),                   // FEBRABAN reserved
		n("1", 1),                   // remittance code
		n(genDate, 8),               // generation date DDMMYYYY
		n(genTime, 6),               // generation time HHMMSS
		n(strconv.Itoa(fileSeq), 6), // file sequence number
		n(fileLayoutVersion, 3),     // layout version
		n(recordingDensity, 5),      // recording density
		a("", 20),                   // bank reserved
		a("", 20),                   // company reserved
		a("", 29),                   // FEBRABAN reserved
	}))

	// Lot header.
	lines = append(lines, buildRecord([]field{
		n(bankCode, 3),             // bank code
		n("0001", 4),               // service lot
		n("1", 1),                  // record type
		a("C", 1),                  // operation type (credit)
		n(serviceType, 2),          // service type
		n(launchForm, 2),           // launch form
		n(lotLayoutVersion, 3),     // layout version
		a("", 1),                   // FEBRABAN reserved
		n("2", 1),                  // inscription type (CNPJ)
		n(companyCNPJ, 14),         // company CNPJ
		a("", 20),                  // agreement code
		n(agency, 5),               // agency
		n(agencyDigit, 1),          // agency digit
		n(company.Account, 12),     // account
		n(company.AccountDigit, 1), // account digit
		a("", 1),                   // agency/account digit
		a(company.LegalName, 30),   // company name
		a("", 40),                  // message
		a(company.Street, 30),      // street
		n(company.Number, 5),       // number
		a(company.Complement, 15),  // complement
		a(company.City, 20),        // city
		n(postal[:5], 5),           // postal code
		n(postal[5:], 3),           // postal code suffix
		a(company.State, 2),        // state
		a("", 8),                   // FEBRABAN reserved
		a("", 10),                  // occurrence codes
	}))

	lotSum := decimal.Zero
	recordSeq := 0

	for _, p := range payable {
		recordSeq++
		lotSum = lotSum.Add(p.Amount)

		// Segment A: core payment fields. Bank routing stays zeroed for PIX.
		lines = append(lines, buildRecord([]field{
			n(bankCode, 3),                            // bank code
			n("0001", 4),                              // service lot
			n("3", 1),                                 // record type
			n(strconv.Itoa(recordSeq*2-1), 5),         // detail sequence
			a("A", 1),                                 // segment code
			n("0", 1),                                 // movement type
			n("00", 2),                                // instruction code
			n("000", 3),                               // clearing house
			n("0", 3),                                 // payee bank
			n("0", 5),                                 // payee agency
			n("0", 1),                                 // payee agency digit
			n("0", 12),                                // payee account
			n("0", 1),                                 // payee account digit
			a("", 1),                                  // payee agency/account digit
			a(p.Name, 30),                             // payee name
			a(fmt.Sprintf("PAG%d", recordSeq), 20),    // document number
			n(genDate, 8),                             // payment date
			a("BRL", 3),                               // currency
			n("0", 15),                                // currency quantity
			n(cents(p.Amount), 15),                    // payment amount in cents
			a("", 20),                                 // bank document number
			a("", 8),                                  // effective date
			n("0", 15),                                // effective amount
			a("", 40),                                 // information 2
			a("", 3),                                  // DOC purpose code
			a("", 10),                                 // purpose complement
			a("", 10),                                 // FEBRABAN reserved
			a("", 10),                                 // occurrence codes
		}))

		// Segment B: PIX routing. Tax-ID keys publish the document number,
		// every other type publishes the key itself.
		taxID := ""
		key := ""
		if p.PixKeyType.taxIDKey() {
			taxID = onlyDigits(p.PixKey)
			if taxID == "" {
				taxID = onlyDigits(p.TaxID)
			}
		} else {
			key = p.PixKey
		}
		inscription := "1"
		if p.PixKeyType == PixCNPJ {
			inscription = "2"
		}
		initiation, ok := pixInitiationCodes[p.PixKeyType]
		if !ok {
			initiation = pixInitiationCodes[PixEmail]
		}

		lines = append(lines, buildRecord([]field{
			n(bankCode, 3),                  // bank code
			n("0001", 4),                    // service lot
			n("3", 1),                       // record type
			n(strconv.Itoa(recordSeq*2), 5), // detail sequence
			a("B", 1),                       // segment code
			a(initiation, 3),                // initiation form
			n(inscription, 1),               // inscription type
			n(taxID, 14),                    // payee tax ID (CPF/CNPJ keys only)
			a("", 35),                       // TX ID
			a("", 60),                       // blanks
			k(key, 99),                      // PIX key (non tax-ID types only)
			a("", 6),                        // blanks
			n("0", 8),                       // ISPB code
			a("", 10),                       // FEBRABAN reserved
		}))
	}

	// Lot trailer: header + trailer + both segments of every payment.
	lotRecordCount := len(payable)*2 + 2
	lines = append(lines, buildRecord([]field{
		n(bankCode, 3),                     // bank code
		n("0001", 4),                       // service lot
		n("5", 1),                          // record type
		a("", 9),                           // FEBRABAN reserved
		n(strconv.Itoa(lotRecordCount), 6), // lot record count
		n(cents(lotSum), 18),               // amount sum in cents
		n("0", 18),                         // currency quantity sum
		a("", 6),                           // debit notice number
		a("", 165),                         // FEBRABAN reserved
		a("", 10),                          // occurrence codes
	}))

	// File trailer counts itself.
	totalRecords := len(lines) + 1
	lines = append(lines, buildRecord([]field{
		n(bankCode, 3),                   // bank code
		n("9999", 4),                     // service lot
		n("9", 1),                        // record type
		a("", 9),                         // FEBRABAN reserved
		n("1", 6),                        // lot count
		n(strconv.Itoa(totalRecords), 6), // total record count
		a("", 211),                       // FEBRABAN reserved
	}))

	return &File{
		Name:    fmt.Sprintf("C1240_001_%s.REM", numericField(strconv.Itoa(fileSeq), 7)),
		Content: strings.Join(lines, "\n"),
	}, nil
}
