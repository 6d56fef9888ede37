// Package contract renders the clinic's PDF documents: service contracts for
// physiotherapists (PJ and RPA regimes) and monthly payment receipts.
package contract

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Company identifies the contracting clinic on every rendered document.
type Company struct {
	LegalName  string
	CNPJ       string
	Street     string
	Number     string
	Complement string
	City       string
	State      string
	PostalCode string
}

func (c Company) address() string {
	addr := fmt.Sprintf("%s, %s", c.Street, c.Number)
	if c.Complement != "" {
		addr += ", " + c.Complement
	}
	return fmt.Sprintf("%s, %s/%s, CEP %s", addr, c.City, c.State, c.PostalCode)
}

// Renderer builds the clinic's PDF documents.
type Renderer struct {
	company Company
}

func NewRenderer(company Company) *Renderer {
	return &Renderer{company: company}
}

func (r *Renderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		WithAuthor(r.company.LegalName, true).
		Build()

	return maroto.New(cfg)
}

// RenderRPAContract renders the autonomous-service contract (RPA regime) for
// one physiotherapist and returns the PDF bytes.
func (r *Renderer) RenderRPAContract(physio *domain.Physiotherapist, signedAt time.Time) ([]byte, error) {
	m := r.newDocument("Contrato de Prestação de Serviços - RPA")

	m.AddRows(r.headerRows("CONTRATO DE PRESTAÇÃO DE SERVIÇOS DE FISIOTERAPIA", "Regime: Recibo de Pagamento Autônomo (RPA)")...)
	m.AddRows(r.partyRows(physio, "CONTRATADO(A)", "CPF: "+physio.CPF)...)
	m.AddRows(clauseRows(rpaClauses(physio, r.company))...)
	m.AddRows(r.signatureRows(physio.Name, signedAt)...)

	return generate(m)
}

// RenderPJContract renders the service contract for a physiotherapist hired
// through their own company (PJ regime).
func (r *Renderer) RenderPJContract(physio *domain.Physiotherapist, signedAt time.Time) ([]byte, error) {
	m := r.newDocument("Contrato de Prestação de Serviços - PJ")

	m.AddRows(r.headerRows("CONTRATO DE PRESTAÇÃO DE SERVIÇOS DE FISIOTERAPIA", "Regime: Pessoa Jurídica (PJ)")...)
	m.AddRows(r.partyRows(physio, "CONTRATADA", "CNPJ: "+physio.CNPJ)...)
	m.AddRows(clauseRows(pjClauses(physio, r.company))...)
	m.AddRows(r.signatureRows(physio.Name, signedAt)...)

	return generate(m)
}

// Receipt carries the computed values shown on a monthly payment receipt.
type Receipt struct {
	Month          string
	ShiftCount     int
	GrossValue     decimal.Decimal
	ServiceValue   decimal.Decimal
	ISS            decimal.Decimal
	IRRF           decimal.Decimal
	INSS           decimal.Decimal
	OtherDiscounts decimal.Decimal
	TotalDiscounts decimal.Decimal
	NetValue       decimal.Decimal
}

// RenderPaymentReceipt renders the monthly payment receipt attached to the
// receipt e-mail. Deduction lines only appear for RPA physiotherapists.
func (r *Renderer) RenderPaymentReceipt(physio *domain.Physiotherapist, receipt Receipt) ([]byte, error) {
	m := r.newDocument("Comprovante de Pagamento " + receipt.Month)

	m.AddRows(r.headerRows("COMPROVANTE DE PAGAMENTO", "Competência: "+receipt.Month)...)
	m.AddRows(r.partyRows(physio, "BENEFICIÁRIO(A)", "CPF: "+physio.CPF)...)

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Plantões realizados no período: %d", receipt.ShiftCount), props.Text{Size: 10, Top: 2}),
	)))
	m.AddRows(valueRow("Valor bruto", receipt.GrossValue, false))

	if physio.ContractType == domain.ContractRPA {
		m.AddRows(valueRow("Valor do serviço (RPA)", receipt.ServiceValue, false))
		m.AddRows(valueRow("ISS", receipt.ISS.Neg(), false))
		m.AddRows(valueRow("IRRF", receipt.IRRF.Neg(), false))
		m.AddRows(valueRow("INSS", receipt.INSS.Neg(), false))
		if receipt.OtherDiscounts.IsPositive() {
			m.AddRows(valueRow("Outros descontos", receipt.OtherDiscounts.Neg(), false))
		}
		m.AddRows(valueRow("Total de descontos", receipt.TotalDiscounts.Neg(), false))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(valueRow("VALOR LÍQUIDO", receipt.NetValue, true))

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Pagamento efetuado via PIX (%s: %s).", physio.PixKeyType, physio.PixKey),
			props.Text{Size: 9, Top: 6, Color: colorGray},
		),
	)))

	return generate(m)
}

func valueRow(label string, v decimal.Decimal, grand bool) core.Row {
	labelProps := props.Text{Size: 9, Align: align.Left, Top: 1, Left: 2}
	valueProps := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 2}
	if grand {
		labelProps.Style = fontstyle.Bold
		labelProps.Size = 11
		labelProps.Color = colorPrimary
		valueProps.Style = fontstyle.Bold
		valueProps.Size = 11
		valueProps.Color = colorPrimary
	}

	return row.New(7).Add(
		col.New(8).Add(text.New(label, labelProps)),
		col.New(4).Add(text.New(FormatMoney(v), valueProps)),
	)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *Renderer) headerRows(title, subtitle string) []core.Row {
	return []core.Row{
		row.New(16).Add(col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
			text.New(subtitle, props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 10,
			}),
		)),
		line.NewRow(3, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

func (r *Renderer) partyRows(physio *domain.Physiotherapist, partyLabel, document string) []core.Row {
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("CONTRATANTE", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s, CNPJ %s, com sede em %s.",
				r.company.LegalName, r.company.CNPJ, r.company.address(),
			), props.Text{Size: 9, Top: 6}),
		)),
		row.New(14).Add(col.New(12).Add(
			text.New(partyLabel, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s, %s, e-mail %s.",
				physio.Name, document, physio.Email,
			), props.Text{Size: 9, Top: 6}),
		)),
		line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.3}),
	}
}

func clauseRows(clauses []string) []core.Row {
	rows := make([]core.Row, 0, len(clauses))
	for i, clause := range clauses {
		body := fmt.Sprintf("CLÁUSULA %dª - %s", i+1, clause)
		height := 8 + float64(len(body))/95*5
		rows = append(rows, row.New(height).Add(col.New(12).Add(
			text.New(body, props.Text{Size: 9, Top: 2}),
		)))
	}
	return rows
}

func rpaClauses(physio *domain.Physiotherapist, company Company) []string {
	return []string{
		fmt.Sprintf("O(A) CONTRATADO(A) prestará serviços de fisioterapia em regime de plantão nas dependências da CONTRATANTE, situada em %s.", company.address()),
		fmt.Sprintf("A CONTRATANTE pagará ao(à) CONTRATADO(A) o valor de %s por plantão realizado, acrescido de %s a título de adicional, quando aplicável.", FormatMoney(physio.HourValue), FormatMoney(physio.AdditionalValue)),
		"Os pagamentos serão efetuados mensalmente mediante emissão de Recibo de Pagamento Autônomo (RPA), com retenção na fonte de ISS, IRRF e INSS na forma da legislação vigente.",
		fmt.Sprintf("Os pagamentos serão realizados via PIX, chave do tipo %s: %s.", physio.PixKeyType, physio.PixKey),
		"O presente contrato não estabelece vínculo empregatício entre as partes, nos termos da legislação civil aplicável à prestação de serviços autônomos.",
		"Qualquer das partes poderá rescindir o presente contrato mediante comunicação por escrito com antecedência mínima de 30 (trinta) dias.",
	}
}

func pjClauses(physio *domain.Physiotherapist, company Company) []string {
	return []string{
		fmt.Sprintf("A CONTRATADA prestará, por meio de seus profissionais habilitados, serviços de fisioterapia em regime de plantão nas dependências da CONTRATANTE, situada em %s.", company.address()),
		fmt.Sprintf("A CONTRATANTE pagará à CONTRATADA o valor de %s por plantão realizado, acrescido de %s a título de adicional, quando aplicável, mediante apresentação de nota fiscal de serviços.", FormatMoney(physio.HourValue), FormatMoney(physio.AdditionalValue)),
		fmt.Sprintf("Os pagamentos serão realizados mensalmente via PIX, chave do tipo %s: %s.", physio.PixKeyType, physio.PixKey),
		"A CONTRATADA é exclusivamente responsável pelos tributos e encargos incidentes sobre os valores recebidos, inclusive os devidos por seus sócios e prepostos.",
		"O presente contrato não estabelece vínculo empregatício entre a CONTRATANTE e os profissionais designados pela CONTRATADA.",
		"Qualquer das partes poderá rescindir o presente contrato mediante comunicação por escrito com antecedência mínima de 30 (trinta) dias.",
	}
}

func (r *Renderer) signatureRows(name string, signedAt time.Time) []core.Row {
	place := fmt.Sprintf("%s/%s, %s.", r.company.City, r.company.State, FormatDate(signedAt))

	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New(place, props.Text{Size: 9, Top: 6, Align: align.Right}),
		)),
		row.New(24).Add(
			col.New(6).Add(
				text.New("_________________________________", props.Text{Size: 9, Top: 12, Align: align.Center}),
				text.New(r.company.LegalName, props.Text{Size: 8, Top: 17, Align: align.Center, Color: colorGray}),
			),
			col.New(6).Add(
				text.New("_________________________________", props.Text{Size: 9, Top: 12, Align: align.Center}),
				text.New(name, props.Text{Size: 8, Top: 17, Align: align.Center, Color: colorGray}),
			),
		),
	}
}

// FormatMoney renders a decimal in Brazilian currency notation,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatMoney(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	n := len(intPart)
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}

	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), fracPart)
}

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
