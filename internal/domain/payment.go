package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

type EmailStatus string

const (
	EmailPending EmailStatus = "PENDING"
	EmailSent    EmailStatus = "SENT"
	EmailFailed  EmailStatus = "FAILED"
)

// MonthlyPaymentControl groups the payment records of one reference month
// (format "YYYY-MM").
type MonthlyPaymentControl struct {
	ID             int64     `json:"id"`
	ReferenceMonth string    `json:"referenceMonth"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PaymentRecord is the persisted payment state of one physiotherapist in one
// reference month, including deductions extracted from the RPA receipt.
type PaymentRecord struct {
	ID                int64           `json:"id"`
	ControlID         int64           `json:"controlId"`
	PhysiotherapistID int64           `json:"physiotherapistId"`
	GrossValue        decimal.Decimal `json:"grossValue"`
	NetValue          decimal.Decimal `json:"netValue"`
	RPAServiceValue   decimal.Decimal `json:"rpaServiceValue"`
	RPAOtherDiscounts decimal.Decimal `json:"rpaOtherDiscounts"`
	RPAISS            decimal.Decimal `json:"rpaIss"`
	RPAIRRF           decimal.Decimal `json:"rpaIrrf"`
	RPAINSS           decimal.Decimal `json:"rpaInss"`
	RPATotalDiscounts decimal.Decimal `json:"rpaTotalDiscounts"`
	ReceiptFileName   string          `json:"receiptFileName"`
	Status            PaymentStatus   `json:"status"`
	EmailStatus       EmailStatus     `json:"emailStatus"`
	EmailSentAt       *time.Time      `json:"emailSentAt"`
	Version           int32           `json:"-"`
}
