package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractPJ  ContractType = "PJ"
	ContractRPA ContractType = "RPA"
	ContractNil ContractType = "NO_CONTRACT"
)

type PhysioStatus string

const (
	PhysioActive   PhysioStatus = "ACTIVE"
	PhysioInactive PhysioStatus = "INACTIVE"
)

type Physiotherapist struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	CPF             string          `json:"cpf"`
	CNPJ            string          `json:"cnpj"`
	ContractType    ContractType    `json:"contractType"`
	HourValue       decimal.Decimal `json:"hourValue"`
	AdditionalValue decimal.Decimal `json:"additionalValue"`
	PixKeyType      string          `json:"pixKeyType"`
	PixKey          string          `json:"pixKey"`
	Status          PhysioStatus    `json:"status"`
	ExitDate        *time.Time      `json:"exitDate"`
	TeamIDs         []int64         `json:"teamIds"`
	CreatedAt       time.Time       `json:"createdAt"`
	Version         int32           `json:"-"`
}

// AvailableOn reports whether the physiotherapist can still take shifts on
// the given date (active and not past the exit date).
func (p *Physiotherapist) AvailableOn(date time.Time) bool {
	if p.Status == PhysioInactive {
		return false
	}
	if p.ExitDate != nil && !p.ExitDate.After(date) {
		return false
	}
	return true
}

// BelongsToTeam reports membership in the given roster team.
func (p *Physiotherapist) BelongsToTeam(teamID int64) bool {
	for _, id := range p.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
