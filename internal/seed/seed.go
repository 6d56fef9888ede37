// Package seed generates random development data respecting the same roster
// rules as the API.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/utils"
)

// RandomUser builds a random user sharing the configured seed password.
func RandomUser(password string) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := utils.GenerateRandomBrazilianName()
	username := utils.UsernameFromName(name)

	return &domain.User{
		Username:     username,
		PasswordHash: string(hashed),
		FullName:     name,
		Email:        username + "@example.com.br",
		Role:         domain.RoleUser,
		IsActive:     true,
	}, nil
}

var teamNames = []string{"UTI Adulto", "UTI Neonatal", "Enfermaria", "Pronto Atendimento", "Ambulatório"}

// RandomTeam builds a team with small random capacities. Weekend capacity is
// kept at or below the weekday capacity, as in the clinic's real rosters.
func RandomTeam(seq int) *domain.Team {
	weekday := func() int32 { return int32(rand.Intn(3) + 1) }
	weekend := func(limit int32) int32 { return int32(rand.Intn(int(limit) + 1)) }

	wm, wi, wa, wn := weekday(), weekday(), weekday(), weekday()

	return &domain.Team{
		Name: fmt.Sprintf("%s %d", teamNames[rand.Intn(len(teamNames))], seq),

		WeekdayMorningSlots:      wm,
		WeekdayIntermediateSlots: wi,
		WeekdayAfternoonSlots:    wa,
		WeekdayNightSlots:        wn,

		WeekendMorningSlots:      weekend(wm),
		WeekendIntermediateSlots: weekend(wi),
		WeekendAfternoonSlots:    weekend(wa),
		WeekendNightSlots:        weekend(wn),

		ShiftValue: decimal.NewFromInt(int64(rand.Intn(10)+10) * 10),
	}
}

var contractTypes = []domain.ContractType{domain.ContractPJ, domain.ContractRPA, domain.ContractNil}

// RandomPhysiotherapist builds a physiotherapist assigned to a random subset
// of the given teams.
func RandomPhysiotherapist(teamIDs []int64) *domain.Physiotherapist {
	name := utils.GenerateRandomBrazilianName()
	username := utils.UsernameFromName(name)
	contractType := contractTypes[rand.Intn(len(contractTypes))]

	physio := &domain.Physiotherapist{
		Name:            name,
		Email:           username + "@example.com.br",
		CPF:             utils.GenerateRandomCPF(),
		ContractType:    contractType,
		HourValue:       decimal.NewFromInt(int64(rand.Intn(15)+8) * 10),
		AdditionalValue: decimal.NewFromInt(int64(rand.Intn(5)) * 50),
		PixKeyType:      "CPF",
		Status:          domain.PhysioActive,
	}
	physio.PixKey = physio.CPF

	if contractType == domain.ContractPJ {
		physio.CNPJ = fmt.Sprintf("%08d0001%02d", rand.Intn(100000000), rand.Intn(100))
	}

	memberships := make([]int64, 0, len(teamIDs))
	for _, id := range teamIDs {
		if rand.Intn(2) == 0 {
			memberships = append(memberships, id)
		}
	}
	if len(memberships) == 0 && len(teamIDs) > 0 {
		memberships = append(memberships, teamIDs[rand.Intn(len(teamIDs))])
	}
	physio.TeamIDs = memberships

	return physio
}

var holidayNames = []string{
	"Feriado Municipal", "Ponto Facultativo", "Aniversário da Cidade",
	"Dia do Padroeiro", "Recesso Administrativo",
}

// RandomHoliday builds a holiday on a random day of the given month.
// Duplicate dates fail on the unique index and are simply skipped.
func RandomHoliday(month time.Time) *domain.Holiday {
	day := rand.Intn(28) + 1
	return &domain.Holiday{
		Date: time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC),
		Name: holidayNames[rand.Intn(len(holidayNames))],
	}
}

// RandomShift proposes one assignment inside the given month. Callers run it
// through the same guarded insert as the API, so collisions simply fail and
// are retried with a new draw.
func RandomShift(month time.Time, physio *domain.Physiotherapist, teamID int64) *domain.Shift {
	day := rand.Intn(28) + 1
	date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)

	return &domain.Shift{
		Date:              date,
		Period:            domain.ShiftPeriods[rand.Intn(len(domain.ShiftPeriods))],
		PhysiotherapistID: physio.ID,
		TeamID:            teamID,
	}
}
