package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/config"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/payroll"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/repository"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/roster"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var month string

	flag.IntVar(&op, "op", 0, "operação (1: usuários aleatórios, 2: equipes aleatórias, 3: fisioterapeutas aleatórios, 4: plantões aleatórios, 5: feriados aleatórios)")
	flag.IntVar(&n, "n", 5, "quantidade de registros")
	flag.StringVar(&month, "month", time.Now().Format("2006-01"), "competência dos plantões (AAAA-MM)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("não foi possível criar o pool de conexões", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("não foi possível conectar ao banco de dados", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if n <= 0 {
		slog.Error("quantidade inválida")
		return
	}

	switch op {
	case 1:
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := seed.RandomUser(cfg.Seed.User.Password)
			if err != nil {
				slog.Error("não foi possível gerar o usuário", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(user); err != nil {
				slog.Error("não foi possível inserir o usuário", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("usuários inseridos", slog.Int("count", cnt))
	case 2:
		cnt := 0
		for i := 0; i < n; i++ {
			team := seed.RandomTeam(i + 1)
			if err := repo.CreateTeam(team); err != nil {
				slog.Error("não foi possível inserir a equipe", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("equipes inseridas", slog.Int("count", cnt))
	case 3:
		teams, err := repo.GetAllTeams()
		if err != nil {
			slog.Error("não foi possível obter as equipes", slog.String("error", err.Error()))
			return
		}
		teamIDs := make([]int64, 0, len(teams))
		for _, team := range teams {
			teamIDs = append(teamIDs, team.ID)
		}

		cnt := 0
		for i := 0; i < n; i++ {
			physio := seed.RandomPhysiotherapist(teamIDs)
			if err := repo.CreatePhysiotherapist(physio); err != nil {
				slog.Error("não foi possível inserir o fisioterapeuta", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("fisioterapeutas inseridos", slog.Int("count", cnt))
	case 4:
		start, _, err := payroll.MonthRange(month)
		if err != nil {
			slog.Error("competência inválida", slog.String("month", month))
			return
		}

		physios, err := repo.GetAllPhysiotherapists(true)
		if err != nil {
			slog.Error("não foi possível obter os fisioterapeutas", slog.String("error", err.Error()))
			return
		}
		if len(physios) == 0 {
			slog.Error("nenhum fisioterapeuta ativo cadastrado")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			physio := physios[rand.Intn(len(physios))]
			if len(physio.TeamIDs) == 0 {
				continue
			}
			teamID := physio.TeamIDs[rand.Intn(len(physio.TeamIDs))]

			team, err := repo.GetTeamByID(teamID)
			if err != nil {
				slog.Error("não foi possível obter a equipe", slog.String("error", err.Error()))
				continue
			}

			shift := seed.RandomShift(start, physio, teamID)

			// run the draw through the same admission rules as the API
			isHoliday, err := repo.IsHoliday(shift.Date)
			if err != nil {
				slog.Error("não foi possível consultar feriados", slog.String("error", err.Error()))
				continue
			}
			occupancy, err := repo.CountShiftSlots(shift.Date, shift.Period, teamID)
			if err != nil {
				slog.Error("não foi possível contar a ocupação", slog.String("error", err.Error()))
				continue
			}
			booked, err := repo.HasShift(shift.Date, shift.Period, physio.ID)
			if err != nil {
				slog.Error("não foi possível verificar duplicidade", slog.String("error", err.Error()))
				continue
			}

			decision, err := roster.TryAdmit(roster.Request{
				Date:           shift.Date,
				Period:         shift.Period,
				Team:           team,
				Occupancy:      occupancy,
				AssigneeBooked: booked,
			}, func(time.Time) bool { return isHoliday })
			if err != nil || !decision.Accepted {
				continue
			}

			if err := repo.CreateShiftGuarded(shift, decision.Capacity); err != nil {
				continue
			}
			cnt++
		}
		slog.Info("plantões inseridos", slog.Int("count", cnt), slog.Int("attempts", n))
	case 5:
		start, _, err := payroll.MonthRange(month)
		if err != nil {
			slog.Error("competência inválida", slog.String("month", month))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			holiday := seed.RandomHoliday(start)

			// only dates without shifts can become holidays, same as the API
			shifts, err := repo.CountShiftsOnDate(holiday.Date)
			if err != nil || shifts > 0 {
				continue
			}
			if err := repo.CreateHoliday(holiday); err != nil {
				continue
			}
			cnt++
		}
		slog.Info("feriados inseridos", slog.Int("count", cnt), slog.Int("attempts", n))
	default:
		slog.Error("operação não especificada")
	}
}
