package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/payroll"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/repository"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/roster"
)

// ownPhysiotherapist reports whether the logged-in user is linked to the given
// physiotherapist. Admins act on behalf of anyone.
func (h *Handler) ownPhysiotherapist(r *http.Request, physioID int64) bool {
	if domain.Role(r.Context().Value(RoleCtxKey).(string)) == domain.RoleAdmin {
		return true
	}
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	return myInfo.PhysiotherapistID != nil && *myInfo.PhysiotherapistID == physioID
}

func (h *Handler) GetTeamShifts(w http.ResponseWriter, r *http.Request) {
	team := r.Context().Value(TeamCtx).(*domain.Team)

	if domain.Role(r.Context().Value(RoleCtxKey).(string)) != domain.RoleAdmin {
		myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
		if myInfo.PhysiotherapistID == nil {
			h.errorResponse(w, r, "usuário não está vinculado a um fisioterapeuta")
			return
		}
		physio, err := h.repository.GetPhysiotherapistByID(*myInfo.PhysiotherapistID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !physio.BelongsToTeam(team.ID) {
			h.errorResponse(w, r, "você não pertence a essa equipe")
			return
		}
	}

	shifts, err := h.repository.GetShiftsByTeam(team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "plantões da equipe obtidos com sucesso", shifts)
}

// GetShiftsCalendar lists every shift in a half-open date range, defaulting
// to the current month. The roster calendar is visible to any logged-in user.
func (h *Handler) GetShiftsCalendar(w http.ResponseWriter, r *http.Request) {
	start, end, err := payroll.MonthRange(time.Now().Format("2006-01"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if raw := r.URL.Query().Get("start"); raw != "" {
		if start, err = time.Parse(dateLayout, raw); err != nil {
			h.errorResponse(w, r, "data inicial inválida, use o formato AAAA-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if end, err = time.Parse(dateLayout, raw); err != nil {
			h.errorResponse(w, r, "data final inválida, use o formato AAAA-MM-DD")
			return
		}
	}
	if !end.After(start) {
		h.errorResponse(w, r, "a data final deve ser posterior à data inicial")
		return
	}

	shifts, err := h.repository.GetShiftsInRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "plantões do período obtidos com sucesso", shifts)
}

// admit runs the admission decision for a candidate slot. When ok is false
// the response has already been written.
func (h *Handler) admit(w http.ResponseWriter, r *http.Request, team *domain.Team, date time.Time, period domain.ShiftPeriod, physioID int64, excludeShiftID int64) (*roster.Decision, bool) {
	isHoliday, err := h.repository.IsHoliday(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	occupancy, err := h.repository.CountShiftSlots(date, period, team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	booked, err := h.repository.HasShift(date, period, physioID)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	if excludeShiftID != 0 {
		// a move within the same slot must not collide with itself
		current, err := h.repository.GetShiftByID(excludeShiftID)
		if err != nil {
			h.internalServerError(w, r, err)
			return nil, false
		}
		sameSlot := current.Date.Equal(date) && current.Period == period
		if sameSlot && current.TeamID == team.ID {
			occupancy--
		}
		if sameSlot && current.PhysiotherapistID == physioID {
			booked = false
		}
	}

	decision, err := roster.TryAdmit(roster.Request{
		Date:           date,
		Period:         period,
		Team:           team,
		Occupancy:      occupancy,
		AssigneeBooked: booked,
	}, func(time.Time) bool { return isHoliday })
	if err != nil {
		var cfgErr *roster.ConfigurationError
		if errors.As(err, &cfgErr) {
			h.badRequest(w, r, cfgErr)
		} else {
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	return decision, true
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	team := r.Context().Value(TeamCtx).(*domain.Team)

	var req struct {
		Date              string `json:"date" validate:"required"`
		Period            string `json:"period" validate:"required,oneof=MORNING INTERMEDIATE AFTERNOON NIGHT"`
		PhysiotherapistID int64  `json:"physiotherapistId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.errorResponse(w, r, "data inválida, use o formato AAAA-MM-DD")
		return
	}
	period := domain.ShiftPeriod(req.Period)

	if !h.ownPhysiotherapist(r, req.PhysiotherapistID) {
		h.errorResponse(w, r, "você só pode cadastrar plantões para você mesmo")
		return
	}

	physio, err := h.repository.GetPhysiotherapistByID(req.PhysiotherapistID)
	if err != nil {
		h.errorResponse(w, r, "fisioterapeuta não encontrado")
		return
	}

	if !physio.AvailableOn(date) {
		h.errorResponse(w, r, "o fisioterapeuta não está disponível nessa data")
		return
	}
	if !physio.BelongsToTeam(team.ID) {
		h.errorResponse(w, r, "o fisioterapeuta não pertence a essa equipe")
		return
	}

	decision, ok := h.admit(w, r, team, date, period, physio.ID, 0)
	if !ok {
		return
	}
	if !decision.Accepted {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: decision.Message,
			Data:    decision,
		})
		return
	}

	shift := &domain.Shift{
		Date:              date,
		Period:            period,
		PhysiotherapistID: physio.ID,
		TeamID:            team.ID,
	}

	if err := h.repository.CreateShiftGuarded(shift, decision.Capacity); err != nil {
		h.shiftWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "plantão cadastrado com sucesso", shift)
}

func (h *Handler) MoveShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if !h.ownPhysiotherapist(r, shift.PhysiotherapistID) {
		h.errorResponse(w, r, "você só pode alterar seus próprios plantões")
		return
	}

	var req struct {
		Date   *string `json:"date"`
		Period *string `json:"period" validate:"omitempty,oneof=MORNING INTERMEDIATE AFTERNOON NIGHT"`
		TeamID *int64  `json:"teamId"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date := shift.Date
	period := shift.Period
	teamID := shift.TeamID

	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			h.errorResponse(w, r, "data inválida, use o formato AAAA-MM-DD")
			return
		}
		date = parsed
	}
	if req.Period != nil {
		period = domain.ShiftPeriod(*req.Period)
	}
	if req.TeamID != nil {
		teamID = *req.TeamID
	}

	team, err := h.repository.GetTeamByID(teamID)
	if err != nil {
		h.errorResponse(w, r, "equipe não encontrada")
		return
	}

	physio, err := h.repository.GetPhysiotherapistByID(shift.PhysiotherapistID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !physio.AvailableOn(date) {
		h.errorResponse(w, r, "o fisioterapeuta não está disponível nessa data")
		return
	}
	if !physio.BelongsToTeam(team.ID) {
		h.errorResponse(w, r, "o fisioterapeuta não pertence a essa equipe")
		return
	}

	decision, ok := h.admit(w, r, team, date, period, physio.ID, shift.ID)
	if !ok {
		return
	}
	if !decision.Accepted {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: decision.Message,
			Data:    decision,
		})
		return
	}

	shift.Date = date
	shift.Period = period
	shift.TeamID = teamID

	if err := h.repository.MoveShiftGuarded(shift, decision.Capacity); err != nil {
		h.shiftWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "plantão alterado com sucesso", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if !h.ownPhysiotherapist(r, shift.PhysiotherapistID) {
		h.errorResponse(w, r, "você só pode remover seus próprios plantões")
		return
	}

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "plantão removido com sucesso", nil)
}

// shiftWriteError translates the storage-level guards, which remain
// authoritative under concurrent admissions even after the advisory decision
// accepted the slot.
func (h *Handler) shiftWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, repository.ErrCapacityExceeded):
		h.errorResponse(w, r, "não há mais vagas para esse período nessa data")
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_date_period_physiotherapist_id_key":
		h.errorResponse(w, r, "o fisioterapeuta já possui um plantão nessa data e período")
	default:
		h.internalServerError(w, r, err)
	}
}
