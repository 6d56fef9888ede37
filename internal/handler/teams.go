package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func (h *Handler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.repository.GetAllTeams()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lista de equipes obtida com sucesso", teams)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team := r.Context().Value(TeamCtx).(*domain.Team)
	h.successResponse(w, r, "equipe obtida com sucesso", team)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`

		WeekdayMorningSlots      int32 `json:"weekdayMorningSlots" validate:"gte=0"`
		WeekdayIntermediateSlots int32 `json:"weekdayIntermediateSlots" validate:"gte=0"`
		WeekdayAfternoonSlots    int32 `json:"weekdayAfternoonSlots" validate:"gte=0"`
		WeekdayNightSlots        int32 `json:"weekdayNightSlots" validate:"gte=0"`

		WeekendMorningSlots      int32 `json:"weekendMorningSlots" validate:"gte=0"`
		WeekendIntermediateSlots int32 `json:"weekendIntermediateSlots" validate:"gte=0"`
		WeekendAfternoonSlots    int32 `json:"weekendAfternoonSlots" validate:"gte=0"`
		WeekendNightSlots        int32 `json:"weekendNightSlots" validate:"gte=0"`

		ShiftValue decimal.Decimal `json:"shiftValue"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	team := &domain.Team{
		Name: req.Name,

		WeekdayMorningSlots:      req.WeekdayMorningSlots,
		WeekdayIntermediateSlots: req.WeekdayIntermediateSlots,
		WeekdayAfternoonSlots:    req.WeekdayAfternoonSlots,
		WeekdayNightSlots:        req.WeekdayNightSlots,

		WeekendMorningSlots:      req.WeekendMorningSlots,
		WeekendIntermediateSlots: req.WeekendIntermediateSlots,
		WeekendAfternoonSlots:    req.WeekendAfternoonSlots,
		WeekendNightSlots:        req.WeekendNightSlots,

		ShiftValue: req.ShiftValue,
	}

	if err := h.repository.CreateTeam(team); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_name_key":
			h.badRequest(w, r, errors.New("já existe uma equipe com esse nome"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "equipe criada com sucesso", team)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`

		WeekdayMorningSlots      *int32 `json:"weekdayMorningSlots" validate:"omitempty,gte=0"`
		WeekdayIntermediateSlots *int32 `json:"weekdayIntermediateSlots" validate:"omitempty,gte=0"`
		WeekdayAfternoonSlots    *int32 `json:"weekdayAfternoonSlots" validate:"omitempty,gte=0"`
		WeekdayNightSlots        *int32 `json:"weekdayNightSlots" validate:"omitempty,gte=0"`

		WeekendMorningSlots      *int32 `json:"weekendMorningSlots" validate:"omitempty,gte=0"`
		WeekendIntermediateSlots *int32 `json:"weekendIntermediateSlots" validate:"omitempty,gte=0"`
		WeekendAfternoonSlots    *int32 `json:"weekendAfternoonSlots" validate:"omitempty,gte=0"`
		WeekendNightSlots        *int32 `json:"weekendNightSlots" validate:"omitempty,gte=0"`

		ShiftValue *decimal.Decimal `json:"shiftValue"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	team := r.Context().Value(TeamCtx).(*domain.Team)

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.WeekdayMorningSlots != nil {
		team.WeekdayMorningSlots = *req.WeekdayMorningSlots
	}
	if req.WeekdayIntermediateSlots != nil {
		team.WeekdayIntermediateSlots = *req.WeekdayIntermediateSlots
	}
	if req.WeekdayAfternoonSlots != nil {
		team.WeekdayAfternoonSlots = *req.WeekdayAfternoonSlots
	}
	if req.WeekdayNightSlots != nil {
		team.WeekdayNightSlots = *req.WeekdayNightSlots
	}
	if req.WeekendMorningSlots != nil {
		team.WeekendMorningSlots = *req.WeekendMorningSlots
	}
	if req.WeekendIntermediateSlots != nil {
		team.WeekendIntermediateSlots = *req.WeekendIntermediateSlots
	}
	if req.WeekendAfternoonSlots != nil {
		team.WeekendAfternoonSlots = *req.WeekendAfternoonSlots
	}
	if req.WeekendNightSlots != nil {
		team.WeekendNightSlots = *req.WeekendNightSlots
	}
	if req.ShiftValue != nil {
		team.ShiftValue = *req.ShiftValue
	}

	if err := h.repository.UpdateTeam(team); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_name_key":
			h.badRequest(w, r, errors.New("já existe uma equipe com esse nome"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "não foi possível atualizar a equipe, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "equipe atualizada com sucesso", team)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	team := r.Context().Value(TeamCtx).(*domain.Team)

	if err := h.repository.DeleteTeam(team.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_team_id_fkey":
			h.errorResponse(w, r, "a equipe possui plantões cadastrados e não pode ser removida")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "equipe removida com sucesso", nil)
}
