package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/roster"
)

const dateLayout = "2006-01-02"

func (h *Handler) GetAllHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.repository.GetAllHolidays()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lista de feriados obtida com sucesso", holidays)
}

func (h *Handler) GetHoliday(w http.ResponseWriter, r *http.Request) {
	holiday := r.Context().Value(HolidayCtx).(*domain.Holiday)
	h.successResponse(w, r, "feriado obtido com sucesso", holiday)
}

// ValidateHolidayDate reports how a date would be classified and whether it
// already carries shifts, so the client can warn before registering a holiday.
func (h *Handler) ValidateHolidayDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "data inválida, use o formato AAAA-MM-DD")
		return
	}

	holiday, err := h.repository.GetHolidayByDate(date)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}
	isHoliday := holiday != nil

	shiftCount, err := h.repository.CountShiftsOnDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	class := roster.ClassifyDay(date, func(time.Time) bool { return isHoliday })

	h.successResponse(w, r, "data validada com sucesso", map[string]any{
		"date":       date.Format(dateLayout),
		"isWeekend":  roster.IsWeekend(date),
		"isHoliday":  isHoliday,
		"holiday":    holiday,
		"dayClass":   class,
		"shiftCount": shiftCount,
	})
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string `json:"date" validate:"required"`
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
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

	// a holiday changes the date's capacity rules, so dates that already have
	// shifts must be cleared first
	shiftCount, err := h.repository.CountShiftsOnDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if shiftCount > 0 {
		h.errorResponse(w, r, fmt.Sprintf("a data já possui %d plantão(ões) cadastrado(s); remova-os antes de registrar o feriado", shiftCount))
		return
	}

	holiday := &domain.Holiday{
		Date:        date,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.repository.CreateHoliday(holiday); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "holidays_date_key":
			h.badRequest(w, r, errors.New("já existe um feriado nessa data"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "feriado criado com sucesso", holiday)
}

func (h *Handler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	holiday := r.Context().Value(HolidayCtx).(*domain.Holiday)

	if req.Name != nil {
		holiday.Name = *req.Name
	}
	if req.Description != nil {
		holiday.Description = *req.Description
	}

	if err := h.repository.UpdateHoliday(holiday); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "não foi possível atualizar o feriado, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "feriado atualizado com sucesso", holiday)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	holiday := r.Context().Value(HolidayCtx).(*domain.Holiday)

	// removing the holiday flips the date back to weekday rules; existing
	// shifts would be left over an inconsistent capacity table
	shiftCount, err := h.repository.CountShiftsOnDate(holiday.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if shiftCount > 0 {
		h.errorResponse(w, r, "a data do feriado possui plantões cadastrados e não pode ser removida")
		return
	}

	if err := h.repository.DeleteHoliday(holiday.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "feriado removido com sucesso", nil)
}
