package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/cnab"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func (h *Handler) GetAllPhysiotherapists(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("onlyActive") == "true"

	physios, err := h.repository.GetAllPhysiotherapists(onlyActive)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lista de fisioterapeutas obtida com sucesso", physios)
}

func (h *Handler) GetPhysiotherapist(w http.ResponseWriter, r *http.Request) {
	physio := r.Context().Value(PhysiotherapistCtx).(*domain.Physiotherapist)
	h.successResponse(w, r, "fisioterapeuta obtido com sucesso", physio)
}

func (h *Handler) CreatePhysiotherapist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string          `json:"name" validate:"required"`
		Email           string          `json:"email" validate:"required,email"`
		CPF             string          `json:"cpf" validate:"required"`
		CNPJ            string          `json:"cnpj"`
		ContractType    string          `json:"contractType" validate:"required,oneof=PJ RPA NO_CONTRACT"`
		HourValue       decimal.Decimal `json:"hourValue"`
		AdditionalValue decimal.Decimal `json:"additionalValue"`
		PixKeyType      string          `json:"pixKeyType"`
		PixKey          string          `json:"pixKey"`
		TeamIDs         []int64         `json:"teamIds"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	physio := &domain.Physiotherapist{
		Name:            req.Name,
		Email:           req.Email,
		CPF:             req.CPF,
		CNPJ:            req.CNPJ,
		ContractType:    domain.ContractType(req.ContractType),
		HourValue:       req.HourValue,
		AdditionalValue: req.AdditionalValue,
		PixKeyType:      string(cnab.NormalizePixKeyType(req.PixKeyType)),
		PixKey:          req.PixKey,
		Status:          domain.PhysioActive,
		TeamIDs:         req.TeamIDs,
	}

	if err := h.repository.CreatePhysiotherapist(physio); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "physiotherapists_cpf_key":
				h.badRequest(w, r, errors.New("CPF já cadastrado"))
			case pgErr.ConstraintName == "physiotherapist_teams_team_id_fkey":
				h.badRequest(w, r, errors.New("equipe não encontrada"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "fisioterapeuta criado com sucesso", physio)
}

func (h *Handler) UpdatePhysiotherapist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            *string          `json:"name"`
		Email           *string          `json:"email" validate:"omitempty,email"`
		CPF             *string          `json:"cpf"`
		CNPJ            *string          `json:"cnpj"`
		ContractType    *string          `json:"contractType" validate:"omitempty,oneof=PJ RPA NO_CONTRACT"`
		HourValue       *decimal.Decimal `json:"hourValue"`
		AdditionalValue *decimal.Decimal `json:"additionalValue"`
		PixKeyType      *string          `json:"pixKeyType"`
		PixKey          *string          `json:"pixKey"`
		Status          *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
		ExitDate        *string          `json:"exitDate"`
		TeamIDs         []int64          `json:"teamIds"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	physio := r.Context().Value(PhysiotherapistCtx).(*domain.Physiotherapist)

	if req.Name != nil {
		physio.Name = *req.Name
	}
	if req.Email != nil {
		physio.Email = *req.Email
	}
	if req.CPF != nil {
		physio.CPF = *req.CPF
	}
	if req.CNPJ != nil {
		physio.CNPJ = *req.CNPJ
	}
	if req.ContractType != nil {
		physio.ContractType = domain.ContractType(*req.ContractType)
	}
	if req.HourValue != nil {
		physio.HourValue = *req.HourValue
	}
	if req.AdditionalValue != nil {
		physio.AdditionalValue = *req.AdditionalValue
	}
	if req.PixKeyType != nil {
		physio.PixKeyType = string(cnab.NormalizePixKeyType(*req.PixKeyType))
	}
	if req.PixKey != nil {
		physio.PixKey = *req.PixKey
	}
	if req.Status != nil {
		physio.Status = domain.PhysioStatus(*req.Status)
	}
	if req.ExitDate != nil {
		if *req.ExitDate == "" {
			physio.ExitDate = nil
		} else {
			exitDate, err := time.Parse(dateLayout, *req.ExitDate)
			if err != nil {
				h.errorResponse(w, r, "data de saída inválida, use o formato AAAA-MM-DD")
				return
			}
			physio.ExitDate = &exitDate
		}
	}
	if req.TeamIDs != nil {
		physio.TeamIDs = req.TeamIDs
	}

	if err := h.repository.UpdatePhysiotherapist(physio); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "physiotherapists_cpf_key":
				h.badRequest(w, r, errors.New("CPF já cadastrado"))
			case pgErr.ConstraintName == "physiotherapist_teams_team_id_fkey":
				h.badRequest(w, r, errors.New("equipe não encontrada"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "não foi possível atualizar o fisioterapeuta, tente novamente")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "fisioterapeuta atualizado com sucesso", physio)
}

func (h *Handler) DeletePhysiotherapist(w http.ResponseWriter, r *http.Request) {
	physio := r.Context().Value(PhysiotherapistCtx).(*domain.Physiotherapist)

	if err := h.repository.DeletePhysiotherapist(physio.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_physiotherapist_id_fkey":
			h.errorResponse(w, r, "o fisioterapeuta possui plantões cadastrados e não pode ser removido")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "fisioterapeuta removido com sucesso", nil)
}
