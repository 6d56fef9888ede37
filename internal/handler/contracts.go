package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func (h *Handler) DownloadRPAContract(w http.ResponseWriter, r *http.Request) {
	physio := r.Context().Value(PhysiotherapistCtx).(*domain.Physiotherapist)

	if physio.ContractType != domain.ContractRPA {
		h.errorResponse(w, r, "o fisioterapeuta não possui contrato no regime RPA")
		return
	}

	pdfBytes, err := h.contracts.RenderRPAContract(physio, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writePDF(w, r, fmt.Sprintf("contrato_rpa_%s.pdf", fileSlug(physio.Name)), pdfBytes)
}

func (h *Handler) DownloadPJContract(w http.ResponseWriter, r *http.Request) {
	physio := r.Context().Value(PhysiotherapistCtx).(*domain.Physiotherapist)

	if physio.ContractType != domain.ContractPJ {
		h.errorResponse(w, r, "o fisioterapeuta não possui contrato no regime PJ")
		return
	}
	if physio.CNPJ == "" {
		h.errorResponse(w, r, "o fisioterapeuta não possui CNPJ cadastrado")
		return
	}

	pdfBytes, err := h.contracts.RenderPJContract(physio, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writePDF(w, r, fmt.Sprintf("contrato_pj_%s.pdf", fileSlug(physio.Name)), pdfBytes)
}

func (h *Handler) writePDF(w http.ResponseWriter, r *http.Request, name string, pdfBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		h.logInternalServerError(r, err)
	}
}

func fileSlug(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
