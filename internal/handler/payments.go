package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/cnab"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/contract"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/payroll"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/rpa"
)

func (h *Handler) companyProfile() cnab.CompanyProfile {
	return cnab.CompanyProfile{
		CNPJ:         h.config.Company.CNPJ,
		LegalName:    h.config.Company.LegalName,
		Account:      h.config.Company.Account,
		AccountDigit: h.config.Company.AccountDigit,
		Street:       h.config.Company.Street,
		Number:       h.config.Company.Number,
		Complement:   h.config.Company.Complement,
		City:         h.config.Company.City,
		PostalCode:   h.config.Company.PostalCode,
		State:        h.config.Company.State,
	}
}

// computeMonthlyPayments derives the month's summaries from the shift counts
// and persists one payment record per paid physiotherapist, keeping the RPA
// deductions already stored for the month.
func (h *Handler) computeMonthlyPayments(control *domain.MonthlyPaymentControl) ([]payroll.Summary, error) {
	start, end, err := payroll.MonthRange(control.ReferenceMonth)
	if err != nil {
		return nil, err
	}

	records, err := h.repository.GetPaymentRecords(control.ID)
	if err != nil {
		return nil, err
	}
	recordByPhysio := make(map[int64]*domain.PaymentRecord, len(records))
	for _, record := range records {
		recordByPhysio[record.PhysiotherapistID] = record
	}

	physios, err := h.repository.GetAllPhysiotherapists(false)
	if err != nil {
		return nil, err
	}

	summaries := make([]payroll.Summary, 0, len(physios))
	for _, physio := range physios {
		shiftCount, err := h.repository.CountShiftsByPhysiotherapist(physio.ID, start, end)
		if err != nil {
			return nil, err
		}

		existing := recordByPhysio[physio.ID]
		if shiftCount == 0 && existing == nil {
			continue
		}

		record := &domain.PaymentRecord{
			ControlID:         control.ID,
			PhysiotherapistID: physio.ID,
			Status:            domain.PaymentPending,
			EmailStatus:       domain.EmailPending,
		}
		if existing != nil {
			record.RPAServiceValue = existing.RPAServiceValue
			record.RPAOtherDiscounts = existing.RPAOtherDiscounts
			record.RPAISS = existing.RPAISS
			record.RPAIRRF = existing.RPAIRRF
			record.RPAINSS = existing.RPAINSS
			record.RPATotalDiscounts = existing.RPATotalDiscounts
			record.ReceiptFileName = existing.ReceiptFileName
		}

		summary := payroll.Compute(physio, shiftCount, record.RPATotalDiscounts)
		record.GrossValue = summary.GrossValue
		record.NetValue = summary.NetValue

		if err := h.repository.UpsertPaymentRecord(record); err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (h *Handler) GetMonthlyPayments(w http.ResponseWriter, r *http.Request) {
	control := r.Context().Value(PaymentControlCtx).(*domain.MonthlyPaymentControl)

	summaries, err := h.computeMonthlyPayments(control)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pagamentos da competência obtidos com sucesso", summaries)
}

func (h *Handler) GetPaymentRecords(w http.ResponseWriter, r *http.Request) {
	control := r.Context().Value(PaymentControlCtx).(*domain.MonthlyPaymentControl)

	records, err := h.repository.GetPaymentRecords(control.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "registros de pagamento obtidos com sucesso", records)
}

func (h *Handler) DownloadRemittanceFile(w http.ResponseWriter, r *http.Request) {
	control := r.Context().Value(PaymentControlCtx).(*domain.MonthlyPaymentControl)

	summaries, err := h.computeMonthlyPayments(control)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	payments := make([]cnab.PaymentInstruction, 0, len(summaries))
	for _, summary := range summaries {
		physio, err := h.repository.GetPhysiotherapistByID(summary.PhysiotherapistID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		taxID := physio.CPF
		if physio.ContractType == domain.ContractPJ && physio.CNPJ != "" {
			taxID = physio.CNPJ
		}

		payments = append(payments, cnab.PaymentInstruction{
			Name:       physio.Name,
			TaxID:      taxID,
			PixKeyType: cnab.NormalizePixKeyType(physio.PixKeyType),
			PixKey:     physio.PixKey,
			Amount:     summary.NetValue,
		})
	}

	// the control ID keeps the sequence unique and stable per month
	file, err := cnab.Encode(h.companyProfile(), payments, int(control.ID), time.Now())
	if err != nil {
		var valErr *cnab.ValidationError
		if errors.As(err, &valErr) {
			h.errorResponse(w, r, valErr.Error())
		} else {
			h.internalServerError(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(file.Content)); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) SendPaymentReceipts(w http.ResponseWriter, r *http.Request) {
	control := r.Context().Value(PaymentControlCtx).(*domain.MonthlyPaymentControl)

	if _, err := h.computeMonthlyPayments(control); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	records, err := h.repository.GetPaymentRecords(control.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	start, end, err := payroll.MonthRange(control.ReferenceMonth)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	queued := 0
	for _, record := range records {
		if record.EmailStatus == domain.EmailSent {
			continue
		}

		physio, err := h.repository.GetPhysiotherapistByID(record.PhysiotherapistID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if physio.Email == "" {
			continue
		}

		shiftCount, err := h.repository.CountShiftsByPhysiotherapist(physio.ID, start, end)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		pdfBytes, err := h.contracts.RenderPaymentReceipt(physio, contract.Receipt{
			Month:          control.ReferenceMonth,
			ShiftCount:     shiftCount,
			GrossValue:     record.GrossValue,
			ServiceValue:   record.RPAServiceValue,
			ISS:            record.RPAISS,
			IRRF:           record.RPAIRRF,
			INSS:           record.RPAINSS,
			OtherDiscounts: record.RPAOtherDiscounts,
			TotalDiscounts: record.RPATotalDiscounts,
			NetValue:       record.NetValue,
		})
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		mailMessage := domain.MailMessage{
			Type: "payment_receipt",
			To:   physio.Email,
			Data: domain.PaymentReceiptMailData{
				RecordID:       record.ID,
				FullName:       physio.Name,
				ReferenceMonth: control.ReferenceMonth,
				NetValue:       contract.FormatMoney(record.NetValue),
				AttachmentPDF:  base64.StdEncoding.EncodeToString(pdfBytes),
				AttachmentName: fmt.Sprintf("comprovante_%s.pdf", control.ReferenceMonth),
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				MessageId:   uuid.NewString(),
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		queued++
	}

	h.successResponse(w, r, fmt.Sprintf("%d comprovante(s) enviados para a fila de e-mails", queued), nil)
}

func (h *Handler) UpdatePaymentRecordStatus(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(PaymentRecordCtx).(*domain.PaymentRecord)

	var req struct {
		Status string `json:"status" validate:"required,oneof=PENDING PAID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	record.Status = domain.PaymentStatus(req.Status)

	if err := h.repository.UpdatePaymentStatus(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "status do pagamento atualizado com sucesso", record)
}

// ApplyRPAReceiptText extracts the monetary figures from pasted RPA receipt
// text and stores them as the record's deductions.
func (h *Handler) ApplyRPAReceiptText(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(PaymentRecordCtx).(*domain.PaymentRecord)

	var req struct {
		Text            string `json:"text" validate:"required"`
		ReceiptFileName string `json:"receiptFileName"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	values := rpa.Extract(req.Text)

	record.RPAServiceValue = values.ServiceValue
	record.RPAOtherDiscounts = values.OtherDiscounts
	record.RPAISS = values.ISS
	record.RPAIRRF = values.IRRF
	record.RPAINSS = values.INSS
	record.RPATotalDiscounts = values.TotalDiscounts
	record.NetValue = record.GrossValue.Sub(values.TotalDiscounts)
	if req.ReceiptFileName != "" {
		record.ReceiptFileName = req.ReceiptFileName
	}

	if err := h.repository.UpsertPaymentRecord(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "valores do RPA aplicados com sucesso", record)
}
