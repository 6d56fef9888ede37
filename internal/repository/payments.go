package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

// GetOrCreateMonthlyControl returns the control row for a reference month,
// creating it on first access.
func (r *Repository) GetOrCreateMonthlyControl(month string) (*domain.MonthlyPaymentControl, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	control := &domain.MonthlyPaymentControl{
		ReferenceMonth: month,
	}

	query := `
		SELECT id, status, created_at FROM monthly_payment_controls WHERE reference_month = $1
	`
	err := r.dbpool.QueryRowContext(ctx, query, month).Scan(&control.ID, &control.Status, &control.CreatedAt)
	if err == nil {
		return control, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	insert := `
		INSERT INTO monthly_payment_controls (reference_month, status)
		VALUES ($1, 'OPEN')
		ON CONFLICT (reference_month) DO UPDATE SET reference_month = EXCLUDED.reference_month
		RETURNING id, status, created_at
	`
	if err := r.dbpool.QueryRowContext(ctx, insert, month).Scan(&control.ID, &control.Status, &control.CreatedAt); err != nil {
		return nil, err
	}

	return control, nil
}

const paymentColumns = `
	id, control_id, physiotherapist_id, gross_value, net_value,
	rpa_service_value, rpa_other_discounts, rpa_iss, rpa_irrf, rpa_inss,
	rpa_total_discounts, receipt_file_name, status, email_status, email_sent_at, version
`

func scanPaymentRecord(row interface{ Scan(...any) error }) (*domain.PaymentRecord, error) {
	record := &domain.PaymentRecord{}
	dst := []any{
		&record.ID, &record.ControlID, &record.PhysiotherapistID,
		&record.GrossValue, &record.NetValue,
		&record.RPAServiceValue, &record.RPAOtherDiscounts, &record.RPAISS,
		&record.RPAIRRF, &record.RPAINSS, &record.RPATotalDiscounts,
		&record.ReceiptFileName, &record.Status, &record.EmailStatus,
		&record.EmailSentAt, &record.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repository) GetPaymentRecords(controlID int64) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_records WHERE control_id = $1 ORDER BY physiotherapist_id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, controlID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.PaymentRecord, 0)
	for rows.Next() {
		record, err := scanPaymentRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetPaymentRecordByID(id int64) (*domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_records WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return scanPaymentRecord(r.dbpool.QueryRowContext(ctx, query, id))
}

// UpsertPaymentRecord writes the computed values for one physiotherapist in
// one month; a recomputation overwrites values but keeps status and email
// state.
func (r *Repository) UpsertPaymentRecord(record *domain.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (
			control_id, physiotherapist_id, gross_value, net_value,
			rpa_service_value, rpa_other_discounts, rpa_iss, rpa_irrf, rpa_inss,
			rpa_total_discounts, receipt_file_name, status, email_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (control_id, physiotherapist_id) DO UPDATE SET
			gross_value = EXCLUDED.gross_value,
			net_value = EXCLUDED.net_value,
			rpa_service_value = EXCLUDED.rpa_service_value,
			rpa_other_discounts = EXCLUDED.rpa_other_discounts,
			rpa_iss = EXCLUDED.rpa_iss,
			rpa_irrf = EXCLUDED.rpa_irrf,
			rpa_inss = EXCLUDED.rpa_inss,
			rpa_total_discounts = EXCLUDED.rpa_total_discounts,
			receipt_file_name = EXCLUDED.receipt_file_name,
			version = payment_records.version + 1
		RETURNING id, status, email_status, email_sent_at, version
	`
	args := []any{
		record.ControlID, record.PhysiotherapistID, record.GrossValue, record.NetValue,
		record.RPAServiceValue, record.RPAOtherDiscounts, record.RPAISS, record.RPAIRRF,
		record.RPAINSS, record.RPATotalDiscounts, record.ReceiptFileName,
		record.Status, record.EmailStatus,
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	dst := []any{&record.ID, &record.Status, &record.EmailStatus, &record.EmailSentAt, &record.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...)
}

func (r *Repository) UpdatePaymentStatus(record *domain.PaymentRecord) error {
	query := `
		UPDATE payment_records
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query, record.Status, record.ID, record.Version).Scan(&record.Version)
}

func (r *Repository) UpdatePaymentEmailStatus(id int64, status domain.EmailStatus, sentAt *time.Time) error {
	query := `
		UPDATE payment_records
		SET email_status = $1, email_sent_at = $2, version = version + 1
		WHERE id = $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, status, sentAt, id)
	return err
}
