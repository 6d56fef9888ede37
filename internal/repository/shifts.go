package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT date, period, physiotherapist_id, team_id, created_at
		FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.Date, &shift.Period, &shift.PhysiotherapistID, &shift.TeamID, &shift.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetShiftsByTeam(teamID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, date, period, physiotherapist_id, team_id, created_at
		FROM shifts WHERE team_id = $1 ORDER BY date, period
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.queryShifts(ctx, query, teamID)
}

// GetShiftsInRange returns every shift with start <= date < end.
func (r *Repository) GetShiftsInRange(start, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, date, period, physiotherapist_id, team_id, created_at
		FROM shifts WHERE date >= $1 AND date < $2 ORDER BY date, period
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.queryShifts(ctx, query, start, end)
}

func (r *Repository) queryShifts(ctx context.Context, query string, args ...any) ([]*domain.Shift, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Date, &shift.Period, &shift.PhysiotherapistID, &shift.TeamID, &shift.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// CountShiftSlots returns the occupancy of one (date, period, team) slot.
func (r *Repository) CountShiftSlots(date time.Time, period domain.ShiftPeriod, teamID int64) (int32, error) {
	query := `
		SELECT COUNT(*) FROM shifts WHERE date = $1 AND period = $2 AND team_id = $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, date, period, teamID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// HasShift reports whether the physiotherapist already holds a shift at the
// exact (date, period), in any team.
func (r *Repository) HasShift(date time.Time, period domain.ShiftPeriod, physioID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM shifts WHERE date = $1 AND period = $2 AND physiotherapist_id = $3)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, date, period, physioID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// CountShiftsOnDate is used by holiday registration to refuse dates that
// already carry assignments.
func (r *Repository) CountShiftsOnDate(date time.Time) (int32, error) {
	query := `
		SELECT COUNT(*) FROM shifts WHERE date = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountShiftsByPhysiotherapist counts one physiotherapist's shifts with
// start <= date < end.
func (r *Repository) CountShiftsByPhysiotherapist(physioID int64, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM shifts WHERE physiotherapist_id = $1 AND date >= $2 AND date < $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var count int
	if err := r.dbpool.QueryRowContext(ctx, query, physioID, start, end).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// lockTeamAndCount serializes admissions per (date, period, team) by locking
// the team row before re-counting occupancy inside the transaction. This is
// the authoritative capacity guard; the roster pre-check only exists for
// early rejection.
func lockTeamAndCount(ctx context.Context, tx *sql.Tx, date time.Time, period domain.ShiftPeriod, teamID int64) (int32, error) {
	var locked int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&locked); err != nil {
		return 0, err
	}

	var count int32
	query := `SELECT COUNT(*) FROM shifts WHERE date = $1 AND period = $2 AND team_id = $3`
	if err := tx.QueryRowContext(ctx, query, date, period, teamID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CreateShiftGuarded inserts the shift unless the slot is already at
// capacity, returning ErrCapacityExceeded in that case. Duplicate
// (date, period, physiotherapist) inserts surface as the
// shifts_date_period_physiotherapist_id_key constraint violation.
func (r *Repository) CreateShiftGuarded(shift *domain.Shift, capacity int32) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	occupancy, err := lockTeamAndCount(ctx, tx, shift.Date, shift.Period, shift.TeamID)
	if err != nil {
		return err
	}
	if occupancy >= capacity {
		return ErrCapacityExceeded
	}

	query := `
		INSERT INTO shifts (date, period, physiotherapist_id, team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	args := []any{shift.Date, shift.Period, shift.PhysiotherapistID, shift.TeamID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// MoveShiftGuarded changes a shift's (date, period, team) under the same
// capacity guard as creation. The shift itself is excluded from the target
// occupancy count so moves within a slot do not self-collide.
func (r *Repository) MoveShiftGuarded(shift *domain.Shift, capacity int32) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var locked int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM teams WHERE id = $1 FOR UPDATE`, shift.TeamID).Scan(&locked); err != nil {
		return err
	}

	var occupancy int32
	countQuery := `
		SELECT COUNT(*) FROM shifts
		WHERE date = $1 AND period = $2 AND team_id = $3 AND id <> $4
	`
	if err := tx.QueryRowContext(ctx, countQuery, shift.Date, shift.Period, shift.TeamID, shift.ID).Scan(&occupancy); err != nil {
		return err
	}
	if occupancy >= capacity {
		return ErrCapacityExceeded
	}

	query := `
		UPDATE shifts
		SET date = $1, period = $2, team_id = $3, physiotherapist_id = $4
		WHERE id = $5
		RETURNING created_at
	`
	args := []any{shift.Date, shift.Period, shift.TeamID, shift.PhysiotherapistID, shift.ID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
