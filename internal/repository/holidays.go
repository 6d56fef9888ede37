package repository

import (
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func (r *Repository) GetAllHolidays() ([]*domain.Holiday, error) {
	query := `
		SELECT id, date, name, description, created_at FROM holidays ORDER BY date
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		holiday := &domain.Holiday{}
		dst := []any{&holiday.ID, &holiday.Date, &holiday.Name, &holiday.Description, &holiday.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		holidays = append(holidays, holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

func (r *Repository) GetHolidayByID(id int64) (*domain.Holiday, error) {
	query := `
		SELECT date, name, description, created_at FROM holidays WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	holiday := &domain.Holiday{
		ID: id,
	}

	dst := []any{&holiday.Date, &holiday.Name, &holiday.Description, &holiday.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return holiday, nil
}

// IsHoliday reports whether a registered holiday exists on the exact
// calendar day.
func (r *Repository) IsHoliday(date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) GetHolidayByDate(date time.Time) (*domain.Holiday, error) {
	query := `
		SELECT id, name, description, created_at FROM holidays WHERE date = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	holiday := &domain.Holiday{
		Date: date,
	}

	dst := []any{&holiday.ID, &holiday.Name, &holiday.Description, &holiday.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(dst...); err != nil {
		return nil, err
	}

	return holiday, nil
}

func (r *Repository) CreateHoliday(holiday *domain.Holiday) error {
	query := `
		INSERT INTO holidays (date, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{holiday.Date, holiday.Name, holiday.Description}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&holiday.ID, &holiday.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateHoliday(holiday *domain.Holiday) error {
	query := `
		UPDATE holidays
		SET name = $1, description = $2
		WHERE id = $3
		RETURNING date, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{holiday.Name, holiday.Description, holiday.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&holiday.Date, &holiday.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteHoliday(id int64) error {
	query := `
		DELETE FROM holidays WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
