package repository

import (
	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

const teamColumns = `
	id, name,
	weekday_morning_slots, weekday_intermediate_slots, weekday_afternoon_slots, weekday_night_slots,
	weekend_morning_slots, weekend_intermediate_slots, weekend_afternoon_slots, weekend_night_slots,
	shift_value, created_at, version
`

func scanTeam(row interface{ Scan(...any) error }) (*domain.Team, error) {
	team := &domain.Team{}
	dst := []any{
		&team.ID, &team.Name,
		&team.WeekdayMorningSlots, &team.WeekdayIntermediateSlots, &team.WeekdayAfternoonSlots, &team.WeekdayNightSlots,
		&team.WeekendMorningSlots, &team.WeekendIntermediateSlots, &team.WeekendAfternoonSlots, &team.WeekendNightSlots,
		&team.ShiftValue, &team.CreatedAt, &team.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *Repository) GetTeamByID(id int64) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	return scanTeam(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetAllTeams() ([]*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY name`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *Repository) CreateTeam(team *domain.Team) error {
	query := `
		INSERT INTO teams (
			name,
			weekday_morning_slots, weekday_intermediate_slots, weekday_afternoon_slots, weekday_night_slots,
			weekend_morning_slots, weekend_intermediate_slots, weekend_afternoon_slots, weekend_night_slots,
			shift_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		team.Name,
		team.WeekdayMorningSlots, team.WeekdayIntermediateSlots, team.WeekdayAfternoonSlots, team.WeekdayNightSlots,
		team.WeekendMorningSlots, team.WeekendIntermediateSlots, team.WeekendAfternoonSlots, team.WeekendNightSlots,
		team.ShiftValue,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&team.ID, &team.CreatedAt, &team.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTeam(team *domain.Team) error {
	query := `
		UPDATE teams
		SET
			name = $1,
			weekday_morning_slots = $2, weekday_intermediate_slots = $3, weekday_afternoon_slots = $4, weekday_night_slots = $5,
			weekend_morning_slots = $6, weekend_intermediate_slots = $7, weekend_afternoon_slots = $8, weekend_night_slots = $9,
			shift_value = $10,
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		team.Name,
		team.WeekdayMorningSlots, team.WeekdayIntermediateSlots, team.WeekdayAfternoonSlots, team.WeekdayNightSlots,
		team.WeekendMorningSlots, team.WeekendIntermediateSlots, team.WeekendAfternoonSlots, team.WeekendNightSlots,
		team.ShiftValue, team.ID, team.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&team.CreatedAt, &team.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTeam(id int64) error {
	query := `
		DELETE FROM teams WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
