package repository

import (
	"context"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

const physioColumns = `
	id, name, email, cpf, cnpj, contract_type, hour_value, additional_value,
	pix_key_type, pix_key, status, exit_date, created_at, version
`

func scanPhysio(row interface{ Scan(...any) error }) (*domain.Physiotherapist, error) {
	physio := &domain.Physiotherapist{}
	dst := []any{
		&physio.ID, &physio.Name, &physio.Email, &physio.CPF, &physio.CNPJ, &physio.ContractType,
		&physio.HourValue, &physio.AdditionalValue, &physio.PixKeyType, &physio.PixKey,
		&physio.Status, &physio.ExitDate, &physio.CreatedAt, &physio.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return physio, nil
}

func (r *Repository) teamIDsFor(ctx context.Context, physioID int64) ([]int64, error) {
	rows, err := r.dbpool.QueryContext(ctx, `SELECT team_id FROM physiotherapist_teams WHERE physiotherapist_id = $1 ORDER BY team_id`, physioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) GetPhysiotherapistByID(id int64) (*domain.Physiotherapist, error) {
	query := `SELECT ` + physioColumns + ` FROM physiotherapists WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	physio, err := scanPhysio(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if physio.TeamIDs, err = r.teamIDsFor(ctx, id); err != nil {
		return nil, err
	}

	return physio, nil
}

func (r *Repository) GetAllPhysiotherapists(onlyActive bool) ([]*domain.Physiotherapist, error) {
	query := `
		SELECT ` + physioColumns + `
		FROM physiotherapists
		WHERE ($1 = false OR status = 'ACTIVE')
		ORDER BY name
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	physios := make([]*domain.Physiotherapist, 0)
	byID := make(map[int64]*domain.Physiotherapist)
	for rows.Next() {
		physio, err := scanPhysio(rows)
		if err != nil {
			return nil, err
		}
		physio.TeamIDs = make([]int64, 0)
		physios = append(physios, physio)
		byID[physio.ID] = physio
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	memberships, err := r.dbpool.QueryContext(ctx, `SELECT physiotherapist_id, team_id FROM physiotherapist_teams ORDER BY team_id`)
	if err != nil {
		return nil, err
	}
	defer memberships.Close()

	for memberships.Next() {
		var physioID, teamID int64
		if err := memberships.Scan(&physioID, &teamID); err != nil {
			return nil, err
		}
		if physio, ok := byID[physioID]; ok {
			physio.TeamIDs = append(physio.TeamIDs, teamID)
		}
	}
	if err := memberships.Err(); err != nil {
		return nil, err
	}

	return physios, nil
}

func (r *Repository) CreatePhysiotherapist(physio *domain.Physiotherapist) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO physiotherapists (name, email, cpf, cnpj, contract_type, hour_value, additional_value, pix_key_type, pix_key, status, exit_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`

	args := []any{
		physio.Name, physio.Email, physio.CPF, physio.CNPJ, physio.ContractType,
		physio.HourValue, physio.AdditionalValue, physio.PixKeyType, physio.PixKey,
		physio.Status, physio.ExitDate,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&physio.ID, &physio.CreatedAt, &physio.Version); err != nil {
		return err
	}

	for _, teamID := range physio.TeamIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO physiotherapist_teams (physiotherapist_id, team_id) VALUES ($1, $2)`, physio.ID, teamID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdatePhysiotherapist(physio *domain.Physiotherapist) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE physiotherapists
		SET
			name = $1, email = $2, cpf = $3, cnpj = $4, contract_type = $5,
			hour_value = $6, additional_value = $7, pix_key_type = $8, pix_key = $9,
			status = $10, exit_date = $11,
			version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING created_at, version
	`

	args := []any{
		physio.Name, physio.Email, physio.CPF, physio.CNPJ, physio.ContractType,
		physio.HourValue, physio.AdditionalValue, physio.PixKeyType, physio.PixKey,
		physio.Status, physio.ExitDate, physio.ID, physio.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&physio.CreatedAt, &physio.Version); err != nil {
		return err
	}

	// Team memberships are replaced wholesale.
	if _, err := tx.ExecContext(ctx, `DELETE FROM physiotherapist_teams WHERE physiotherapist_id = $1`, physio.ID); err != nil {
		return err
	}
	for _, teamID := range physio.TeamIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO physiotherapist_teams (physiotherapist_id, team_id) VALUES ($1, $2)`, physio.ID, teamID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeletePhysiotherapist(id int64) error {
	query := `
		DELETE FROM physiotherapists WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
