package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/config"
)

// ErrCapacityExceeded is returned by the guarded shift writes when the
// transactional re-count shows the slot is already full. It is the
// authoritative capacity guard; the roster decision is advisory.
var ErrCapacityExceeded = errors.New("shift slot capacity exceeded")

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) txContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}
