package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetActiveByCode(ctx context.Context, code string) (*model.Offer, error) {
	var o model.Offer
	err := r.DB.GetContext(ctx, &o, `
        SELECT * FROM offers
        WHERE code = $1 AND is_active = true AND valid_from <= now()
    `, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, offer.ErrOfferNotFound
		}
		return nil, err
	}
	return &o, nil
}
