package repository

import (
	"context"

	"github.com/anvar-t/GymAppBack/internal/models"
)

type ClientProfileRepository struct {
	db DBTX
}

func NewClientProfileRepository(db DBTX) *ClientProfileRepository {
	return &ClientProfileRepository{db: db}
}

func (r *ClientProfileRepository) Create(
	ctx context.Context,
	userID int64,
	target string,
	preferableActivity string,
) error {
	query := `
		INSERT INTO client_profiles (user_id, target, preferable_activity)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, userID, target, preferableActivity)
	return err
}

func (r *ClientProfileRepository) GetByUserID(
	ctx context.Context,
	userID int64,
) (*models.ClientProfile, error) {
	query := `
		SELECT id, user_id, target, preferable_activity, created_at, updated_at
		FROM client_profiles
		WHERE user_id = $1
	`
	var profile models.ClientProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Target,
		&profile.PreferableActivity,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
