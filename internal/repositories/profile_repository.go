package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{
		db: db,
	}
}

// GetByID retrieves a display profile by user ID
func (r *profileRepository) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	query := `
		SELECT id, first_name, last_name, avatar_url
		FROM profiles
		WHERE id = ?
		LIMIT 1
	`

	var profile models.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.AvatarURL,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: profile %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return &profile, nil
}
