package repositories

import (
	"context"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdatePicture(ctx context.Context, userID uuid.UUID, picture string) error
	ListPictures(ctx context.Context) ([]string, error)
}

type profileRepo struct {
	db Database
}

func NewProfileRepo(db Database) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, picture, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, profile.ID, profile.UserID, profile.Picture)
	return err
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT id, user_id, picture, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&profile.ID, &profile.UserID, &profile.Picture, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) UpdatePicture(ctx context.Context, userID uuid.UUID, picture string) error {
	query := `UPDATE profiles SET picture = $1, updated_at = NOW() WHERE user_id = $2`
	_, err := r.db.Exec(ctx, query, picture, userID)
	return err
}

// ListPictures returns every picture object name currently referenced by a
// profile. Used by the orphaned-media sweep job.
func (r *profileRepo) ListPictures(ctx context.Context) ([]string, error) {
	query := `SELECT picture FROM profiles`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pictures []string
	for rows.Next() {
		var picture string
		if err := rows.Scan(&picture); err != nil {
			return nil, err
		}
		pictures = append(pictures, picture)
	}
	return pictures, rows.Err()
}
