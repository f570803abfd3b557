package repository

import (
	"context"

	"github.com/anvar-t/GymAppBack/internal/models"
)

type CoachProfileRepository struct {
	db DBTX
}

func NewCoachProfileRepository(db DBTX) *CoachProfileRepository {
	return &CoachProfileRepository{db: db}
}

func (r *CoachProfileRepository) Create(
	ctx context.Context,
	userID int64,
	title string,
	about string,
	specialization []string,
) error {
	query := `
		INSERT INTO coach_profiles (user_id, title, about, specialization)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, userID, title, about, specialization)
	return err
}

func (r *CoachProfileRepository) GetByUserID(
	ctx context.Context,
	userID int64,
) (*models.CoachProfile, error) {
	query := `
		SELECT id, user_id, title, about, ratings, specialization, schedule, created_at, updated_at
		FROM coach_profiles
		WHERE user_id = $1
	`
	var profile models.CoachProfile
	var rawSchedule []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Title,
		&profile.About,
		&profile.Ratings,
		&profile.Specialization,
		&rawSchedule,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	schedule, err := models.DecodeSchedule(rawSchedule)
	if err != nil {
		return nil, err
	}
	profile.Schedule = schedule
	return &profile, nil
}

func (r *CoachProfileRepository) UpdateSchedule(
	ctx context.Context,
	userID int64,
	schedule models.Schedule,
) error {
	raw, err := models.EncodeSchedule(schedule)
	if err != nil {
		return err
	}

	query := `
		UPDATE coach_profiles
		SET schedule = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING id
	`
	var id int64
	return r.db.QueryRow(ctx, query, userID, raw).Scan(&id)
}

// ListCandidates returns coaches whose specialization contains the
// given sport, joined with their identity rows, in id order. A non-nil
// coachID narrows the result to that single coach.
func (r *CoachProfileRepository) ListCandidates(
	ctx context.Context,
	sport string,
	coachID *int64,
) ([]models.CoachCandidate, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.role,
			   p.id, p.user_id, p.title, p.about, p.ratings, p.specialization, p.schedule
		FROM users u
		JOIN coach_profiles p ON p.user_id = u.id
		WHERE $1 = ANY(p.specialization)
		  AND ($2::bigint IS NULL OR u.id = $2)
		ORDER BY u.id ASC
	`
	rows, err := r.db.Query(ctx, query, sport, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]models.CoachCandidate, 0)
	for rows.Next() {
		var candidate models.CoachCandidate
		var rawSchedule []byte
		if err := rows.Scan(
			&candidate.User.ID,
			&candidate.User.FirstName,
			&candidate.User.LastName,
			&candidate.User.Email,
			&candidate.User.Role,
			&candidate.Profile.ID,
			&candidate.Profile.UserID,
			&candidate.Profile.Title,
			&candidate.Profile.About,
			&candidate.Profile.Ratings,
			&candidate.Profile.Specialization,
			&rawSchedule,
		); err != nil {
			return nil, err
		}
		schedule, err := models.DecodeSchedule(rawSchedule)
		if err != nil {
			return nil, err
		}
		candidate.Profile.Schedule = schedule
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *CoachProfileRepository) ListSummaries(
	ctx context.Context,
	offset int,
	limit int,
) ([]models.CoachSummary, int, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, p.about, COUNT(*) OVER()
		FROM users u
		JOIN coach_profiles p ON p.user_id = u.id
		ORDER BY u.id ASC
		OFFSET $1 LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	summaries := make([]models.CoachSummary, 0)
	for rows.Next() {
		var summary models.CoachSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.FirstName,
			&summary.LastName,
			&summary.About,
			&total,
		); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *CoachProfileRepository) GetDetail(
	ctx context.Context,
	coachID int64,
) (*models.CoachDetail, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email,
			   p.title, p.about, p.ratings, p.specialization
		FROM users u
		JOIN coach_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`
	var detail models.CoachDetail
	err := r.db.QueryRow(ctx, query, coachID).Scan(
		&detail.ID,
		&detail.FirstName,
		&detail.LastName,
		&detail.Email,
		&detail.Title,
		&detail.About,
		&detail.Ratings,
		&detail.Specialization,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
