package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/anvar-t/GymAppBack/internal/models"
)

type CreateWorkoutInput struct {
	ClientID    int64
	CoachID     int64
	ScheduledAt time.Time
	WorkoutType string
	Description string
	DurationMin *int
}

const workoutColumns = `id, client_id, coach_id, scheduled_at, workout_type, description,
		status, feedback, ratings, duration_min, created_at, updated_at`

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(
	ctx context.Context,
	input CreateWorkoutInput,
) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (id, client_id, coach_id, scheduled_at, workout_type, description, status, duration_min)
		VALUES ($1, $2, $3, $4, $5, $6, 'Scheduled', $7)
		RETURNING ` + workoutColumns

	row := r.db.QueryRow(
		ctx,
		query,
		uuid.NewString(),
		input.ClientID,
		input.CoachID,
		input.ScheduledAt,
		input.WorkoutType,
		input.Description,
		input.DurationMin,
	)
	return scanWorkout(row)
}

func (r *WorkoutRepository) GetByID(ctx context.Context, workoutID string) (*models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE id = $1
	`
	return scanWorkout(r.db.QueryRow(ctx, query, workoutID))
}

func (r *WorkoutRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE client_id = $1
		ORDER BY scheduled_at ASC, id ASC
	`
	return r.list(ctx, query, clientID)
}

func (r *WorkoutRepository) ListByCoach(ctx context.Context, coachID int64) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE coach_id = $1
		ORDER BY scheduled_at ASC, id ASC
	`
	return r.list(ctx, query, coachID)
}

// ListScheduledAt returns workouts still in Scheduled status booked for
// the exact instant (timestamp equality, not date-only) with any of the
// given coaches. The conflict filter relies on this pre-filtering.
func (r *WorkoutRepository) ListScheduledAt(
	ctx context.Context,
	scheduledAt time.Time,
	coachIDs []int64,
) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE scheduled_at = $1
		  AND status = 'Scheduled'
		  AND coach_id = ANY($2)
		ORDER BY id ASC
	`
	return r.list(ctx, query, scheduledAt, coachIDs)
}

func (r *WorkoutRepository) UpdateStatus(
	ctx context.Context,
	workoutID string,
	status string,
) (*models.Workout, error) {
	query := `
		UPDATE workouts
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workoutColumns
	return scanWorkout(r.db.QueryRow(ctx, query, workoutID, status))
}

func (r *WorkoutRepository) UpdateStatusAndFeedback(
	ctx context.Context,
	workoutID string,
	status string,
	feedback string,
) (*models.Workout, error) {
	query := `
		UPDATE workouts
		SET status = $2, feedback = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workoutColumns
	return scanWorkout(r.db.QueryRow(ctx, query, workoutID, status, feedback))
}

func (r *WorkoutRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.Workout, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.ClientID,
			&workout.CoachID,
			&workout.ScheduledAt,
			&workout.WorkoutType,
			&workout.Description,
			&workout.Status,
			&workout.Feedback,
			&workout.Ratings,
			&workout.DurationMin,
			&workout.CreatedAt,
			&workout.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func scanWorkout(row interface{ Scan(dest ...any) error }) (*models.Workout, error) {
	var workout models.Workout
	err := row.Scan(
		&workout.ID,
		&workout.ClientID,
		&workout.CoachID,
		&workout.ScheduledAt,
		&workout.WorkoutType,
		&workout.Description,
		&workout.Status,
		&workout.Feedback,
		&workout.Ratings,
		&workout.DurationMin,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}
