package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/anvar-t/GymAppBack/internal/models"
	"github.com/anvar-t/GymAppBack/internal/repository"
)

var (
	ErrCoachNotFound   = errors.New("coach not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type userReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type coachProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.CoachProfile, error)
}

type workoutStore interface {
	Create(ctx context.Context, input repository.CreateWorkoutInput) (*models.Workout, error)
	ListByClient(ctx context.Context, clientID int64) ([]models.Workout, error)
	ListByCoach(ctx context.Context, coachID int64) ([]models.Workout, error)
	UpdateStatus(ctx context.Context, workoutID string, status string) (*models.Workout, error)
	UpdateStatusAndFeedback(ctx context.Context, workoutID string, status string, feedback string) (*models.Workout, error)
}

type WorkoutService struct {
	userRepo         userReader
	coachProfileRepo coachProfileReader
	workoutRepo      workoutStore
}

func NewWorkoutService(
	userRepo userReader,
	coachProfileRepo coachProfileReader,
	workoutRepo workoutStore,
) *WorkoutService {
	return &WorkoutService{
		userRepo:         userRepo,
		coachProfileRepo: coachProfileRepo,
		workoutRepo:      workoutRepo,
	}
}

type BookWorkoutInput struct {
	Date        string
	CoachEmail  string
	WorkoutType string
	DurationMin *int
}

// Book creates a Scheduled workout for the client. The coach's about
// text is copied into the workout description at this moment; later
// profile edits do not touch existing bookings. There is no conflict
// re-check here: two concurrent bookings for the same coach and instant
// both persist (see DESIGN.md).
func (s *WorkoutService) Book(
	ctx context.Context,
	clientID int64,
	input BookWorkoutInput,
) (*models.Workout, error) {
	if strings.TrimSpace(input.CoachEmail) == "" || strings.TrimSpace(input.WorkoutType) == "" {
		return nil, ErrInvalidInput
	}
	scheduledAt, err := ParseRequestInstant(input.Date)
	if err != nil {
		return nil, err
	}

	coach, err := s.userRepo.GetByEmail(ctx, input.CoachEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	if coach.Role != models.RoleCoach {
		return nil, ErrCoachNotFound
	}

	profile, err := s.coachProfileRepo.GetByUserID(ctx, coach.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	description := ""
	if profile.About != nil {
		description = *profile.About
	}

	return s.workoutRepo.Create(ctx, repository.CreateWorkoutInput{
		ClientID:    clientID,
		CoachID:     coach.ID,
		ScheduledAt: scheduledAt,
		WorkoutType: input.WorkoutType,
		Description: description,
		DurationMin: input.DurationMin,
	})
}

func (s *WorkoutService) ListForClient(ctx context.Context, clientID int64) ([]models.Workout, error) {
	return s.workoutRepo.ListByClient(ctx, clientID)
}

func (s *WorkoutService) ListForCoach(ctx context.Context, coachID int64) ([]models.Workout, error) {
	return s.workoutRepo.ListByCoach(ctx, coachID)
}

// MarkDone moves a workout to Waiting for feedback. Transitions do not
// validate the prior status: the status field is overwritten as-is, so
// direct jumps stay possible exactly as before.
func (s *WorkoutService) MarkDone(ctx context.Context, workoutID string) (*models.Workout, error) {
	return s.updateStatus(ctx, workoutID, models.WorkoutStatusWaitingForFeedback)
}

func (s *WorkoutService) Cancel(ctx context.Context, workoutID string) (*models.Workout, error) {
	return s.updateStatus(ctx, workoutID, models.WorkoutStatusCancelled)
}

// SubmitFeedback finishes a workout and records the feedback text in
// the same mutation.
func (s *WorkoutService) SubmitFeedback(
	ctx context.Context,
	workoutID string,
	feedback string,
) (*models.Workout, error) {
	if strings.TrimSpace(workoutID) == "" {
		return nil, ErrInvalidInput
	}
	workout, err := s.workoutRepo.UpdateStatusAndFeedback(
		ctx,
		workoutID,
		models.WorkoutStatusFinished,
		feedback,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *WorkoutService) updateStatus(
	ctx context.Context,
	workoutID string,
	status string,
) (*models.Workout, error) {
	if strings.TrimSpace(workoutID) == "" {
		return nil, ErrInvalidInput
	}
	workout, err := s.workoutRepo.UpdateStatus(ctx, workoutID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
