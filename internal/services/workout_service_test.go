package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/anvar-t/GymAppBack/internal/models"
	"github.com/anvar-t/GymAppBack/internal/repository"
)

type stubUserReader struct {
	users map[string]*models.User
}

func (s *stubUserReader) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type stubCoachProfileReader struct {
	profiles map[int64]*models.CoachProfile
}

func (s *stubCoachProfileReader) GetByUserID(_ context.Context, userID int64) (*models.CoachProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

// memoryWorkoutStore keeps workouts in insertion order and mimics the
// repository's overwrite-status semantics.
type memoryWorkoutStore struct {
	workouts []*models.Workout
	nextID   int
}

func (s *memoryWorkoutStore) Create(_ context.Context, input repository.CreateWorkoutInput) (*models.Workout, error) {
	s.nextID++
	clientID := input.ClientID
	coachID := input.CoachID
	workout := &models.Workout{
		ID:          "workout-" + strconv.Itoa(s.nextID),
		ClientID:    &clientID,
		CoachID:     &coachID,
		ScheduledAt: input.ScheduledAt,
		WorkoutType: input.WorkoutType,
		Description: input.Description,
		Status:      models.WorkoutStatusScheduled,
		DurationMin: input.DurationMin,
	}
	s.workouts = append(s.workouts, workout)
	return workout, nil
}

func (s *memoryWorkoutStore) ListByClient(_ context.Context, clientID int64) ([]models.Workout, error) {
	result := make([]models.Workout, 0)
	for _, workout := range s.workouts {
		if workout.ClientID != nil && *workout.ClientID == clientID {
			result = append(result, *workout)
		}
	}
	return result, nil
}

func (s *memoryWorkoutStore) ListByCoach(_ context.Context, coachID int64) ([]models.Workout, error) {
	result := make([]models.Workout, 0)
	for _, workout := range s.workouts {
		if workout.CoachID != nil && *workout.CoachID == coachID {
			result = append(result, *workout)
		}
	}
	return result, nil
}

func (s *memoryWorkoutStore) UpdateStatus(_ context.Context, workoutID string, status string) (*models.Workout, error) {
	for _, workout := range s.workouts {
		if workout.ID == workoutID {
			workout.Status = status
			return workout, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memoryWorkoutStore) UpdateStatusAndFeedback(_ context.Context, workoutID string, status string, feedback string) (*models.Workout, error) {
	for _, workout := range s.workouts {
		if workout.ID == workoutID {
			workout.Status = status
			workout.Feedback = &feedback
			return workout, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func buildWorkoutService(store *memoryWorkoutStore) *WorkoutService {
	about := "Certified kettlebell coach"
	return NewWorkoutService(
		&stubUserReader{users: map[string]*models.User{
			"coach@gym.app":  {ID: 7, FirstName: "Kim", Email: "coach@gym.app", Role: models.RoleCoach},
			"client@gym.app": {ID: 2, FirstName: "Ana", Email: "client@gym.app", Role: models.RoleClient},
		}},
		&stubCoachProfileReader{profiles: map[int64]*models.CoachProfile{
			7: {UserID: 7, About: &about},
		}},
		store,
	)
}

func TestBookSnapshotsCoachDescription(t *testing.T) {
	store := &memoryWorkoutStore{}
	service := buildWorkoutService(store)

	workout, err := service.Book(context.Background(), 2, BookWorkoutInput{
		Date:        "2024-12-16T09:00:00Z",
		CoachEmail:  "coach@gym.app",
		WorkoutType: "strength",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if workout.Status != models.WorkoutStatusScheduled {
		t.Fatalf("expected Scheduled status, got %q", workout.Status)
	}
	if workout.Description != "Certified kettlebell coach" {
		t.Fatalf("expected about text snapshot, got %q", workout.Description)
	}
	if workout.CoachID == nil || *workout.CoachID != 7 {
		t.Fatalf("expected coach 7, got %v", workout.CoachID)
	}
	if !workout.ScheduledAt.Equal(time.Date(2024, 12, 16, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected scheduled instant %v", workout.ScheduledAt)
	}
}

func TestBookUnknownCoach(t *testing.T) {
	service := buildWorkoutService(&memoryWorkoutStore{})

	if _, err := service.Book(context.Background(), 2, BookWorkoutInput{
		Date:        "2024-12-16T09:00:00Z",
		CoachEmail:  "nobody@gym.app",
		WorkoutType: "strength",
	}); err != ErrCoachNotFound {
		t.Fatalf("expected ErrCoachNotFound, got %v", err)
	}

	// A client email resolves to a user, but not a coach.
	if _, err := service.Book(context.Background(), 2, BookWorkoutInput{
		Date:        "2024-12-16T09:00:00Z",
		CoachEmail:  "client@gym.app",
		WorkoutType: "strength",
	}); err != ErrCoachNotFound {
		t.Fatalf("expected ErrCoachNotFound for non-coach email, got %v", err)
	}
}

func TestBookSameSlotTwiceIsPermitted(t *testing.T) {
	// The booking path does not re-check conflicts before writing, so
	// two bookings for the same coach and instant both persist. The
	// availability query is the only gate, and it races.
	store := &memoryWorkoutStore{}
	service := buildWorkoutService(store)

	input := BookWorkoutInput{
		Date:        "2024-12-16T09:00:00Z",
		CoachEmail:  "coach@gym.app",
		WorkoutType: "strength",
	}
	if _, err := service.Book(context.Background(), 2, input); err != nil {
		t.Fatalf("first Book: %v", err)
	}
	if _, err := service.Book(context.Background(), 3, input); err != nil {
		t.Fatalf("second Book: %v", err)
	}
	if len(store.workouts) != 2 {
		t.Fatalf("expected both bookings persisted, got %d", len(store.workouts))
	}
}

func TestWorkoutLifecycleToFinished(t *testing.T) {
	store := &memoryWorkoutStore{}
	service := buildWorkoutService(store)

	workout, err := service.Book(context.Background(), 2, BookWorkoutInput{
		Date:        "2024-12-16T09:00:00Z",
		CoachEmail:  "coach@gym.app",
		WorkoutType: "strength",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	done, err := service.MarkDone(context.Background(), workout.ID)
	if err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if done.Status != models.WorkoutStatusWaitingForFeedback {
		t.Fatalf("expected Waiting for feedback, got %q", done.Status)
	}

	finished, err := service.SubmitFeedback(context.Background(), workout.ID, "Great session")
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if finished.Status != models.WorkoutStatusFinished {
		t.Fatalf("expected Finished, got %q", finished.Status)
	}
	if finished.Feedback == nil || *finished.Feedback != "Great session" {
		t.Fatalf("expected feedback recorded, got %v", finished.Feedback)
	}
}

func TestCancelScheduledWorkout(t *testing.T) {
	store := &memoryWorkoutStore{}
	service := buildWorkoutService(store)

	workout, err := service.Book(context.Background(), 2, BookWorkoutInput{
		Date:        "2024-12-16T09:00:00Z",
		CoachEmail:  "coach@gym.app",
		WorkoutType: "strength",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	cancelled, err := service.Cancel(context.Background(), workout.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.WorkoutStatusCancelled {
		t.Fatalf("expected Cancelled, got %q", cancelled.Status)
	}
}

func TestLifecycleActionsOnMissingWorkout(t *testing.T) {
	service := buildWorkoutService(&memoryWorkoutStore{})

	if _, err := service.MarkDone(context.Background(), "missing"); err != ErrWorkoutNotFound {
		t.Fatalf("MarkDone: expected ErrWorkoutNotFound, got %v", err)
	}
	if _, err := service.Cancel(context.Background(), "missing"); err != ErrWorkoutNotFound {
		t.Fatalf("Cancel: expected ErrWorkoutNotFound, got %v", err)
	}
	if _, err := service.SubmitFeedback(context.Background(), "missing", "x"); err != ErrWorkoutNotFound {
		t.Fatalf("SubmitFeedback: expected ErrWorkoutNotFound, got %v", err)
	}
}
