package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anvar-t/GymAppBack/internal/models"
)

var ErrInvalidDate = errors.New("invalid date")

// Request instants arrive as ISO-8601 strings and are compared as
// local wall-clock values: a trailing Z is dropped before parsing, so
// "2024-12-16T09:00:00Z" and "2024-12-16T09:00:00" book the same slot.
var requestInstantLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func ParseRequestInstant(raw string) (time.Time, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	for _, layout := range requestInstantLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// TimeLabel renders the instant the way slot strings carry their start
// times, e.g. "09:00 AM".
func TimeLabel(t time.Time) string {
	return t.Format("03:04 PM")
}

// slotStartLabel rebuilds the comparable label of a slot string
// "<start> - <end>": the start time plus the am/pm marker carried by
// the end side. Malformed slots report ok=false instead of matching.
func slotStartLabel(slot string) (string, bool) {
	start, end, found := strings.Cut(slot, " - ")
	if !found {
		return "", false
	}
	start = strings.TrimSpace(start)
	endFields := strings.Fields(end)
	if start == "" || len(endFields) == 0 {
		return "", false
	}
	marker := endFields[len(endFields)-1]
	return start + " " + marker, true
}

// IsAvailableAt reports whether the target instant is the exact start
// of an offered slot. Matching is deliberately exact-start: a request
// for an interior minute of a slot does not count as available.
func IsAvailableAt(schedule models.Schedule, target time.Time) bool {
	targetLabel := TimeLabel(target)
	for _, slot := range models.OfferedSlots(schedule, target) {
		if label, ok := slotStartLabel(slot); ok && label == targetLabel {
			return true
		}
	}
	return false
}

// FilterAvailableCoaches keeps candidates that offer a slot starting at
// the target instant and have no Scheduled workout in booked referencing
// them. The caller pre-filters booked to the exact requested instant;
// the date is not re-checked here. Candidate order is preserved.
func FilterAvailableCoaches(
	candidates []models.CoachCandidate,
	target time.Time,
	booked []models.Workout,
	date string,
	workoutType string,
) []models.AvailableCoach {
	bookedCoaches := make(map[int64]struct{}, len(booked))
	for _, workout := range booked {
		if workout.CoachID != nil && workout.Status == models.WorkoutStatusScheduled {
			bookedCoaches[*workout.CoachID] = struct{}{}
		}
	}

	available := make([]models.AvailableCoach, 0, len(candidates))
	for _, candidate := range candidates {
		if !IsAvailableAt(candidate.Profile.Schedule, target) {
			continue
		}
		if _, taken := bookedCoaches[candidate.User.ID]; taken {
			continue
		}
		available = append(available, models.AvailableCoach{
			CoachID:      candidate.User.ID,
			FirstName:    candidate.User.FirstName,
			LastName:     candidate.User.LastName,
			Description:  stringValue(candidate.Profile.About),
			OfferedSlots: models.OfferedSlots(candidate.Profile.Schedule, target),
			Date:         date,
			WorkoutType:  workoutType,
		})
	}

	return available
}

type coachCandidateLister interface {
	ListCandidates(ctx context.Context, sport string, coachID *int64) ([]models.CoachCandidate, error)
}

type scheduledWorkoutLister interface {
	ListScheduledAt(ctx context.Context, scheduledAt time.Time, coachIDs []int64) ([]models.Workout, error)
}

type AvailabilityService struct {
	coachRepo   coachCandidateLister
	workoutRepo scheduledWorkoutLister
}

func NewAvailabilityService(
	coachRepo coachCandidateLister,
	workoutRepo scheduledWorkoutLister,
) *AvailabilityService {
	return &AvailabilityService{coachRepo: coachRepo, workoutRepo: workoutRepo}
}

// FindAvailableCoaches resolves the full availability query: candidate
// coaches by sport (optionally a single coach), their bookings at the
// requested instant, then the conflict filter. Zero candidates is a
// valid empty result, not an error.
func (s *AvailabilityService) FindAvailableCoaches(
	ctx context.Context,
	date string,
	sport string,
	coachID *int64,
) ([]models.AvailableCoach, error) {
	target, err := ParseRequestInstant(date)
	if err != nil {
		return nil, err
	}

	candidates, err := s.coachRepo.ListCandidates(ctx, sport, coachID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []models.AvailableCoach{}, nil
	}

	coachIDs := make([]int64, 0, len(candidates))
	for _, candidate := range candidates {
		coachIDs = append(coachIDs, candidate.User.ID)
	}

	booked, err := s.workoutRepo.ListScheduledAt(ctx, target, coachIDs)
	if err != nil {
		return nil, err
	}

	return FilterAvailableCoaches(candidates, target, booked, date, sport), nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
