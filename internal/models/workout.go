package models

import "time"

const (
	WorkoutStatusScheduled          = "Scheduled"
	WorkoutStatusWaitingForFeedback = "Waiting for feedback"
	WorkoutStatusFinished           = "Finished"
	WorkoutStatusCancelled          = "Cancelled"
)

// Workout is a single booked session. Client and coach are weak
// references: deleting either user keeps the workout queryable with a
// nil reference, so both ids are nullable. Description is a snapshot of
// the coach's about text taken at booking time and never re-derived.
type Workout struct {
	ID          string    `json:"id"`
	ClientID    *int64    `json:"client_id"`
	CoachID     *int64    `json:"coach_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	WorkoutType string    `json:"workout_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Feedback    *string   `json:"feedback"`
	Ratings     float64   `json:"ratings"`
	DurationMin *int      `json:"duration_min"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
