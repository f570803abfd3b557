package models

import "time"

// CoachProfile carries the coach-only attributes of a user with role
// coach. The schedule is stored alongside the profile and never leaves
// this struct in raw form: availability responses expose offered slot
// strings, not the schedule document.
type CoachProfile struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Title          *string   `json:"title"`
	About          *string   `json:"about"`
	Ratings        float64   `json:"ratings"`
	Specialization []string  `json:"specialization"`
	Schedule       Schedule  `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CoachSummary is the directory listing shape.
type CoachSummary struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	About     *string `json:"about"`
}

// CoachDetail is the public coach page shape.
type CoachDetail struct {
	ID             int64    `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Title          *string  `json:"title"`
	About          *string  `json:"about"`
	Ratings        float64  `json:"ratings"`
	Specialization []string `json:"specialization"`
}

// CoachCandidate joins the identity and profile rows for the
// availability pipeline.
type CoachCandidate struct {
	User    User
	Profile CoachProfile
}

// AvailableCoach is the presentation shape of an availability result:
// the coach's about text is renamed to description, the schedule is
// replaced by the full offered slot list for the requested date, and
// the request's date and sport are echoed back.
type AvailableCoach struct {
	CoachID      int64    `json:"coach_id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Description  string   `json:"description"`
	OfferedSlots []string `json:"offered_slots"`
	Date         string   `json:"date"`
	WorkoutType  string   `json:"workout_type"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
