package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/anvar-t/GymAppBack/internal/models"
	"github.com/anvar-t/GymAppBack/internal/services"
)

type availabilityFinder interface {
	FindAvailableCoaches(ctx context.Context, date string, sport string, coachID *int64) ([]models.AvailableCoach, error)
}

type clientWorkoutService interface {
	Book(ctx context.Context, clientID int64, input services.BookWorkoutInput) (*models.Workout, error)
	ListForClient(ctx context.Context, clientID int64) ([]models.Workout, error)
	Cancel(ctx context.Context, workoutID string) (*models.Workout, error)
	SubmitFeedback(ctx context.Context, workoutID string, feedback string) (*models.Workout, error)
}

type coachDirectoryRepository interface {
	ListSummaries(ctx context.Context, offset int, limit int) ([]models.CoachSummary, int, error)
	GetDetail(ctx context.Context, coachID int64) (*models.CoachDetail, error)
}

type ClientHandler struct {
	availabilityService availabilityFinder
	workoutService      clientWorkoutService
	coachRepo           coachDirectoryRepository
}

func NewClientHandler(
	availabilityService *services.AvailabilityService,
	workoutService *services.WorkoutService,
	coachRepo coachDirectoryRepository,
) *ClientHandler {
	return &ClientHandler{
		availabilityService: availabilityService,
		workoutService:      workoutService,
		coachRepo:           coachRepo,
	}
}

type bookWorkoutRequest struct {
	Date        string `json:"date"`
	CoachEmail  string `json:"coachEmail"`
	WorkoutType string `json:"workoutType"`
	DurationMin *int   `json:"duration"`
}

type workoutActionRequest struct {
	WorkoutID string `json:"workoutId"`
	Feedback  string `json:"feedback"`
}

func (h *ClientHandler) ListCoaches(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	coaches, total, err := h.coachRepo.ListSummaries(c.Context(), (page-1)*limit, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch coaches"})
	}

	return c.JSON(fiber.Map{
		"coaches":    coaches,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *ClientHandler) GetCoachDetail(c *fiber.Ctx) error {
	coachID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || coachID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}

	coach, err := h.coachRepo.GetDetail(c.Context(), coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No such Coach Found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch coach"})
	}

	return c.JSON(fiber.Map{"coach": coach})
}

// GetAvailableCoaches answers "who can train me at this instant":
// coaches matching the sport whose schedule offers a slot starting at
// the requested time and who are not already booked for it.
func (h *ClientHandler) GetAvailableCoaches(c *fiber.Ctx) error {
	date := strings.TrimSpace(c.Query("date"))
	sport := strings.TrimSpace(c.Query("sport"))
	if date == "" || sport == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing date or sport"})
	}

	var coachID *int64
	if raw := strings.TrimSpace(c.Query("coach")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
		}
		coachID = &parsed
	}

	coaches, err := h.availabilityService.FindAvailableCoaches(c.Context(), date, sport, coachID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch available coaches"})
	}

	return c.JSON(coaches)
}

func (h *ClientHandler) BookWorkout(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	clientID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req bookWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	workout, err := h.workoutService.Book(c.Context(), clientID, services.BookWorkoutInput{
		Date:        req.Date,
		CoachEmail:  req.CoachEmail,
		WorkoutType: req.WorkoutType,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booked Successfully",
		"workout": workout,
	})
}

func (h *ClientHandler) ListWorkouts(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	clientID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workouts, err := h.workoutService.ListForClient(c.Context(), clientID)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *ClientHandler) CancelWorkout(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if _, err := currentUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req workoutActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if _, err := h.workoutService.Cancel(c.Context(), req.WorkoutID); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Workout is cancelled"})
}

func (h *ClientHandler) WorkoutFeedback(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if _, err := currentUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req workoutActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if _, err := h.workoutService.SubmitFeedback(c.Context(), req.WorkoutID, req.Feedback); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Feedback submitted successfully"})
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCoachNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
	case errors.Is(err, services.ErrWorkoutNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"error": "Invalid Workout Id, no such workout found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"error": "Invalid Workout Id, no such workout found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process workout request"})
	}
}
