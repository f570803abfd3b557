package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/anvar-t/GymAppBack/internal/models"
	"github.com/anvar-t/GymAppBack/internal/services"
)

type scheduleWriter interface {
	UpdateSchedule(ctx context.Context, userID int64, schedule models.Schedule) error
}

type coachWorkoutService interface {
	ListForCoach(ctx context.Context, coachID int64) ([]models.Workout, error)
	MarkDone(ctx context.Context, workoutID string) (*models.Workout, error)
}

type CoachHandler struct {
	coachProfileRepo scheduleWriter
	workoutService   coachWorkoutService
}

func NewCoachHandler(
	coachProfileRepo scheduleWriter,
	workoutService *services.WorkoutService,
) *CoachHandler {
	return &CoachHandler{
		coachProfileRepo: coachProfileRepo,
		workoutService:   workoutService,
	}
}

// UpdateSchedule replaces the coach's declared availability with one of
// the three schedule shapes. The previous schedule is discarded whole;
// there is no per-day merge.
func (h *CoachHandler) UpdateSchedule(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	coachID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	schedule, validationError := buildScheduleFromRequest(req)
	if validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationError})
	}

	if err := h.coachProfileRepo.UpdateSchedule(c.Context(), coachID, schedule); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update schedule"})
	}

	return c.JSON(fiber.Map{"message": "Updated Schedule"})
}

func (h *CoachHandler) ListWorkouts(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	coachID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workouts, err := h.workoutService.ListForCoach(c.Context(), coachID)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *CoachHandler) MarkWorkoutDone(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if _, err := currentUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req workoutActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if _, err := h.workoutService.MarkDone(c.Context(), req.WorkoutID); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Workout is marked as done"})
}
