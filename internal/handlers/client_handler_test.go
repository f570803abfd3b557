package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/anvar-t/GymAppBack/internal/models"
	"github.com/anvar-t/GymAppBack/internal/services"
)

type stubAvailabilityFinder struct {
	result      []models.AvailableCoach
	err         error
	lastDate    string
	lastSport   string
	lastCoachID *int64
}

func (s *stubAvailabilityFinder) FindAvailableCoaches(_ context.Context, date string, sport string, coachID *int64) ([]models.AvailableCoach, error) {
	s.lastDate = date
	s.lastSport = sport
	s.lastCoachID = coachID
	return s.result, s.err
}

type stubClientWorkoutService struct {
	bookResult    *models.Workout
	bookErr       error
	listResult    []models.Workout
	listErr       error
	actionResult  *models.Workout
	actionErr     error
	lastClientID  int64
	lastBookInput services.BookWorkoutInput
	lastWorkoutID string
	lastFeedback  string
}

func (s *stubClientWorkoutService) Book(_ context.Context, clientID int64, input services.BookWorkoutInput) (*models.Workout, error) {
	s.lastClientID = clientID
	s.lastBookInput = input
	return s.bookResult, s.bookErr
}

func (s *stubClientWorkoutService) ListForClient(_ context.Context, clientID int64) ([]models.Workout, error) {
	s.lastClientID = clientID
	return s.listResult, s.listErr
}

func (s *stubClientWorkoutService) Cancel(_ context.Context, workoutID string) (*models.Workout, error) {
	s.lastWorkoutID = workoutID
	return s.actionResult, s.actionErr
}

func (s *stubClientWorkoutService) SubmitFeedback(_ context.Context, workoutID string, feedback string) (*models.Workout, error) {
	s.lastWorkoutID = workoutID
	s.lastFeedback = feedback
	return s.actionResult, s.actionErr
}

type stubCoachDirectory struct {
	summaries  []models.CoachSummary
	total      int
	listErr    error
	detail     *models.CoachDetail
	detailErr  error
	lastOffset int
	lastLimit  int
	lastID     int64
}

func (s *stubCoachDirectory) ListSummaries(_ context.Context, offset int, limit int) ([]models.CoachSummary, int, error) {
	s.lastOffset = offset
	s.lastLimit = limit
	return s.summaries, s.total, s.listErr
}

func (s *stubCoachDirectory) GetDetail(_ context.Context, coachID int64) (*models.CoachDetail, error) {
	s.lastID = coachID
	return s.detail, s.detailErr
}

func clientApp(handler *ClientHandler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleClient)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/client/coaches", handler.ListCoaches)
	app.Get("/api/client/coaches/available", handler.GetAvailableCoaches)
	app.Get("/api/client/coaches/:id", handler.GetCoachDetail)
	app.Post("/api/client/workouts/book", handler.BookWorkout)
	app.Get("/api/client/workouts", handler.ListWorkouts)
	app.Post("/api/client/workouts/cancel", handler.CancelWorkout)
	app.Post("/api/client/workouts/feedback", handler.WorkoutFeedback)
	return app
}

func TestGetAvailableCoachesReturnsArray(t *testing.T) {
	finder := &stubAvailabilityFinder{
		result: []models.AvailableCoach{{
			CoachID:      7,
			FirstName:    "Kim",
			LastName:     "Park",
			Description:  "Certified kettlebell coach",
			OfferedSlots: []string{"09:00 AM - 10:00 AM"},
			Date:         "2024-12-16T09:00:00",
			WorkoutType:  "strength",
		}},
	}
	handler := &ClientHandler{availabilityService: finder}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodGet,
		"/api/client/coaches/available?date=2024-12-16T09:00:00&sport=strength", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if finder.lastDate != "2024-12-16T09:00:00" || finder.lastSport != "strength" {
		t.Fatalf("unexpected query forwarding: date=%q sport=%q", finder.lastDate, finder.lastSport)
	}
	if finder.lastCoachID != nil {
		t.Fatalf("expected no coach filter, got %v", *finder.lastCoachID)
	}

	var body []models.AvailableCoach
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body) != 1 || body[0].CoachID != 7 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(body[0].OfferedSlots) != 1 {
		t.Fatalf("expected offered slots in payload, got %+v", body[0].OfferedSlots)
	}
}

func TestGetAvailableCoachesForwardsCoachFilter(t *testing.T) {
	finder := &stubAvailabilityFinder{result: []models.AvailableCoach{}}
	handler := &ClientHandler{availabilityService: finder}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodGet,
		"/api/client/coaches/available?date=2024-12-16T09:00:00&sport=yoga&coach=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if finder.lastCoachID == nil || *finder.lastCoachID != 7 {
		t.Fatalf("expected coach filter 7, got %v", finder.lastCoachID)
	}
}

func TestGetAvailableCoachesMissingParams(t *testing.T) {
	handler := &ClientHandler{availabilityService: &stubAvailabilityFinder{}}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/client/coaches/available?sport=yoga", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetAvailableCoachesInvalidDate(t *testing.T) {
	finder := &stubAvailabilityFinder{err: services.ErrInvalidDate}
	handler := &ClientHandler{availabilityService: finder}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodGet,
		"/api/client/coaches/available?date=notadate&sport=yoga", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBookWorkoutReturnsCreated(t *testing.T) {
	service := &stubClientWorkoutService{
		bookResult: &models.Workout{
			ID:          "w-1",
			WorkoutType: "strength",
			Status:      models.WorkoutStatusScheduled,
		},
	}
	handler := &ClientHandler{workoutService: service}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/client/workouts/book", strings.NewReader(`{
		"date": "2024-12-16T09:00:00Z",
		"coachEmail": "coach@gym.app",
		"workoutType": "strength"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastClientID != 42 {
		t.Fatalf("expected client id 42, got %d", service.lastClientID)
	}
	if service.lastBookInput.CoachEmail != "coach@gym.app" {
		t.Fatalf("unexpected book input: %+v", service.lastBookInput)
	}
}

func TestBookWorkoutForbiddenForCoachRole(t *testing.T) {
	service := &stubClientWorkoutService{}
	handler := &ClientHandler{workoutService: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleCoach)
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Post("/api/client/workouts/book", handler.BookWorkout)

	req := httptest.NewRequest(http.MethodPost, "/api/client/workouts/book",
		strings.NewReader(`{"date":"2024-12-16T09:00:00Z","coachEmail":"coach@gym.app","workoutType":"strength"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.lastClientID != 0 {
		t.Fatalf("service should not have been called")
	}
}

func TestBookWorkoutUnknownCoach(t *testing.T) {
	service := &stubClientWorkoutService{bookErr: services.ErrCoachNotFound}
	handler := &ClientHandler{workoutService: service}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/client/workouts/book",
		strings.NewReader(`{"date":"2024-12-16T09:00:00Z","coachEmail":"nobody@gym.app","workoutType":"strength"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCancelWorkoutNotFound(t *testing.T) {
	service := &stubClientWorkoutService{actionErr: services.ErrWorkoutNotFound}
	handler := &ClientHandler{workoutService: service}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/client/workouts/cancel",
		strings.NewReader(`{"workoutId":"missing"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Error != "Invalid Workout Id, no such workout found" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestWorkoutFeedbackForwardsPayload(t *testing.T) {
	service := &stubClientWorkoutService{
		actionResult: &models.Workout{ID: "w-1", Status: models.WorkoutStatusFinished},
	}
	handler := &ClientHandler{workoutService: service}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/client/workouts/feedback",
		strings.NewReader(`{"workoutId":"w-1","feedback":"Great session"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastWorkoutID != "w-1" || service.lastFeedback != "Great session" {
		t.Fatalf("unexpected forwarding: id=%q feedback=%q", service.lastWorkoutID, service.lastFeedback)
	}
}

func TestListCoachesClampsLimitAndBuildsPagination(t *testing.T) {
	directory := &stubCoachDirectory{
		summaries: []models.CoachSummary{{ID: 7, FirstName: "Kim"}},
		total:     120,
	}
	handler := &ClientHandler{coachRepo: directory}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/client/coaches?page=2&limit=500", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if directory.lastLimit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, directory.lastLimit)
	}
	if directory.lastOffset != maxPageLimit {
		t.Fatalf("expected offset for page 2, got %d", directory.lastOffset)
	}

	var body struct {
		Coaches    []models.CoachSummary `json:"coaches"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Pagination.Total != 120 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestGetCoachDetailNotFound(t *testing.T) {
	directory := &stubCoachDirectory{detailErr: pgx.ErrNoRows}
	handler := &ClientHandler{coachRepo: directory}

	app := clientApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/client/coaches/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Error != "No such Coach Found" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestMapWorkoutErrorDefaultsToInternalServerError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return mapWorkoutError(c, errors.New("boom"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
