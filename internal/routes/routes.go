package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anvar-t/GymAppBack/internal/config"
	"github.com/anvar-t/GymAppBack/internal/handlers"
	"github.com/anvar-t/GymAppBack/internal/middleware"
	"github.com/anvar-t/GymAppBack/internal/repository"
	"github.com/anvar-t/GymAppBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	clientProfileRepo := repository.NewClientProfileRepository(db)
	coachProfileRepo := repository.NewCoachProfileRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	availabilityService := services.NewAvailabilityService(coachProfileRepo, workoutRepo)
	workoutService := services.NewWorkoutService(userRepo, coachProfileRepo, workoutRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, clientProfileRepo, cfg.JWTSecret)
	adminHandler := handlers.NewAdminHandler(db, userRepo)
	clientHandler := handlers.NewClientHandler(availabilityService, workoutService, coachProfileRepo)
	coachHandler := handlers.NewCoachHandler(coachProfileRepo, workoutService)

	api := app.Group("/api")

	client := api.Group("/client")
	client.Post("/signup", authHandler.Signup)
	client.Post("/signin", authHandler.Signin)

	clientProtected := client.Group("", middleware.AuthRequired(cfg.JWTSecret))
	clientProtected.Get("/coaches", clientHandler.ListCoaches)
	clientProtected.Get("/coaches/available", clientHandler.GetAvailableCoaches)
	clientProtected.Get("/coaches/:id", clientHandler.GetCoachDetail)
	clientProtected.Post("/workouts/book", clientHandler.BookWorkout)
	clientProtected.Get("/workouts", clientHandler.ListWorkouts)
	clientProtected.Post("/workouts/cancel", clientHandler.CancelWorkout)
	clientProtected.Post("/workouts/feedback", clientHandler.WorkoutFeedback)

	coach := api.Group("/coach", middleware.AuthRequired(cfg.JWTSecret))
	coach.Put("/schedule", coachHandler.UpdateSchedule)
	coach.Get("/workouts", coachHandler.ListWorkouts)
	coach.Post("/workouts/done", coachHandler.MarkWorkoutDone)

	admin := api.Group("/admin", middleware.AuthRequired(cfg.JWTSecret))
	admin.Post("/coaches", adminHandler.AddCoach)
}
