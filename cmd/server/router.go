package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prisma-study/srs-api/internal/api"
	apiMiddleware "github.com/prisma-study/srs-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware, wiring handlers to the application's services.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	questionHandler := api.NewQuestionHandler(app.questionService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.questionService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Put("/users/me/password", userHandler.ChangePassword)

			r.Post("/questions", questionHandler.CreateQuestion)
			r.Get("/questions", questionHandler.ListQuestions)
			r.Delete("/questions/{id}", questionHandler.DeleteQuestion)

			r.Get("/study/next", studyHandler.NextQuestion)
			r.Post("/study/{id}/answer", studyHandler.RecordAnswer)

			r.Get("/stats/ranking", statsHandler.Ranking)
			r.Get("/stats/me", statsHandler.MyStats)

			// Administrative endpoints
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)

				r.Get("/admin/users", userHandler.ListUsers)
				r.Delete("/admin/users/{username}", userHandler.DeleteUser)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
