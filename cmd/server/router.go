package main

import (
	"net/http"

	"github.com/Husniddin989/rustili-lug-at/internal/api"
	apiMiddleware "github.com/Husniddin989/rustili-lug-at/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates the router with all middleware and API routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	limiter := apiMiddleware.NewRateLimiter(
		app.config.RateLimit.RequestsPerSecond,
		app.config.RateLimit.Burst,
	)

	wordHandler := api.NewWordHandler(app.wordService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	quizHandler := api.NewQuizHandler(app.quizService, app.logger)
	progressHandler := api.NewProgressHandler(app.progressService)

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Handler)

			r.Route("/words", func(r chi.Router) {
				r.Get("/", wordHandler.ListWords)
				r.Post("/", wordHandler.CreateWord)
				r.Post("/import", wordHandler.ImportWords)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", wordHandler.GetWord)
					r.Put("/", wordHandler.UpdateWord)
					r.Delete("/", wordHandler.DeleteWord)
					r.Post("/flashcard", wordHandler.RecordFlashcard)
					r.Post("/unknown", wordHandler.SetUnknown)
				})
			})
			r.Get("/categories", wordHandler.Categories)

			r.Get("/review/due", reviewHandler.DueWords)
			r.Post("/review/{id}", reviewHandler.Grade)

			r.Route("/quizzes", func(r chi.Router) {
				r.Post("/", quizHandler.StartQuiz)
				r.Get("/{id}", quizHandler.GetQuiz)
				r.Post("/{id}/answers", quizHandler.SubmitAnswer)
				r.Post("/{id}/finish", quizHandler.FinishQuiz)
			})

			r.Get("/progress", progressHandler.GetProgress)
		})

		r.Get("/health", api.Health(pinger, app.logger))
	})

	return r
}
