package routes

import (
	"github.com/Dosada05/playoff-system/handlers"
	"github.com/Dosada05/playoff-system/middleware"
	"github.com/Dosada05/playoff-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	scoreboardHandler *handlers.ScoreboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	organizerOnly := middleware.Authorize(models.RoleOrganizer)
	anyStaff := middleware.Authorize(models.RoleOrganizer, models.RoleScorekeeper)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/signup", authHandler.Register)
	router.Post("/auth/signin", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)
		r.Get("/{tournamentID}/ws", webSocketHandler.Subscribe)

		// Team registration is open while the tournament accepts entries.
		r.Post("/{tournamentID}/teams", tournamentHandler.RegisterTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(organizerOnly)

			r.Post("/", tournamentHandler.Create)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Post("/{tournamentID}/bracket", tournamentHandler.GenerateBracket)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogo)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.Get)
		r.Get("/{matchID}/scoreboard", scoreboardHandler.Get)
		r.Get("/{matchID}/submissions", matchHandler.ListSubmissions)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(anyStaff)

			r.Post("/{matchID}/scoreboard", scoreboardHandler.Start)
			r.Post("/{matchID}/scoreboard/score", scoreboardHandler.Score)
			r.Post("/{matchID}/scoreboard/reset-set", scoreboardHandler.ResetCurrentSet)
			r.Post("/{matchID}/scoreboard/lock", scoreboardHandler.SetLocked)
			r.Post("/{matchID}/scoreboard/submit", scoreboardHandler.Submit)
			r.Delete("/{matchID}/scoreboard", scoreboardHandler.Discard)
		})
	})

	router.Route("/submissions", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(organizerOnly)

		r.Post("/{submissionID}/approve", matchHandler.ApproveSubmission)
		r.Post("/{submissionID}/reject", matchHandler.RejectSubmission)
	})
}
