package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jswirski/tms-api/internal/api/middleware"
	"github.com/jswirski/tms-api/internal/api/shared"
)

// NewRouter assembles the full route tree. The public auth endpoints sit
// outside the bearer-token group; everything else requires a login token.
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	authMiddleware *middleware.AuthMiddleware,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public lifecycle endpoints
			r.Post("/register", authHandler.Register)
			r.Get("/confirm/registration/{id}/{token}", authHandler.ConfirmRegistration)
			r.Post("/login", authHandler.Login)
			r.Post("/password/forgot", authHandler.ForgotPassword)
			r.Get("/reset/password/{id}/{token}", authHandler.ResetPassword)
			r.Post("/reset/password/{id}/{token}", authHandler.SetNewPassword)

			// Protected account management
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/password", authHandler.UpdatePassword)
				r.Put("/username", authHandler.UpdateUsername)
				r.Put("/role", authHandler.UpdateRole)
				r.Get("/users", authHandler.ListUsers)
				// Static segment keeps the email wildcard from clashing
				// with the {id} wildcard on DELETE.
				r.Get("/users/email/{email}", authHandler.FindUser)
				r.Delete("/users/{id}", authHandler.DeleteUser)
				r.Post("/emails", authHandler.AllowEmail)
				r.Put("/emails", authHandler.UpdateAllowedEmail)
				r.Get("/emails", authHandler.ListAllowedEmails)
				r.Delete("/emails/{id}", authHandler.DeleteAllowedEmail)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Put("/{id}", taskHandler.Update)
			r.Patch("/{id}/status", taskHandler.UpdateStatus)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return r
}
