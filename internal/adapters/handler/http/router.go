package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const loginPath = "/accounts/login/"

// NewHandler wires the public pages and the JSON API onto one router.
func NewHandler(pageHandler *PageHandler, questionHandler *QuestionHandler, authHandler *AuthHandler, userHandler *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(WithUser)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls/", http.StatusSeeOther)
	})

	r.Route("/polls", func(r chi.Router) {
		r.Get("/", pageHandler.Index)
		r.Get("/{id}/", pageHandler.Detail)
		r.Get("/{id}/results/", pageHandler.Results)
		r.With(RequireUser(loginPath)).Post("/{id}/vote/", pageHandler.Vote)
	})

	if authHandler != nil {
		r.Get(loginPath, authHandler.LoginPage)
		r.Post("/auth/google/callback", authHandler.GoogleCallback)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/polls", func(r chi.Router) {
			r.Post("/", questionHandler.CreateQuestion)
			r.Get("/{id}", questionHandler.GetQuestion)
			r.Post("/{id}/visibility", questionHandler.SetVisibility)
			r.Post("/{id}/dates", questionHandler.UpdateDates)
		})

		if userHandler != nil {
			r.With(RequireUserJSON).Get("/me", userHandler.GetMe)
		}
	})

	return r
}
