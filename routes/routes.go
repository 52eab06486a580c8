package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/orgintake/intake/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.Mount(app.FilePrefix, serveUploadedFiles(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/forms", OpenForm(app))

	api.Route("/sessions/{token}", func(r chi.Router) {
		r.Post("/answers", SetAnswer(app))
		r.Post("/files", AttachFile(app))
		r.Post("/toggle", ToggleGroup(app))
		r.Post("/submit", SubmitForm(app))
		r.Post("/progress", SaveProgress(app))
		r.Post("/resume", ResumeProgress(app))
	})

	return api
}

func serveUploadedFiles(app app.App) http.Handler {
	return http.StripPrefix(app.FilePrefix, http.FileServer(http.Dir(app.UploadDir)))
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
