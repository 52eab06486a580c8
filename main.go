package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/orgintake/intake/app"
	"github.com/orgintake/intake/blob"
	"github.com/orgintake/intake/config"
	"github.com/orgintake/intake/database"
	"github.com/orgintake/intake/form"
	"github.com/orgintake/intake/log"
	"github.com/orgintake/intake/routes"
	"github.com/orgintake/intake/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	files, err := blob.NewFS(cfg.UploadDir, cfg.FilePrefix)
	if err != nil {
		log.Fatal("main.blob:", err)
	}

	app := app.App{
		Store:    store.NewSQL(db),
		Files:    files,
		Sessions: form.NewSessions(),
		Config:   cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
