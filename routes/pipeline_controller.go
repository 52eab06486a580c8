package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/orgintake/intake/app"
	"github.com/orgintake/intake/form"
	"github.com/orgintake/intake/httpx"
	"github.com/orgintake/intake/log"
)

// SubmitForm runs the submission pipeline: uploads, then one response
// upsert attributed to the organization the identifying email resolves
// to. Failures leave the session editable.
func SubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session(app, w, r)
		if !ok {
			return
		}

		err := form.Submit(r.Context(), sess, app.Store, app.Files)
		switch {
		case err == nil:
			render.JSON(w, r, sess.Render(app.Files.URL))
		case errors.Is(err, form.ErrAlreadyRunning):
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "submit.in_flight")
		case errors.Is(err, form.ErrSubmitted):
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "submit.already_submitted")
		case errors.Is(err, form.ErrEmailRequired):
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "submit.email", "please fill in your email address first")
		case errors.Is(err, form.ErrNoOrganization):
			httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "submit.organization", "no organization found for this email")
		default:
			httpx.LogInternalError(w, "submit", err)
		}
	}
}

// SaveProgress persists the current answers under the identifying
// email so they can be restored later.
func SaveProgress(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session(app, w, r)
		if !ok {
			return
		}

		err := form.SaveProgress(r.Context(), sess, app.Store)
		switch {
		case err == nil:
			render.JSON(w, r, map[string]any{"saved": true})
		case errors.Is(err, form.ErrAlreadyRunning):
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "progress.in_flight")
		case errors.Is(err, form.ErrEmailRequired):
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "progress.email", "please fill in your email address before saving")
		default:
			httpx.LogInternalError(w, "progress.save", err)
		}
	}
}

// ResumeProgress restores previously submitted answers and saved
// progress for the identifying email. A miss is an informational
// outcome, not an error.
func ResumeProgress(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session(app, w, r)
		if !ok {
			return
		}

		restored, err := form.Resume(r.Context(), sess, app.Store)
		switch {
		case err == nil:
			resp := map[string]any{
				"restored": restored,
				"form":     sess.Render(app.Files.URL),
			}
			if restored == 0 {
				resp["message"] = "no saved answers found"
			}
			render.JSON(w, r, resp)
		case errors.Is(err, form.ErrAlreadyRunning):
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "resume.in_flight")
		case errors.Is(err, form.ErrEmailRequired):
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "resume.email", "please fill in your email address first")
		case errors.Is(err, form.ErrNoOrganization):
			log.Debugf("resume.organization: no match for %q", sess.IdentifyingEmail())
			render.JSON(w, r, map[string]any{
				"restored": 0,
				"message":  "no organization found for this email",
			})
		default:
			httpx.LogInternalError(w, "progress.resume", err)
		}
	}
}
