package routes

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/orgintake/intake/app"
	"github.com/orgintake/intake/form"
	"github.com/orgintake/intake/httpx"
	"github.com/orgintake/intake/log"
)

const maxUploadMemory = 10 << 20

// OpenForm fetches the form's questions and opens a fresh session for
// the viewer. The form id comes from the `id` query parameter and
// defaults to 1 when absent or non-numeric. A failed question fetch is
// logged and rendered as an empty form, not as an error.
func OpenForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil || formID <= 0 {
			formID = 1
		}

		questions, err := app.Store.Questions(r.Context(), formID)
		if err != nil {
			log.Errorf("db.get_questions: %s", err)
			questions = nil
		}

		sess := app.Sessions.Create(formID, questions)
		render.JSON(w, r, map[string]any{
			"token": sess.Token,
			"form":  sess.Render(app.Files.URL),
		})
	}
}

func session(app app.App, w http.ResponseWriter, r *http.Request) (*form.Session, bool) {
	token := chi.URLParam(r, "token")
	sess, ok := app.Sessions.Get(token)
	if !ok {
		httpx.LogNotFound(w, "get_session", token)
		return nil, false
	}
	return sess, true
}

type answerEvent struct {
	QuestionID int    `json:"question_id"`
	Op         string `json:"op"`
	Value      string `json:"value"`
}

// SetAnswer applies one input event to the session's answer state:
// op "set" replaces a single-string answer, "check"/"uncheck" mutate a
// multi-choice set.
func SetAnswer(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session(app, w, r)
		if !ok {
			return
		}

		var ev answerEvent
		if err := render.DecodeJSON(r.Body, &ev); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		var err error
		switch ev.Op {
		case "set":
			err = sess.SetText(ev.QuestionID, ev.Value)
		case "check":
			err = sess.Check(ev.QuestionID, ev.Value)
		case "uncheck":
			err = sess.Uncheck(ev.QuestionID, ev.Value)
		default:
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.answer_op")
			return
		}
		if !answerEventOK(w, err) {
			return
		}

		render.JSON(w, r, sess.Render(app.Files.URL))
	}
}

// AttachFile stores an uploaded file as the question's raw handle for
// later submission. Nothing reaches the blob store here.
func AttachFile(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session(app, w, r)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_multipart")
			return
		}
		questionID, err := strconv.Atoi(r.FormValue("question_id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_form_param.question_id")
			return
		}

		f, header, err := r.FormFile("file")
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_form_file")
			return
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			httpx.LogInternalError(w, "request.read_form_file", err)
			return
		}

		if !answerEventOK(w, sess.AttachFile(questionID, header.Filename, content)) {
			return
		}

		render.JSON(w, r, sess.Render(app.Files.URL))
	}
}

type toggleEvent struct {
	Key string `json:"key"`
}

// ToggleGroup flips one section or subsection collapse flag.
func ToggleGroup(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session(app, w, r)
		if !ok {
			return
		}

		var ev toggleEvent
		if err := render.DecodeJSON(r.Body, &ev); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		sess.Toggle(ev.Key)
		render.JSON(w, r, sess.Render(app.Files.URL))
	}
}

func answerEventOK(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, form.ErrSubmitted):
		httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "session.submitted")
	case errors.Is(err, form.ErrUnknownQuestion):
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "session.unknown_question")
	default:
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "session.answer_event")
	}
	return false
}
