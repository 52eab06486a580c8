package form

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/orgintake/intake/model"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrAlreadyRunning  = errors.New("action already in flight")
	ErrSubmitted       = errors.New("form already submitted")
)

// Session is one viewer's state for one form: the fetched questions,
// answer state and collapse flags. UI events arrive as method calls and
// are serialized per session, the way the original single thread of
// control serialized them.
type Session struct {
	Token  string
	FormID int

	mu        sync.Mutex
	idx       *Index
	sections  []*Section
	collapse  Collapse
	answers   AnswerState
	emailQ    int // 0 when the form has no email question
	submitted bool

	submitting atomic.Bool
	saving     atomic.Bool
	resuming   atomic.Bool
}

func NewSession(formID int, questions []model.Question) *Session {
	sections := BuildGroups(questions)
	return &Session{
		Token:    uuid.NewString(),
		FormID:   formID,
		idx:      BuildIndex(questions),
		sections: sections,
		collapse: NewCollapse(sections),
		answers:  make(AnswerState),
		emailQ:   findEmailQuestion(questions),
	}
}

// findEmailQuestion picks the question whose answer identifies the
// respondent: the first top-level short text labelled as an email.
func findEmailQuestion(questions []model.Question) int {
	for _, q := range questions {
		if q.TopLevel() && q.Type == model.TypeShortText &&
			strings.Contains(strings.ToLower(q.Label), "email") {
			return q.ID
		}
	}
	return 0
}

func (s *Session) question(id int) (model.Question, error) {
	q, ok := s.idx.ByID[id]
	if !ok {
		return model.Question{}, errors.Wrapf(ErrUnknownQuestion, "id %d", id)
	}
	return q, nil
}

// textKind reports whether a question binds a single string answer.
func textKind(typ string) bool {
	switch typ {
	case model.TypeShortText, model.TypeLongText, model.TypeSingleChoice, model.TypeDropdownChoice:
		return true
	}
	return false
}

// SetText replaces the single-string answer of a text or choice
// question.
func (s *Session) SetText(id int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSubmitted
	}
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if !textKind(q.Type) {
		return errors.Errorf("question %d does not take a text answer", id)
	}
	s.answers[id] = Text(value)
	return nil
}

// Check adds a value to a multi-choice answer, Uncheck removes it. Both
// are set-like: no duplicates, removing an absent value is a no-op.
func (s *Session) Check(id int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSubmitted
	}
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if q.Type != model.TypeMultiChoice {
		return errors.Errorf("question %d is not multi-choice", id)
	}
	s.answers[id] = s.answers[id].WithValue(value)
	return nil
}

func (s *Session) Uncheck(id int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSubmitted
	}
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if q.Type != model.TypeMultiChoice {
		return errors.Errorf("question %d is not multi-choice", id)
	}
	s.answers[id] = s.answers[id].WithoutValue(value)
	return nil
}

// AttachFile stores a locally selected file as the raw handle. Nothing
// is uploaded until submission.
func (s *Session) AttachFile(id int, name string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrSubmitted
	}
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if !q.FileKind() {
		return errors.Errorf("question %d does not take a file", id)
	}
	s.answers[id] = File(name, content)
	return nil
}

// Toggle flips one collapse flag, leaving every other group alone.
func (s *Session) Toggle(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapse.Toggle(key)
}

// Render produces the current UI description.
func (s *Session) Render(resolve URLResolver) *FormView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := Render(s.idx, s.sections, s.collapse, s.answers, resolve)
	view.FormID = s.FormID
	view.Submitted = s.submitted
	return view
}

// IdentifyingEmail returns the current answer to the form's email
// question, or "" when unanswered or the form has none.
func (s *Session) IdentifyingEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identifyingEmailLocked()
}

func (s *Session) identifyingEmailLocked() string {
	if s.emailQ == 0 {
		return ""
	}
	return strings.TrimSpace(s.answers[s.emailQ].Text)
}

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// snapshot copies the state a pipeline works on, so remote I/O happens
// outside the session lock.
func (s *Session) snapshot() (questions []model.Question, idx *Index, answers AnswerState, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Ordered, s.idx, s.answers.Clone(), s.identifyingEmailLocked()
}

// mergeAnswers folds fetched entries into the answer state without
// clearing entries not present in the fetched set. Last write wins.
func (s *Session) mergeAnswers(entries AnswerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range entries {
		s.answers[id] = a
	}
}

func (s *Session) markSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = true
}

// Sessions is the registry the HTTP layer uses to find a session
// between events.
type Sessions struct {
	mu      sync.Mutex
	byToken map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]*Session)}
}

func (r *Sessions) Create(formID int, questions []model.Question) *Session {
	s := NewSession(formID, questions)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[s.Token] = s
	return s
}

func (r *Sessions) Get(token string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byToken[token]
	return s, ok
}
