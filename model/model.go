package model

// Question type tags, as stored in the question table.
const (
	TypeShortText      = "short_text"
	TypeLongText       = "long_text"
	TypeSingleChoice   = "single_choice"
	TypeDropdownChoice = "dropdown_choice"
	TypeMultiChoice    = "multi_choice"
	TypeFile           = "file"
	TypeImageFile      = "image_file"
)

type Question struct {
	ID             int      `json:"id"`
	FormID         int      `json:"form_id"`
	Section        string   `json:"section,omitempty"`
	Subsection     string   `json:"subsection,omitempty"`
	Type           string   `json:"type"`
	Label          string   `json:"label"`
	Options        []Option `json:"options,omitempty"`
	ParentID       *int     `json:"parent_id,omitempty"`
	ConditionValue string   `json:"condition_value,omitempty"`
	Enabled        bool     `json:"-"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TopLevel reports whether the question is listed directly under a group,
// as opposed to being revealed beneath its parent.
func (q Question) TopLevel() bool {
	return q.ParentID == nil
}

func (q Question) FileKind() bool {
	return q.Type == TypeFile || q.Type == TypeImageFile
}

type Organization struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResponseRecord is one submitted answer, attributed to an organization.
// For file questions Answer holds the storage path, never the raw file.
type ResponseRecord struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// ProgressRecord is one partially saved answer, keyed by form and email.
type ProgressRecord struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}
