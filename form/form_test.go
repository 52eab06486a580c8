package form

import (
	"github.com/orgintake/intake/model"
)

// test fixture helpers shared by the form package tests

func question(id int, typ, section, subsection, label string, options ...model.Option) model.Question {
	return model.Question{
		ID:         id,
		FormID:     1,
		Section:    section,
		Subsection: subsection,
		Type:       typ,
		Label:      label,
		Options:    options,
		Enabled:    true,
	}
}

func conditional(id int, typ, label string, parentID int, condition string, options ...model.Option) model.Question {
	q := question(id, typ, "", "", label, options...)
	q.ParentID = &parentID
	q.ConditionValue = condition
	return q
}

func opt(v string) model.Option {
	return model.Option{Label: v, Value: v}
}

func emailQuestion(id int) model.Question {
	return question(id, model.TypeShortText, "", "", "Contact Email")
}
