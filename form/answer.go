package form

import (
	"github.com/goccy/go-json"

	"github.com/orgintake/intake/model"
)

type AnswerKind int

const (
	KindText AnswerKind = iota
	KindStringSet
	KindFileHandle
	KindFileRef
)

// FileHandle is a locally selected file that has not been uploaded yet.
type FileHandle struct {
	Name    string
	Content []byte
}

// Answer is one entry of the answer state. Exactly one of the value
// fields is meaningful, selected by Kind.
type Answer struct {
	Kind AnswerKind
	Text string
	Set  []string
	File *FileHandle
	Ref  string
}

func Text(s string) Answer {
	return Answer{Kind: KindText, Text: s}
}

func StringSet(values ...string) Answer {
	a := Answer{Kind: KindStringSet}
	for _, v := range values {
		a = a.WithValue(v)
	}
	return a
}

func File(name string, content []byte) Answer {
	return Answer{Kind: KindFileHandle, File: &FileHandle{Name: name, Content: content}}
}

func FileRef(path string) Answer {
	return Answer{Kind: KindFileRef, Ref: path}
}

// WithValue returns the set answer with value added. Adding a value
// already present is a no-op, insertion order is kept.
func (a Answer) WithValue(v string) Answer {
	for _, have := range a.Set {
		if have == v {
			return a
		}
	}
	set := make([]string, 0, len(a.Set)+1)
	set = append(set, a.Set...)
	set = append(set, v)
	return Answer{Kind: KindStringSet, Set: set}
}

// WithoutValue returns the set answer with value removed. Removing a
// value not present is a no-op.
func (a Answer) WithoutValue(v string) Answer {
	set := make([]string, 0, len(a.Set))
	for _, have := range a.Set {
		if have != v {
			set = append(set, have)
		}
	}
	return Answer{Kind: KindStringSet, Set: set}
}

// Contains reports set membership. False for non-set answers.
func (a Answer) Contains(v string) bool {
	for _, have := range a.Set {
		if have == v {
			return true
		}
	}
	return false
}

// Matches compares the answer against a condition value using the same
// representation the input binding stores: plain equality for text, set
// membership for multi-choice.
func (a Answer) Matches(cond string) bool {
	switch a.Kind {
	case KindText:
		return a.Text == cond
	case KindStringSet:
		return a.Contains(cond)
	default:
		return false
	}
}

// AnswerState maps question identifier to current answer. A missing key
// means unanswered, which is distinct from an empty text answer.
type AnswerState map[int]Answer

func (s AnswerState) Clone() AnswerState {
	out := make(AnswerState, len(s))
	for id, a := range s {
		out[id] = a
	}
	return out
}

// EncodeAnswer converts an answer to its stored text form. String sets
// are encoded as a JSON array so they can be told apart from plain text
// on decode. Local file handles have no stored form: ok is false and the
// entry must be skipped by the caller.
func EncodeAnswer(a Answer) (value string, ok bool) {
	switch a.Kind {
	case KindText:
		return a.Text, true
	case KindStringSet:
		if len(a.Set) == 0 {
			// a nil slice would marshal to "null" and lose the set kind
			return "[]", true
		}
		b, err := json.Marshal(a.Set)
		if err != nil {
			return "", false
		}
		return string(b), true
	case KindFileRef:
		return a.Ref, true
	default:
		return "", false
	}
}

// DecodeAnswer is the inverse of EncodeAnswer. A value is treated as
// encoded structured data only if its leading character is '{' or '[';
// everything else is a plain string. The owning question decides whether
// a plain string is text or a storage reference.
func DecodeAnswer(q model.Question, value string) Answer {
	if len(value) > 0 && (value[0] == '[' || value[0] == '{') {
		var set []string
		if err := json.Unmarshal([]byte(value), &set); err == nil {
			return StringSet(set...)
		}
		// not a well-formed set encoding, fall through to plain text
	}
	if q.FileKind() {
		return FileRef(value)
	}
	return Text(value)
}
