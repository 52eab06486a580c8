package form

import "github.com/orgintake/intake/model"

// Index holds the fetched questions of one form, arranged for visibility
// checks and child traversal. Built once per fetch.
type Index struct {
	Ordered  []model.Question
	ByID     map[int]model.Question
	Children map[int][]model.Question
}

func BuildIndex(questions []model.Question) *Index {
	idx := &Index{
		Ordered:  questions,
		ByID:     make(map[int]model.Question, len(questions)),
		Children: make(map[int][]model.Question),
	}
	for _, q := range questions {
		idx.ByID[q.ID] = q
	}
	for _, q := range questions {
		if q.ParentID != nil {
			idx.Children[*q.ParentID] = append(idx.Children[*q.ParentID], q)
		}
	}
	return idx
}

// Visible decides whether a question renders under the current answers.
// Top-level questions always render. A conditional question renders only
// when its parent's current answer matches the condition value AND the
// parent itself is visible, all the way up the chain; a parent missing
// from the fetched set hides the question.
func (idx *Index) Visible(q model.Question, answers AnswerState) bool {
	// the hop limit stops a cyclic parent chain in bad data
	for hops := 0; q.ParentID != nil; hops++ {
		if hops > len(idx.ByID) {
			return false
		}
		parent, ok := idx.ByID[*q.ParentID]
		if !ok {
			return false
		}
		a, ok := answers[*q.ParentID]
		if !ok || !a.Matches(q.ConditionValue) {
			return false
		}
		q = parent
	}
	return true
}
