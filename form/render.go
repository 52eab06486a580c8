package form

import "github.com/orgintake/intake/model"

// URLResolver turns a storage path into a public URL for display.
type URLResolver func(path string) string

// FormView is the UI description returned to the browser: what to draw,
// with current bound values. Building it has no side effects, so the
// same inputs always produce the same view.
type FormView struct {
	FormID    int            `json:"form_id"`
	Submitted bool           `json:"submitted"`
	Sections  []*SectionView `json:"sections"`
}

type SectionView struct {
	Name      string            `json:"name"`
	Key       string            `json:"key"`
	Collapsed bool              `json:"collapsed"`
	Questions []*Node           `json:"questions,omitempty"`
	Subs      []*SubsectionView `json:"subsections,omitempty"`
}

type SubsectionView struct {
	Name      string  `json:"name"`
	Key       string  `json:"key"`
	Collapsed bool    `json:"collapsed"`
	Questions []*Node `json:"questions,omitempty"`
}

// Node is one rendered control. Value fields are populated according to
// the control kind; Children holds revealed conditional questions.
type Node struct {
	QuestionID int            `json:"question_id"`
	Control    string         `json:"control"`
	Label      string         `json:"label"`
	Options    []model.Option `json:"options,omitempty"`
	Value      string         `json:"value,omitempty"`
	Values     []string       `json:"values,omitempty"`
	FileName   string         `json:"file_name,omitempty"`
	URL        string         `json:"url,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
}

type nodeBuilder func(q model.Question, a Answer, found bool, resolve URLResolver) *Node

// controls maps question type tags to node builders. Unknown tags have
// no entry and render nothing.
var controls = map[string]nodeBuilder{
	model.TypeShortText:      textControl("text_input"),
	model.TypeLongText:       textControl("textarea"),
	model.TypeSingleChoice:   choiceControl("radio_group"),
	model.TypeDropdownChoice: choiceControl("select"),
	model.TypeMultiChoice:    buildCheckboxGroup,
	model.TypeFile:           buildFileInput("file_input"),
	model.TypeImageFile:      buildFileInput("image_input"),
}

func textControl(control string) nodeBuilder {
	return func(q model.Question, a Answer, found bool, _ URLResolver) *Node {
		n := &Node{QuestionID: q.ID, Control: control, Label: q.Label}
		if found {
			n.Value = a.Text
		}
		return n
	}
}

func choiceControl(control string) nodeBuilder {
	return func(q model.Question, a Answer, found bool, _ URLResolver) *Node {
		n := &Node{QuestionID: q.ID, Control: control, Label: q.Label, Options: q.Options}
		if found {
			n.Value = a.Text
		}
		return n
	}
}

func buildCheckboxGroup(q model.Question, a Answer, found bool, _ URLResolver) *Node {
	n := &Node{QuestionID: q.ID, Control: "checkbox_group", Label: q.Label, Options: q.Options}
	if found {
		n.Values = a.Set
	}
	return n
}

func buildFileInput(control string) nodeBuilder {
	return func(q model.Question, a Answer, found bool, resolve URLResolver) *Node {
		n := &Node{QuestionID: q.ID, Control: control, Label: q.Label}
		if !found {
			return n
		}
		switch a.Kind {
		case KindFileHandle:
			n.FileName = a.File.Name
		case KindFileRef:
			n.Value = a.Ref
			if resolve != nil {
				n.URL = resolve(a.Ref)
			}
		case KindText:
			// resumed plain value for a file question
			n.Value = a.Text
		}
		return n
	}
}

// Render walks the grouping structure and emits a node for each visible
// question, nesting revealed conditional children beneath their parent.
func Render(idx *Index, sections []*Section, collapse Collapse, answers AnswerState, resolve URLResolver) *FormView {
	view := &FormView{Sections: []*SectionView{}}

	for _, sec := range sections {
		sv := &SectionView{
			Name:      sec.Name,
			Key:       SectionKey(sec.Name),
			Collapsed: collapse.Collapsed(SectionKey(sec.Name)),
		}
		for _, sub := range sec.Subsections {
			nodes := renderQuestions(idx, sub.Questions, answers, resolve)
			if sub.Name == DefaultSubsection {
				// rendered directly inside the section, no wrapper
				sv.Questions = append(sv.Questions, nodes...)
				continue
			}
			sv.Subs = append(sv.Subs, &SubsectionView{
				Name:      sub.Name,
				Key:       SubsectionKey(sec.Name, sub.Name),
				Collapsed: collapse.Collapsed(SubsectionKey(sec.Name, sub.Name)),
				Questions: nodes,
			})
		}
		view.Sections = append(view.Sections, sv)
	}

	return view
}

func renderQuestions(idx *Index, questions []model.Question, answers AnswerState, resolve URLResolver) []*Node {
	var nodes []*Node
	for _, q := range questions {
		if n := renderTree(idx, q, answers, resolve); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// renderTree emits the node for one question plus its visible
// descendants, walking the child index iteratively.
func renderTree(idx *Index, root model.Question, answers AnswerState, resolve URLResolver) *Node {
	if !idx.Visible(root, answers) {
		return nil
	}
	top := renderOne(root, answers, resolve)
	if top == nil {
		return nil
	}

	type frame struct {
		parentID int
		node     *Node
	}
	stack := []frame{{root.ID, top}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range idx.Children[f.parentID] {
			if !idx.Visible(child, answers) {
				continue
			}
			n := renderOne(child, answers, resolve)
			if n == nil {
				continue
			}
			f.node.Children = append(f.node.Children, n)
			stack = append(stack, frame{child.ID, n})
		}
	}
	return top
}

func renderOne(q model.Question, answers AnswerState, resolve URLResolver) *Node {
	build, ok := controls[q.Type]
	if !ok {
		return nil
	}
	a, found := answers[q.ID]
	return build(q, a, found, resolve)
}
