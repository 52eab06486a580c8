package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orgintake/intake/model"
)

func renderFixture() ([]model.Question, *Index, []*Section, Collapse) {
	questions := []model.Question{
		question(1, model.TypeShortText, "Company", "", "Name"),
		question(2, model.TypeSingleChoice, "Company", "", "Do you export?", opt("yes"), opt("no")),
		conditional(3, model.TypeMultiChoice, "Markets", 2, "yes", opt("eu"), opt("us")),
		question(4, model.TypeFile, "Documents", "Legal", "Registration"),
		question(5, model.TypeImageFile, "Documents", "Legal", "Facility photo"),
		question(6, "signature_pad", "Documents", "", "Sign here"), // unknown tag
	}
	idx := BuildIndex(questions)
	sections := BuildGroups(questions)
	return questions, idx, sections, NewCollapse(sections)
}

func TestRenderDispatch(t *testing.T) {
	t.Parallel()

	_, idx, sections, collapse := renderFixture()
	answers := AnswerState{
		1: Text("Acme"),
		2: Text("yes"),
		3: StringSet("eu"),
		4: File("registration.pdf", []byte("%PDF")),
		5: FileRef("photos/facility.jpg"),
	}
	resolve := func(p string) string { return "/files/" + p }

	view := Render(idx, sections, collapse, answers, resolve)

	if len(view.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(view.Sections))
	}

	company := view.Sections[0]
	if company.Name != "Company" || len(company.Questions) != 2 {
		t.Fatalf("company section rendered wrong: %+v", company)
	}
	if company.Questions[0].Control != "text_input" || company.Questions[0].Value != "Acme" {
		t.Fatalf("text node wrong: %+v", company.Questions[0])
	}

	export := company.Questions[1]
	if export.Control != "radio_group" || len(export.Options) != 2 {
		t.Fatalf("radio node wrong: %+v", export)
	}
	if len(export.Children) != 1 {
		t.Fatalf("revealed child missing: %+v", export)
	}
	child := export.Children[0]
	if child.Control != "checkbox_group" {
		t.Fatalf("child control = %q", child.Control)
	}
	if diff := cmp.Diff([]string{"eu"}, child.Values); diff != "" {
		t.Fatalf("child bound values:\n%s", diff)
	}

	docs := view.Sections[1]
	if len(docs.Subs) != 1 || docs.Subs[0].Name != "Legal" {
		t.Fatalf("legal subsection wrong: %+v", docs)
	}
	legal := docs.Subs[0].Questions
	if legal[0].Control != "file_input" || legal[0].FileName != "registration.pdf" {
		t.Fatalf("file node wrong: %+v", legal[0])
	}
	if legal[1].Control != "image_input" || legal[1].URL != "/files/photos/facility.jpg" {
		t.Fatalf("image node wrong: %+v", legal[1])
	}

	// unknown type renders nothing, and must not panic
	if len(docs.Questions) != 0 {
		t.Fatalf("unknown type produced a node: %+v", docs.Questions)
	}
}

func TestRenderHidesUnmetConditionals(t *testing.T) {
	t.Parallel()

	_, idx, sections, collapse := renderFixture()
	answers := AnswerState{2: Text("no"), 3: StringSet("eu")}

	view := Render(idx, sections, collapse, answers, nil)
	export := view.Sections[0].Questions[1]
	if len(export.Children) != 0 {
		t.Fatalf("hidden child rendered: %+v", export.Children)
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	_, idx, sections, collapse := renderFixture()
	answers := AnswerState{1: Text("Acme"), 2: Text("yes"), 3: StringSet("eu", "us")}

	first := Render(idx, sections, collapse, answers, nil)
	second := Render(idx, sections, collapse, answers, nil)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("identical inputs rendered differently:\n%s", diff)
	}
}

func TestRenderNestedConditionals(t *testing.T) {
	t.Parallel()

	questions := []model.Question{
		question(1, model.TypeSingleChoice, "", "", "Outer", opt("yes"), opt("no")),
		conditional(2, model.TypeSingleChoice, "Middle", 1, "yes", opt("yes"), opt("no")),
		conditional(3, model.TypeShortText, "Inner", 2, "yes"),
	}
	idx := BuildIndex(questions)
	sections := BuildGroups(questions)

	answers := AnswerState{1: Text("yes"), 2: Text("yes")}
	view := Render(idx, sections, NewCollapse(sections), answers, nil)

	outer := view.Sections[0].Questions[0]
	if len(outer.Children) != 1 || len(outer.Children[0].Children) != 1 {
		t.Fatalf("nested reveal broken: %+v", outer)
	}
	if outer.Children[0].Children[0].QuestionID != 3 {
		t.Fatalf("wrong inner child: %+v", outer.Children[0].Children[0])
	}

	// collapsing the middle answer hides the whole subtree below it
	answers[2] = Text("no")
	view = Render(idx, sections, NewCollapse(sections), answers, nil)
	outer = view.Sections[0].Questions[0]
	if len(outer.Children) != 1 || len(outer.Children[0].Children) != 0 {
		t.Fatalf("subtree not hidden: %+v", outer)
	}
}
