package form

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orgintake/intake/model"
)

func TestSetAnswerIsSetLike(t *testing.T) {
	t.Parallel()

	a := StringSet()
	a = a.WithValue("iso")
	a = a.WithValue("fda")
	a = a.WithValue("iso") // duplicate

	if diff := cmp.Diff([]string{"iso", "fda"}, a.Set); diff != "" {
		t.Fatalf("duplicate check changed the set:\n%s", diff)
	}

	a = a.WithoutValue("gmp") // not present
	if diff := cmp.Diff([]string{"iso", "fda"}, a.Set); diff != "" {
		t.Fatalf("removing an absent value changed the set:\n%s", diff)
	}

	a = a.WithoutValue("iso")
	if diff := cmp.Diff([]string{"fda"}, a.Set); diff != "" {
		t.Fatalf("remove failed:\n%s", diff)
	}
}

func TestEncodeDecodeRoundTripString(t *testing.T) {
	t.Parallel()

	q := question(1, model.TypeShortText, "", "", "Name")

	for _, s := range []string{"", "plain", "with spaces and, punctuation!", "123", "a{b["} {
		value, ok := EncodeAnswer(Text(s))
		if !ok {
			t.Fatalf("text answer %q did not encode", s)
		}
		got := DecodeAnswer(q, value)
		if got.Kind != KindText || got.Text != s {
			t.Fatalf("round trip of %q gave %+v", s, got)
		}
	}
}

func TestEncodeDecodeRoundTripSet(t *testing.T) {
	t.Parallel()

	q := question(2, model.TypeMultiChoice, "", "", "Certifications")

	value, ok := EncodeAnswer(StringSet("iso", "fda", "gmp"))
	if !ok {
		t.Fatal("set answer did not encode")
	}
	if value[0] != '[' {
		t.Fatalf("set encoding %q should lead with '['", value)
	}

	got := DecodeAnswer(q, value)
	if got.Kind != KindStringSet {
		t.Fatalf("decoded kind = %v, want set", got.Kind)
	}
	want := []string{"fda", "gmp", "iso"}
	gotSorted := append([]string(nil), got.Set...)
	sort.Strings(gotSorted)
	if diff := cmp.Diff(want, gotSorted); diff != "" {
		t.Fatalf("set round trip lost elements:\n%s", diff)
	}
}

func TestEncodeDecodeRoundTripEmptySet(t *testing.T) {
	t.Parallel()

	q := question(2, model.TypeMultiChoice, "", "", "Certifications")

	// an emptied set must stay a set across repeated save/resume cycles
	a := StringSet("iso").WithoutValue("iso")
	for cycle := 0; cycle < 2; cycle++ {
		value, ok := EncodeAnswer(a)
		if !ok {
			t.Fatalf("cycle %d: empty set did not encode", cycle)
		}
		if value != "[]" {
			t.Fatalf("cycle %d: encoding = %q, want %q", cycle, value, "[]")
		}
		a = DecodeAnswer(q, value)
		if a.Kind != KindStringSet || len(a.Set) != 0 {
			t.Fatalf("cycle %d: decoded %+v, want empty set", cycle, a)
		}
	}
}

func TestDecodeFileQuestionPlainValue(t *testing.T) {
	t.Parallel()

	q := question(3, model.TypeFile, "", "", "Brochure")

	got := DecodeAnswer(q, "brochure.pdf")
	if got.Kind != KindFileRef || got.Ref != "brochure.pdf" {
		t.Fatalf("plain value for a file question should decode to a storage reference, got %+v", got)
	}
}

func TestEncodeFileHandleSkipped(t *testing.T) {
	t.Parallel()

	if _, ok := EncodeAnswer(File("x.pdf", []byte("x"))); ok {
		t.Fatal("local file handles have no stored form")
	}
}

func TestDecodeMalformedStructuredValue(t *testing.T) {
	t.Parallel()

	q := question(4, model.TypeShortText, "", "", "Notes")

	// leads with '[' but is not a set encoding: keep it as plain text
	got := DecodeAnswer(q, "[not json")
	if got.Kind != KindText || got.Text != "[not json" {
		t.Fatalf("malformed value should fall back to text, got %+v", got)
	}
}

func TestAnswerMatches(t *testing.T) {
	t.Parallel()

	if !Text("yes").Matches("yes") || Text("no").Matches("yes") {
		t.Fatal("text matching broken")
	}
	if !StringSet("a", "b").Matches("b") || StringSet("a").Matches("b") {
		t.Fatal("set matching broken")
	}
	if File("f", nil).Matches("f") || FileRef("f").Matches("f") {
		t.Fatal("file answers never match a condition")
	}
}
