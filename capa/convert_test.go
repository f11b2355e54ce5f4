package capa_test

import (
	"strings"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/capa"
	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/kalebabebe/mitx-canvas-tools/qti"
)

func TestConvertMultipleChoice(t *testing.T) {
	q := &qti.Question{
		Type: qti.MultipleChoice,
		Text: "<p>Pick one.</p>",
		Choices: []qti.Choice{
			{ID: "1", Text: "Wrong"},
			{ID: "2", Text: "Right"},
		},
		CorrectIDs: []string{"2"},
	}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeProblem {
		t.Fatalf("kind = %q, want problem", kind)
	}
	if !strings.Contains(body, "<multiplechoiceresponse>") {
		t.Errorf("body missing multiplechoiceresponse:\n%s", body)
	}
	if !strings.Contains(body, `<choice correct="false">Wrong</choice>`) ||
		!strings.Contains(body, `<choice correct="true">Right</choice>`) {
		t.Errorf("choice flags wrong:\n%s", body)
	}
}

func TestConvertMultipleResponseUsesCheckboxes(t *testing.T) {
	q := &qti.Question{
		Type: qti.MultipleResponse,
		Text: "Pick several.",
		Choices: []qti.Choice{
			{ID: "a", Text: "A"},
			{ID: "b", Text: "B"},
		},
		CorrectIDs: []string{"a", "b"},
	}
	body, _ := capa.Convert(q)
	if !strings.Contains(body, "<checkboxgroup>") {
		t.Errorf("body missing checkboxgroup:\n%s", body)
	}
}

func TestConvertShortAnswer(t *testing.T) {
	q := &qti.Question{
		Type:       qti.ShortAnswer,
		Text:       "Name the city.",
		CorrectIDs: []string{"Boston", "boston"},
	}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeProblem {
		t.Fatalf("kind = %q, want problem", kind)
	}
	if !strings.Contains(body, `<stringresponse answer="Boston" type="ci">`) {
		t.Errorf("primary answer missing:\n%s", body)
	}
	if !strings.Contains(body, `<additional_answer answer="boston"/>`) {
		t.Errorf("alternate answer missing:\n%s", body)
	}
}

func TestShortAnswerWithoutAnswersDegradesToOpenResponse(t *testing.T) {
	q := &qti.Question{
		Type:  qti.ShortAnswer,
		Title: "Reflection",
		Text:  "Describe your approach.",
	}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeOpenAssessment {
		t.Fatalf("kind = %q, want openassessment", kind)
	}
	if !strings.Contains(body, "<rubric>") {
		t.Errorf("body missing rubric:\n%s", body)
	}
}

func TestConvertNumerical(t *testing.T) {
	tol := 0.5
	q := &qti.Question{
		Type:           qti.Numerical,
		Text:           "How many?",
		NumericAnswers: []float64{42},
		Tolerance:      &tol,
	}
	body, _ := capa.Convert(q)
	if !strings.Contains(body, `<numericalresponse answer="42">`) {
		t.Errorf("answer missing:\n%s", body)
	}
	if !strings.Contains(body, `<responseparam type="tolerance" default="0.5"/>`) {
		t.Errorf("tolerance missing:\n%s", body)
	}
}

func TestConvertNumericalWithoutAnswerEmitsPlaceholder(t *testing.T) {
	q := &qti.Question{Type: qti.Numerical, Text: "How many?"}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeProblem {
		t.Fatalf("kind = %q, want problem", kind)
	}
	if !strings.Contains(body, "[No correct answer specified for numerical question]") {
		t.Errorf("placeholder missing:\n%s", body)
	}
}

func TestConvertBlanksOneDropdownPerBlank(t *testing.T) {
	q := &qti.Question{
		Type: qti.Matching,
		Text: "Match.",
		Blanks: []qti.Blank{
			{
				RespIdent: "r1", Prompt: "H2O",
				Choices:   []qti.Choice{{ID: "m1", Text: "Water"}, {ID: "m2", Text: "Salt"}},
				CorrectID: "m1",
			},
			{
				RespIdent: "r2", Prompt: "NaCl",
				Choices:   []qti.Choice{{ID: "m1", Text: "Water"}, {ID: "m2", Text: "Salt"}},
				CorrectID: "m2",
			},
		},
	}
	body, _ := capa.Convert(q)
	if got := strings.Count(body, "<optionresponse>"); got != 2 {
		t.Fatalf("optionresponse count = %d, want 2:\n%s", got, body)
	}
	if !strings.Contains(body, `<option correct="true">Water</option>`) {
		t.Errorf("first blank correct option wrong:\n%s", body)
	}
	if !strings.Contains(body, `<option correct="true">Salt</option>`) {
		t.Errorf("second blank correct option wrong:\n%s", body)
	}
}

func TestConvertCalculatedEmbedsFormula(t *testing.T) {
	q := &qti.Question{
		Type: qti.Calculated,
		Text: "What is x + y?",
		Calc: &qti.CalcData{
			Formula:   "x + y",
			Tolerance: 0.5,
			Sample: &qti.CalcSample{
				Values: map[string]float64{"x": 3, "y": 4},
				Answer: 7,
			},
		},
	}
	body, _ := capa.Convert(q)
	if !strings.Contains(body, `<numericalresponse answer="7">`) {
		t.Errorf("sampled answer missing:\n%s", body)
	}
	if !strings.Contains(body, "Formula: x + y") {
		t.Errorf("formula annotation missing:\n%s", body)
	}
	if !strings.Contains(body, "x = 3, y = 4") {
		t.Errorf("sample annotation missing:\n%s", body)
	}
}

func TestConvertEssayUsesFixedRubricScale(t *testing.T) {
	q := &qti.Question{Type: qti.Essay, Title: "Essay", Text: "Discuss.", Points: 10}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeOpenAssessment {
		t.Fatalf("kind = %q, want openassessment", kind)
	}
	for _, want := range []string{`points="0"`, `points="1"`, `points="2"`, `points="3"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s:\n%s", want, body)
		}
	}
}

func TestConvertTextOnlyIsHTML(t *testing.T) {
	q := &qti.Question{Type: qti.TextOnly, Text: "<p>Section header</p>"}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeHTML {
		t.Fatalf("kind = %q, want html", kind)
	}
	if body != "<p>Section header</p>" {
		t.Errorf("body = %q", body)
	}
}

func TestConvertUnknownTypeNamesIt(t *testing.T) {
	q := &qti.Question{
		Type:    qti.Unknown,
		RawType: "jumbled_sentence_question",
		Text:    "Rearrange the words.",
		Choices: []qti.Choice{{ID: "1", Text: "word"}},
	}
	body, kind := capa.Convert(q)
	if kind != ir.BlockTypeProblem {
		t.Fatalf("kind = %q, want problem", kind)
	}
	if !strings.Contains(body, "jumbled_sentence_question") {
		t.Errorf("raw type missing:\n%s", body)
	}
	if !strings.Contains(body, "Rearrange the words.") || !strings.Contains(body, "<li>word</li>") {
		t.Errorf("question context missing:\n%s", body)
	}
}

func TestRubricLevelsScaleWithPoints(t *testing.T) {
	got := capa.RubricLevels(6)
	want := [4]int{0, 2, 4, 6}
	if got != want {
		t.Errorf("RubricLevels(6) = %v, want %v", got, want)
	}
}

func TestRubricLevelsAvoidDuplicates(t *testing.T) {
	got := capa.RubricLevels(1)
	for i := 1; i < 4; i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("RubricLevels(1) = %v, not strictly increasing", got)
		}
	}
}

func TestStripWrapperTagsKeepsAllowList(t *testing.T) {
	in := `<div><p>Intro <strong>bold</strong> and <span>plain</span></p><ul><li>one</li></ul></div>`
	got := capa.StripWrapperTags(in)
	if strings.Contains(got, "<div>") || strings.Contains(got, "<p>") || strings.Contains(got, "<span>") {
		t.Errorf("wrapper tags not removed: %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("strong tag lost: %q", got)
	}
	if !strings.Contains(got, "<li>one</li>") {
		t.Errorf("list lost: %q", got)
	}
	if !strings.Contains(got, "plain") {
		t.Errorf("inner text of dropped tag lost: %q", got)
	}
}

func TestFlattenText(t *testing.T) {
	got := capa.FlattenText(`<p>Hello <em>world</em></p>`)
	if got != "Hello world" {
		t.Errorf("FlattenText = %q, want %q", got, "Hello world")
	}
}
