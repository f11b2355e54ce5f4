// Package qti parses the QTI 1.2 dialect found in Canvas common-cartridge
// exports: per-quiz assessment files, sibling quiz metadata files, and the
// question banks that quiz sections select from.
package qti

import "github.com/kalebabebe/mitx-canvas-tools/config"

var Log = config.Cfg().GetLogger()

type QuestionType string

const (
	MultipleChoice       QuestionType = "multiple_choice"
	TrueFalse            QuestionType = "true_false"
	MultipleResponse     QuestionType = "multiple_response"
	ShortAnswer          QuestionType = "short_answer"
	Numerical            QuestionType = "numerical"
	Essay                QuestionType = "essay"
	Matching             QuestionType = "matching"
	FillInMultipleBlanks QuestionType = "fill_in_multiple_blanks"
	MultipleDropdowns    QuestionType = "multiple_dropdowns"
	Calculated           QuestionType = "calculated"
	FileUpload           QuestionType = "file_upload"
	TextOnly             QuestionType = "text_only"
	Unknown              QuestionType = "unknown"
)

type Choice struct {
	ID   string
	Text string
}

// Blank is one independent sub-response of a composite question (matching,
// fill-in-multiple-blanks, multiple-dropdowns): its own prompt, choice list
// and resolved correct choice, keyed by the response_lid ident.
type Blank struct {
	RespIdent string
	Prompt    string
	Choices   []Choice
	CorrectID string
}

// Range is an inclusive numeric answer interval.
type Range struct {
	Min float64
	Max float64
}

type CalcVar struct {
	Name string
	Min  float64
	Max  float64
}

// CalcSample is one concrete variable-value instance of a calculated
// question, with the substituted answer Canvas recorded for it.
type CalcSample struct {
	Values map[string]float64
	Answer float64
}

type CalcData struct {
	Formula   string
	Vars      []CalcVar
	Sample    *CalcSample
	Tolerance float64
}

type Question struct {
	Ident   string
	Title   string
	Type    QuestionType
	RawType string
	Text    string
	Points  float64

	// Choice-bearing types.
	Choices    []Choice
	CorrectIDs []string

	// Numerical.
	NumericAnswers []float64
	Tolerance      *float64
	Ranges         []Range

	// Composite types.
	Blanks []Blank

	// Calculated.
	Calc *CalcData
}

type Quiz struct {
	Ident     string
	Title     string
	Questions []*Question
}

// Meta carries the quiz-level settings parsed from the sibling
// assessment_meta.xml file.
type Meta struct {
	Ident              string
	Title              string
	TimeLimitMinutes   int
	AllowedAttempts    int
	ScoringPolicy      string
	ShowCorrectAnswers bool
}
