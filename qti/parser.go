package qti

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseQuizFile parses one assessment_qti.xml file. A missing file or a file
// with no recognizable items yields a quiz with an empty question list, not
// an error; only unreadable/unparseable XML is reported.
func ParseQuizFile(path string) (*Quiz, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			Log.Debugf("qti: no quiz file at %s", path)
			return &Quiz{}, nil
		}
		return nil, errors.Wrap(err, "qti: reading quiz file")
	}
	root := &questestinteropXML{}
	if err := xml.Unmarshal(raw, root); err != nil {
		return nil, errors.Wrap(err, "qti: unmarshalling quiz file")
	}
	if root.Assessment == nil {
		Log.Debugf("qti: no assessment element in %s", path)
		return &Quiz{}, nil
	}
	quiz := &Quiz{
		Ident: root.Assessment.Ident,
		Title: root.Assessment.Title,
	}
	// Banks are sibling directories of the quiz directory.
	bankRoot := filepath.Dir(filepath.Dir(path))
	for i := range root.Assessment.Sections {
		collectSectionQuestions(&root.Assessment.Sections[i], bankRoot, quiz)
	}
	return quiz, nil
}

func collectSectionQuestions(sect *sectionXML, bankRoot string, quiz *Quiz) {
	for i := range sect.Items {
		if q := parseItem(&sect.Items[i]); q != nil {
			quiz.Questions = append(quiz.Questions, q)
		}
	}
	if sel := sect.SelectionOrdering; sel != nil && sel.Selection.SourceBankRef != "" {
		qs, err := questionsFromBank(bankRoot, sel.Selection.SourceBankRef, sel.Selection.SelectionNumber)
		if err != nil {
			Log.Warnf("qti: unable to resolve question bank %s: %s", sel.Selection.SourceBankRef, err.Error())
		} else {
			quiz.Questions = append(quiz.Questions, qs...)
		}
	}
	for i := range sect.Sections {
		collectSectionQuestions(&sect.Sections[i], bankRoot, quiz)
	}
}

// parseItem converts one QTI item into a Question. Items with no extractable
// question text are dropped, except text_only items which are always kept.
func parseItem(item *itemXML) *Question {
	q := &Question{
		Ident:  item.Ident,
		Title:  item.Title,
		Points: 1,
	}
	q.Type, q.RawType = questionTypeOf(item)
	if pts, ok := metadataField(item, "points_possible"); ok {
		if v, err := parseFloat(pts); err == nil {
			q.Points = v
		}
	}

	pres := item.Presentation.flattened()
	if len(pres.Materials) > 0 {
		q.Text = UnescapeEntities(pres.Materials[0].text())
	}

	switch q.Type {
	case Matching, FillInMultipleBlanks, MultipleDropdowns:
		q.Blanks = parseBlanks(pres, item.ResProcessing)
	case Numerical:
		parseNumericalAnswers(item.ResProcessing, q)
	case Calculated:
		q.Calc = parseCalculated(item.ItemprocExtension)
	case Essay, FileUpload, TextOnly:
		// No correct-answer parsing for these.
	default:
		if len(pres.ResponseLids) > 0 {
			q.Choices = parseChoices(pres.ResponseLids[0])
		}
		q.CorrectIDs = parseCorrectIDs(item.ResProcessing)
	}

	if strings.TrimSpace(q.Text) == "" && q.Type != TextOnly {
		Log.Debugf("qti: dropping question %s with no text", item.Ident)
		return nil
	}
	return q
}

func parseChoices(lid responseLidXML) []Choice {
	if lid.RenderChoice == nil {
		return nil
	}
	choices := make([]Choice, 0, len(lid.RenderChoice.Labels))
	for _, label := range lid.RenderChoice.Labels {
		text := label.Material.text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		choices = append(choices, Choice{ID: label.Ident, Text: text})
	}
	return choices
}

// questionTypeOf determines the question type from the item metadata. An
// explicit question_type field wins over the cc_profile string.
func questionTypeOf(item *itemXML) (QuestionType, string) {
	if raw, ok := metadataField(item, "question_type"); ok && raw != "" {
		return typeFromExplicit(raw), raw
	}
	if profile, ok := metadataField(item, "cc_profile"); ok && profile != "" {
		return typeFromProfile(profile), profile
	}
	return Unknown, ""
}

func typeFromExplicit(raw string) QuestionType {
	switch raw {
	case "multiple_choice_question":
		return MultipleChoice
	case "true_false_question":
		return TrueFalse
	case "multiple_answers_question":
		return MultipleResponse
	case "short_answer_question":
		return ShortAnswer
	case "numerical_question":
		return Numerical
	case "essay_question":
		return Essay
	case "matching_question":
		return Matching
	case "fill_in_multiple_blanks_question":
		return FillInMultipleBlanks
	case "multiple_dropdowns_question":
		return MultipleDropdowns
	case "calculated_question":
		return Calculated
	case "file_upload_question":
		return FileUpload
	case "text_only_question":
		return TextOnly
	}
	return Unknown
}

func typeFromProfile(profile string) QuestionType {
	switch {
	case strings.Contains(profile, "multiple_choice"):
		return MultipleChoice
	case strings.Contains(profile, "multiple_response"):
		return MultipleResponse
	case strings.Contains(profile, "true_false"):
		return TrueFalse
	case strings.Contains(profile, "short_answer"), strings.Contains(profile, "fib"):
		return ShortAnswer
	case strings.Contains(profile, "essay"):
		return Essay
	case strings.Contains(profile, "numerical"):
		return Numerical
	case strings.Contains(profile, "file_upload"):
		return FileUpload
	case strings.Contains(profile, "text_only"):
		return TextOnly
	}
	return Unknown
}

func metadataField(item *itemXML, label string) (string, bool) {
	for _, f := range item.MetadataFields {
		if f.Label == label {
			return f.Entry, true
		}
	}
	return "", false
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&nbsp;", " ",
)

// UnescapeEntities resolves the small entity set Canvas escapes question
// bodies with.
func UnescapeEntities(s string) string {
	return entityReplacer.Replace(s)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
