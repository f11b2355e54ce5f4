// Package capa maps parsed QTI questions onto OLX component bodies: CAPA
// problem markup for auto-checked types, open-response (ORA) markup for
// manually graded ones, and plain HTML for display-only items. Bodies are
// inner markup; the exporter wraps them in the component root element.
package capa

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/kalebabebe/mitx-canvas-tools/qti"
)

// Convert maps one parsed question to a component body and block type. It
// always produces something; unrecognized shapes degrade to placeholder
// problems so no question is silently dropped.
func Convert(q *qti.Question) (body string, blockType string) {
	switch q.Type {
	case qti.MultipleChoice, qti.TrueFalse:
		return singleSelectBody(q), ir.BlockTypeProblem
	case qti.MultipleResponse:
		return multiSelectBody(q), ir.BlockTypeProblem
	case qti.ShortAnswer:
		if len(q.CorrectIDs) == 0 {
			// No accepted answers to match against: grade it as an open
			// response instead.
			return OpenResponseBody(q.Title, StripWrapperTags(q.Text), essayPoints), ir.BlockTypeOpenAssessment
		}
		return stringBody(q), ir.BlockTypeProblem
	case qti.Numerical:
		return numericalBody(q), ir.BlockTypeProblem
	case qti.Essay:
		return OpenResponseBody(q.Title, StripWrapperTags(q.Text), essayPoints), ir.BlockTypeOpenAssessment
	case qti.Matching, qti.FillInMultipleBlanks, qti.MultipleDropdowns:
		return blanksBody(q), ir.BlockTypeProblem
	case qti.Calculated:
		return calculatedBody(q), ir.BlockTypeProblem
	case qti.FileUpload:
		return fileUploadBody(q), ir.BlockTypeProblem
	case qti.TextOnly:
		return q.Text, ir.BlockTypeHTML
	default:
		return unsupportedBody(q), ir.BlockTypeProblem
	}
}

func questionTextP(q *qti.Question) string {
	text := StripWrapperTags(q.Text)
	if text == "" {
		return ""
	}
	return "<p>" + text + "</p>\n"
}

func esc(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isCorrect(id string, correct []string) bool {
	for _, c := range correct {
		if c == id {
			return true
		}
	}
	return false
}

func singleSelectBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	sb.WriteString("<multiplechoiceresponse>\n  <choicegroup type=\"MultipleChoice\">\n")
	for _, c := range q.Choices {
		sb.WriteString(fmt.Sprintf("    <choice correct=\"%t\">%s</choice>\n", isCorrect(c.ID, q.CorrectIDs), esc(c.Text)))
	}
	sb.WriteString("  </choicegroup>\n</multiplechoiceresponse>")
	return sb.String()
}

func multiSelectBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	sb.WriteString("<choiceresponse>\n  <checkboxgroup>\n")
	for _, c := range q.Choices {
		sb.WriteString(fmt.Sprintf("    <choice correct=\"%t\">%s</choice>\n", isCorrect(c.ID, q.CorrectIDs), esc(c.Text)))
	}
	sb.WriteString("  </checkboxgroup>\n</choiceresponse>")
	return sb.String()
}

func stringBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	sb.WriteString(fmt.Sprintf("<stringresponse answer=\"%s\" type=\"ci\">\n", esc(q.CorrectIDs[0])))
	for _, alt := range q.CorrectIDs[1:] {
		sb.WriteString(fmt.Sprintf("  <additional_answer answer=\"%s\"/>\n", esc(alt)))
	}
	sb.WriteString("  <textline size=\"20\"/>\n</stringresponse>")
	return sb.String()
}

func numericalBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	if len(q.NumericAnswers) == 0 {
		sb.WriteString("<p>[No correct answer specified for numerical question]</p>")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("<numericalresponse answer=\"%s\">\n", formatFloat(q.NumericAnswers[0])))
	if q.Tolerance != nil {
		sb.WriteString(fmt.Sprintf("  <responseparam type=\"tolerance\" default=\"%s\"/>\n", formatFloat(*q.Tolerance)))
	}
	sb.WriteString("  <formulaequationinput/>\n</numericalresponse>")
	return sb.String()
}

// blanksBody renders one dropdown-style sub-response per blank of a
// matching / fill-in-multiple-blanks / multiple-dropdowns question.
func blanksBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	for _, blank := range q.Blanks {
		if prompt := StripWrapperTags(blank.Prompt); prompt != "" {
			sb.WriteString("<p>" + prompt + "</p>\n")
		}
		sb.WriteString("<optionresponse>\n  <optioninput>\n")
		for _, c := range blank.Choices {
			sb.WriteString(fmt.Sprintf("    <option correct=\"%t\">%s</option>\n", c.ID == blank.CorrectID, esc(c.Text)))
		}
		sb.WriteString("  </optioninput>\n</optionresponse>\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func calculatedBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	calc := q.Calc
	if calc == nil || calc.Sample == nil {
		sb.WriteString("<p>[No variable sample available for calculated question]</p>")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("<numericalresponse answer=\"%s\">\n", formatFloat(calc.Sample.Answer)))
	if calc.Tolerance > 0 {
		sb.WriteString(fmt.Sprintf("  <responseparam type=\"tolerance\" default=\"%s\"/>\n", formatFloat(calc.Tolerance)))
	}
	sb.WriteString("  <formulaequationinput/>\n</numericalresponse>\n")
	sb.WriteString("<p><em>Formula: " + esc(calc.Formula) + "</em></p>\n")
	names := make([]string, 0, len(calc.Sample.Values))
	for name := range calc.Sample.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s = %s", name, formatFloat(calc.Sample.Values[name])))
	}
	sb.WriteString("<p><em>Sample values: " + esc(strings.Join(pairs, ", ")) + "</em></p>")
	return sb.String()
}

func fileUploadBody(q *qti.Question) string {
	var sb strings.Builder
	sb.WriteString(questionTextP(q))
	sb.WriteString("<p>[This question requires a file upload; collect and grade submissions manually.]</p>")
	return sb.String()
}

func unsupportedBody(q *qti.Question) string {
	var sb strings.Builder
	label := q.RawType
	if label == "" {
		label = string(q.Type)
	}
	sb.WriteString(fmt.Sprintf("<p>[Question type '%s' is not supported]</p>\n", esc(label)))
	sb.WriteString(questionTextP(q))
	if len(q.Choices) > 0 {
		sb.WriteString("<ul>\n")
		for _, c := range q.Choices {
			sb.WriteString("  <li>" + esc(c.Text) + "</li>\n")
		}
		sb.WriteString("</ul>\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
