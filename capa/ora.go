package capa

import (
	"fmt"
	"math"
	"strings"
)

// essayPoints yields the fixed 0/1/2/3 rubric used for essay questions.
const essayPoints = 3.0

// RubricLevels spreads the question's point total over four self-assessment
// levels. Levels scale linearly and are rounded to whole points; rounding
// collisions bump the later level up so point values stay strictly
// increasing.
func RubricLevels(points float64) [4]int {
	if points <= 0 {
		points = essayPoints
	}
	var levels [4]int
	for i := 0; i < 4; i++ {
		v := int(math.Round(points * float64(i) / 3))
		if i > 0 && v <= levels[i-1] {
			v = levels[i-1] + 1
		}
		levels[i] = v
	}
	return levels
}

var rubricLevelNames = [4]string{"Poor", "Fair", "Good", "Excellent"}

var rubricLevelExplanations = [4]string{
	"The response does not address the question.",
	"The response partially addresses the question.",
	"The response addresses the question with minor gaps.",
	"The response fully and clearly addresses the question.",
}

// OpenResponseBody builds the inner markup of a self-assessed open response
// component: the prompt, a submission window, and a single-criterion rubric
// scaled to the question's points.
func OpenResponseBody(title, promptHTML string, points float64) string {
	levels := RubricLevels(points)
	var sb strings.Builder
	sb.WriteString("<title>" + esc(title) + "</title>\n")
	sb.WriteString("<assessments>\n  <assessment name=\"self-assessment\"/>\n</assessments>\n")
	sb.WriteString("<prompts>\n  <prompt>\n    <description>" + esc(FlattenText(promptHTML)) + "</description>\n  </prompt>\n</prompts>\n")
	sb.WriteString("<rubric>\n  <criterion>\n    <name>Response Quality</name>\n    <label>Response Quality</label>\n    <prompt>How well does the response answer the question?</prompt>\n")
	for i, pts := range levels {
		sb.WriteString(fmt.Sprintf("    <option points=\"%d\">\n      <name>%s</name>\n      <label>%s</label>\n      <explanation>%s</explanation>\n    </option>\n", pts, rubricLevelNames[i], rubricLevelNames[i], rubricLevelExplanations[i]))
	}
	sb.WriteString("  </criterion>\n</rubric>")
	return sb.String()
}
