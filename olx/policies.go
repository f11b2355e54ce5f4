package olx

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/pkg/errors"
)

type graderEntryJSON struct {
	DropCount  int     `json:"drop_count"`
	MinCount   int     `json:"min_count"`
	ShortLabel string  `json:"short_label"`
	Type       string  `json:"type"`
	Weight     float64 `json:"weight"`
}

type gradingPolicyJSON struct {
	Grader       []graderEntryJSON  `json:"GRADER"`
	GradeCutoffs map[string]float64 `json:"GRADE_CUTOFFS"`
}

type tabJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type coursePolicyJSON struct {
	DisplayName string    `json:"display_name"`
	Language    string    `json:"language"`
	Tabs        []tabJSON `json:"tabs"`
}

// writePolicies emits the policies/{run} directory: the grading policy
// derived from the course's grading categories, the course policy with the
// standard tab layout, and an empty asset registry.
func writePolicies(rootDir string, course ir.Course) error {
	run := course.GetRunName()
	policyDir := filepath.Join(rootDir, "policies", run)
	if err := os.MkdirAll(policyDir, 0755); err != nil {
		return errors.Wrap(err, "creating policy directory")
	}

	grading := gradingPolicyJSON{
		GradeCutoffs: map[string]float64{"Pass": 0.5},
	}
	for _, cat := range course.GetGradingCategories() {
		grading.Grader = append(grading.Grader, graderEntryJSON{
			DropCount:  cat.DropCount,
			MinCount:   cat.MinCount,
			ShortLabel: cat.ShortLabel,
			Type:       cat.Type,
			Weight:     cat.Weight,
		})
	}
	if err := writeJSONFile(filepath.Join(policyDir, "grading_policy.json"), grading); err != nil {
		return err
	}

	policy := map[string]coursePolicyJSON{
		"course/" + run: {
			DisplayName: course.GetDisplayName(),
			Language:    course.GetLanguage(),
			Tabs: []tabJSON{
				{Name: "Course", Type: "courseware"},
				{Name: "Progress", Type: "progress"},
				{Name: "Dates", Type: "dates"},
				{Name: "Discussion", Type: "discussion"},
				{Name: "Wiki", Type: "wiki"},
			},
		},
	}
	if err := writeJSONFile(filepath.Join(policyDir, "policy.json"), policy); err != nil {
		return err
	}

	return writeJSONFile(filepath.Join(rootDir, "policies", "assets.json"), map[string]interface{}{})
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshalling %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, append(data, '\n'), 0644), "writing %s", path)
}
