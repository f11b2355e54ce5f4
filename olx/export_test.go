package olx_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kalebabebe/mitx-canvas-tools/imscc"
	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/kalebabebe/mitx-canvas-tools/olx"
)

func sampleCourse() *imscc.Course {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	return &imscc.Course{
		DisplayName: "Intro to Testing",
		Org:         "MITX",
		CourseCode:  "TST101",
		Run:         "2024",
		Language:    "en",
		StartDate:   &start,
		Grading: []ir.GradingCategory{
			{Type: "Homework", ShortLabel: "HW", Weight: 0.4, MinCount: 1},
			{Type: "Exams", ShortLabel: "E", Weight: 0.6, MinCount: 1},
		},
		FrontPageHTML: "<p>Welcome!</p>",
		Chapters: []*imscc.Chapter{
			{
				DisplayName: "Week 1",
				URLName:     "week_1",
				IsPublished: true,
				Sequentials: []*imscc.Sequential{
					{
						DisplayName: "Week 1",
						URLName:     "week_1_content",
						IsPublished: true,
						Verticals: []*imscc.Vertical{
							{
								DisplayName: "Syllabus",
								URLName:     "syllabus",
								Blocks: []*imscc.Block{
									{
										DisplayName: "Syllabus",
										URLName:     "syllabus_html",
										BlockType:   ir.BlockTypeHTML,
										Content:     "<p>Read this.</p>",
									},
									{
										DisplayName: "Q1",
										URLName:     "quiz_q1",
										BlockType:   ir.BlockTypeProblem,
										Content:     "<multiplechoiceresponse/>",
										ExtraAttributes: map[string]string{
											"weight":     "2",
											"showanswer": "never",
										},
									},
								},
							},
							{
								DisplayName: "Empty Unit",
								URLName:     "empty_unit",
							},
						},
					},
				},
			},
		},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestExportCourseLayout(t *testing.T) {
	outDir := t.TempDir()
	if err := olx.ExportCourse(sampleCourse(), outDir, false); err != nil {
		t.Fatal(err)
	}

	root := readFile(t, filepath.Join(outDir, "course.xml"))
	if !strings.Contains(root, `org="MITX"`) || !strings.Contains(root, `url_name="2024"`) {
		t.Errorf("course.xml = %s", root)
	}

	def := readFile(t, filepath.Join(outDir, "course", "2024.xml"))
	if !strings.Contains(def, `slug="MITX.TST101.2024"`) {
		t.Errorf("wiki slug missing: %s", def)
	}
	if !strings.Contains(def, `<chapter url_name="week_1"`) {
		t.Errorf("chapter ref missing: %s", def)
	}
	if !strings.Contains(def, `start="2024-09-01T00:00:00Z"`) {
		t.Errorf("start date missing: %s", def)
	}

	chap := readFile(t, filepath.Join(outDir, "chapter", "week_1.xml"))
	if !strings.Contains(chap, `<sequential url_name="week_1_content"`) {
		t.Errorf("sequential ref missing: %s", chap)
	}

	vert := readFile(t, filepath.Join(outDir, "vertical", "syllabus.xml"))
	if !strings.Contains(vert, `<html url_name="syllabus_html"`) || !strings.Contains(vert, `<problem url_name="quiz_q1"`) {
		t.Errorf("block refs missing: %s", vert)
	}

	if got := readFile(t, filepath.Join(outDir, "html", "syllabus_html.html")); got != "<p>Read this.</p>" {
		t.Errorf("html body = %q", got)
	}

	problem := readFile(t, filepath.Join(outDir, "problem", "quiz_q1.xml"))
	if !strings.Contains(problem, `<problem display_name="Q1" showanswer="never" weight="2">`) {
		t.Errorf("problem wrapper = %s", problem)
	}
	if !strings.Contains(problem, "<multiplechoiceresponse/>") {
		t.Errorf("problem body missing: %s", problem)
	}

	if got := readFile(t, filepath.Join(outDir, "info", "updates.html")); got != "<p>Welcome!</p>" {
		t.Errorf("updates.html = %q", got)
	}
	if got := readFile(t, filepath.Join(outDir, "policies", "assets.json")); strings.TrimSpace(got) != "{}" {
		t.Errorf("assets.json = %q", got)
	}
}

func TestExportEmptyVerticalIsDropped(t *testing.T) {
	outDir := t.TempDir()
	if err := olx.ExportCourse(sampleCourse(), outDir, false); err != nil {
		t.Fatal(err)
	}
	seq := readFile(t, filepath.Join(outDir, "sequential", "week_1_content.xml"))
	if strings.Contains(seq, "empty_unit") {
		t.Errorf("empty vertical referenced: %s", seq)
	}
	if _, err := os.Stat(filepath.Join(outDir, "vertical", "empty_unit.xml")); err == nil {
		t.Error("empty vertical file written")
	}
}

func TestExportGradingPolicy(t *testing.T) {
	outDir := t.TempDir()
	if err := olx.ExportCourse(sampleCourse(), outDir, false); err != nil {
		t.Fatal(err)
	}
	var policy struct {
		Grader []struct {
			Type   string  `json:"type"`
			Weight float64 `json:"weight"`
		} `json:"GRADER"`
		GradeCutoffs map[string]float64 `json:"GRADE_CUTOFFS"`
	}
	raw := readFile(t, filepath.Join(outDir, "policies", "2024", "grading_policy.json"))
	if err := json.Unmarshal([]byte(raw), &policy); err != nil {
		t.Fatal(err)
	}
	if len(policy.Grader) != 2 || policy.Grader[0].Type != "Homework" || policy.Grader[0].Weight != 0.4 {
		t.Errorf("grader = %+v", policy.Grader)
	}
	if policy.GradeCutoffs["Pass"] != 0.5 {
		t.Errorf("cutoffs = %v", policy.GradeCutoffs)
	}
}

func TestExportRefusesOverwriteWithoutForce(t *testing.T) {
	outDir := t.TempDir()
	if err := olx.ExportCourse(sampleCourse(), outDir, false); err != nil {
		t.Fatal(err)
	}
	if err := olx.ExportCourse(sampleCourse(), outDir, false); err == nil {
		t.Error("second export without force should fail")
	}
	if err := olx.ExportCourse(sampleCourse(), outDir, true); err != nil {
		t.Errorf("forced export failed: %v", err)
	}
}
