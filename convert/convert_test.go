package convert_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/convert"
)

func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.imscc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleQuiz = `<?xml version="1.0"?>
<questestinterop>
  <assessment ident="quiz_1" title="Week 1 Quiz">
    <section ident="root_section">
      <item ident="q1" title="Q1">
        <itemmetadata><qtimetadata>
          <qtimetadatafield><fieldlabel>question_type</fieldlabel><fieldentry>true_false_question</fieldentry></qtimetadatafield>
        </qtimetadata></itemmetadata>
        <presentation>
          <material><mattext>Go has generics.</mattext></material>
          <response_lid ident="response1">
            <render_choice>
              <response_label ident="t"><material><mattext>True</mattext></material></response_label>
              <response_label ident="f"><material><mattext>False</mattext></material></response_label>
            </render_choice>
          </response_lid>
        </presentation>
        <resprocessing>
          <respcondition><conditionvar><varequal respident="response1">t</varequal></conditionvar><setvar varname="SCORE" action="Set">100</setvar></respcondition>
        </resprocessing>
      </item>
    </section>
  </assessment>
</questestinterop>`

func sampleArchive(t *testing.T) string {
	t.Helper()
	return writeArchive(t, map[string]string{
		"imsmanifest.xml": `<?xml version="1.0"?><manifest identifier="man_1"></manifest>`,
		"course_settings/course_settings.xml": `<?xml version="1.0"?>
<course identifier="course_1" xmlns="http://canvas.instructure.com/xsd/cccv1p0">
  <title>Intro to Testing</title>
  <course_code>MITX.TST101</course_code>
  <start_at>2024-09-01T00:00:00Z</start_at>
</course>`,
		"course_settings/module_meta.xml": `<?xml version="1.0"?>
<modules xmlns="http://canvas.instructure.com/xsd/cccv1p0">
  <module identifier="mod_1">
    <title>Week 1</title>
    <workflow_state>active</workflow_state>
    <position>1</position>
    <items>
      <item identifier="item_page">
        <content_type>WikiPage</content_type>
        <title>Syllabus</title>
        <identifierref>page_syllabus</identifierref>
        <workflow_state>active</workflow_state>
        <position>1</position>
      </item>
      <item identifier="item_quiz">
        <content_type>Quizzes::Quiz</content_type>
        <title>Week 1 Quiz</title>
        <identifierref>quiz_1</identifierref>
        <workflow_state>active</workflow_state>
        <position>2</position>
      </item>
    </items>
  </module>
</modules>`,
		"wiki_content/syllabus.html": `<html>
<head><meta name="identifier" content="page_syllabus"/><title>Syllabus</title></head>
<body><p>Read this first.</p></body>
</html>`,
		"quiz_1/assessment_qti.xml":     sampleQuiz,
		"web_resources/images/logo.png": "png-bytes",
	})
}

func TestRunConvertsArchiveEndToEnd(t *testing.T) {
	outDir := t.TempDir()
	report, err := convert.Run(sampleArchive(t), outDir, convert.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.CourseTitle != "Intro to Testing" || report.CourseID != "MITX/TST101/2024" {
		t.Errorf("report identity = %q %q", report.CourseTitle, report.CourseID)
	}
	if report.Chapters != 1 || report.Sequentials != 1 || report.Verticals != 2 || report.Blocks != 2 {
		t.Errorf("report counts = %+v", report)
	}
	if report.Assets != 1 {
		t.Errorf("assets = %d, want 1", report.Assets)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("skipped = %v, want none", report.Skipped)
	}

	for _, rel := range []string{
		"course.xml",
		filepath.Join("course", "2024.xml"),
		filepath.Join("static", "images", "logo.png"),
		filepath.Join("policies", "2024", "grading_policy.json"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Errorf("missing output file %s: %v", rel, err)
		}
	}

	def, err := os.ReadFile(filepath.Join(outDir, "course", "2024.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(def), `slug="MITX.TST101.2024"`) {
		t.Errorf("wiki slug missing from course file:\n%s", def)
	}
}

func TestRunIsDeterministicAcrossRuns(t *testing.T) {
	archive := sampleArchive(t)
	firstOut := t.TempDir()
	secondOut := t.TempDir()
	if _, err := convert.Run(archive, firstOut, convert.Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := convert.Run(archive, secondOut, convert.Options{}); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(firstOut, "chapter", "week_1.xml"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(secondOut, "chapter", "week_1.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("chapter files differ across runs:\n%s\n---\n%s", first, second)
	}
}

func TestRunOptionsOverrideIdentity(t *testing.T) {
	outDir := t.TempDir()
	report, err := convert.Run(sampleArchive(t), outDir, convert.Options{Org: "EDX", Run: "2025_Fall"})
	if err != nil {
		t.Fatal(err)
	}
	if report.CourseID != "EDX/TST101/2025_Fall" {
		t.Errorf("course id = %q", report.CourseID)
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("org: EDX\nrun: 2025\nforce: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := convert.LoadOptionsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Org != "EDX" || opts.Run != "2025" || !opts.Force {
		t.Errorf("opts = %+v", opts)
	}
	empty, err := convert.LoadOptionsFile("")
	if err != nil {
		t.Fatal(err)
	}
	if empty != (convert.Options{}) {
		t.Errorf("empty path opts = %+v", empty)
	}
}
