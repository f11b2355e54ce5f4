package olx

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/pkg/errors"
)

var olxDirNames = []string{
	"course", "chapter", "sequential", "vertical",
	"html", "problem", "openassessment", "video",
	"static", "policies", "about", "info",
}

// ExportCourse writes the OLX tree for course under rootDir. A rootDir that
// already holds a course is only overwritten when force is set. Failures on
// individual chapters or blocks are logged and skipped; the validation pass
// afterwards patches any chapter file that went missing so the tree stays
// internally consistent.
func ExportCourse(course ir.Course, rootDir string, force bool) error {
	if _, err := os.Stat(filepath.Join(rootDir, "course.xml")); err == nil && !force {
		return errors.Errorf("olx: %s already contains a course, use force to overwrite", rootDir)
	}
	for _, dir := range olxDirNames {
		if err := os.MkdirAll(filepath.Join(rootDir, dir), 0755); err != nil {
			return errors.Wrap(err, "creating output directories")
		}
	}
	run := course.GetRunName()
	root := &courseRootXML{
		URLName: run,
		Org:     course.GetOrgName(),
		Course:  course.GetCourseCode(),
	}
	if err := writeXMLFile(filepath.Join(rootDir, "course.xml"), root); err != nil {
		return err
	}

	chapters := course.GetChapters()
	def := &courseXML{
		DisplayName: course.GetDisplayName(),
		Language:    course.GetLanguage(),
		Wiki:        wikiXML{Slug: fmt.Sprintf("%s.%s.%s", course.GetOrgName(), course.GetCourseCode(), run)},
	}
	if start := course.GetStartDate(); start != nil {
		def.Start = start.Format(time.RFC3339)
	}
	if end := course.GetEndDate(); end != nil {
		def.End = end.Format(time.RFC3339)
	}
	for _, chap := range chapters {
		def.Chapters = append(def.Chapters, nodeRef("chapter", chap.GetURLName()))
	}
	if err := writeXMLFile(filepath.Join(rootDir, "course", run+".xml"), def); err != nil {
		return err
	}

	for _, chap := range chapters {
		if err := exportChapter(rootDir, chap); err != nil {
			Log.Errorf("Failed to export chapter %q, continuing: %v", chap.GetDisplayName(), err)
		}
	}

	if err := writePolicies(rootDir, course); err != nil {
		return err
	}
	if err := writeCoursePages(rootDir, course); err != nil {
		return err
	}
	return repairMissingChapters(rootDir, chapters)
}

func exportChapter(rootDir string, chap ir.Chapter) error {
	chapXML := &chapterXML{DisplayName: chap.GetDisplayName()}
	if !chap.GetIsPublished() {
		chapXML.VisibleToStaffOnly = "true"
	}
	for _, seq := range chap.GetSequentials() {
		if err := exportSequential(rootDir, seq); err != nil {
			return err
		}
		chapXML.Sequentials = append(chapXML.Sequentials, nodeRef("sequential", seq.GetURLName()))
	}
	return writeXMLFile(filepath.Join(rootDir, "chapter", chap.GetURLName()+".xml"), chapXML)
}

func exportSequential(rootDir string, seq ir.Sequential) error {
	seqXML := &sequentialXML{
		DisplayName: seq.GetDisplayName(),
		Prereq:      seq.GetPrereq(),
	}
	if !seq.GetIsPublished() {
		seqXML.VisibleToStaffOnly = "true"
	}
	for _, vert := range seq.GetVerticals() {
		if len(vert.GetBlocks()) == 0 {
			continue
		}
		if err := exportVertical(rootDir, vert); err != nil {
			return err
		}
		seqXML.Verticals = append(seqXML.Verticals, nodeRef("vertical", vert.GetURLName()))
	}
	return writeXMLFile(filepath.Join(rootDir, "sequential", seq.GetURLName()+".xml"), seqXML)
}

func exportVertical(rootDir string, vert ir.Vertical) error {
	vertXML := &verticalXML{DisplayName: vert.GetDisplayName()}
	for _, block := range vert.GetBlocks() {
		if err := exportBlock(rootDir, block); err != nil {
			Log.Errorf("Failed to export block %q, continuing: %v", block.GetDisplayName(), err)
			continue
		}
		vertXML.Blocks = append(vertXML.Blocks, nodeRef(block.GetBlockType(), block.GetURLName()))
	}
	return writeXMLFile(filepath.Join(rootDir, "vertical", vert.GetURLName()+".xml"), vertXML)
}

func exportBlock(rootDir string, block ir.Block) error {
	switch block.GetBlockType() {
	case ir.BlockTypeHTML:
		meta := &htmlMetaXML{
			DisplayName: block.GetDisplayName(),
			Filename:    block.GetURLName(),
		}
		if err := writeXMLFile(filepath.Join(rootDir, "html", block.GetURLName()+".xml"), meta); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(rootDir, "html", block.GetURLName()+".html"), []byte(block.GetContent()), 0644)
	case ir.BlockTypeProblem, ir.BlockTypeOpenAssessment:
		doc := wrapBlockContent(block)
		return os.WriteFile(filepath.Join(rootDir, block.GetBlockType(), block.GetURLName()+".xml"), []byte(doc), 0644)
	default:
		return errors.Errorf("unknown block type %q", block.GetBlockType())
	}
}

// wrapBlockContent wraps a block's inner markup in its root element,
// carrying the display name and any settings as attributes. Settings are
// emitted in sorted key order so repeated runs stay byte-identical.
func wrapBlockContent(block ir.Block) string {
	var sb strings.Builder
	sb.WriteString("<" + block.GetBlockType())
	sb.WriteString(` display_name="` + xmlAttrEscape(block.GetDisplayName()) + `"`)
	extras := block.GetExtraAttributes()
	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" " + k + `="` + xmlAttrEscape(extras[k]) + `"`)
	}
	sb.WriteString(">\n")
	sb.WriteString(block.GetContent())
	sb.WriteString("\n</" + block.GetBlockType() + ">\n")
	return sb.String()
}

func writeCoursePages(rootDir string, course ir.Course) error {
	overview := fmt.Sprintf("<section class=\"about\">\n  <h2>About This Course</h2>\n  <p>%s</p>\n</section>\n", xmlAttrEscape(course.GetDisplayName()))
	if err := os.WriteFile(filepath.Join(rootDir, "about", "overview.html"), []byte(overview), 0644); err != nil {
		return errors.Wrap(err, "writing about/overview.html")
	}
	updates := course.GetFrontPageHTML()
	if err := os.WriteFile(filepath.Join(rootDir, "info", "updates.html"), []byte(updates), 0644); err != nil {
		return errors.Wrap(err, "writing info/updates.html")
	}
	return nil
}

// repairMissingChapters synthesizes a placeholder file for every chapter the
// course file references but the chapter directory lacks, so the exported
// tree never references a nonexistent node.
func repairMissingChapters(rootDir string, chapters []ir.Chapter) error {
	for _, chap := range chapters {
		path := filepath.Join(rootDir, "chapter", chap.GetURLName()+".xml")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		Log.Warnf("Chapter file %s missing after export, writing placeholder", path)
		placeholder := &chapterXML{DisplayName: chap.GetDisplayName()}
		if err := writeXMLFile(path, placeholder); err != nil {
			return err
		}
	}
	return nil
}

func nodeRef(elem, urlName string) nodeRefXML {
	return nodeRefXML{XMLName: xml.Name{Local: elem}, URLName: urlName}
}

func writeXMLFile(path string, v interface{}) error {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshalling %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, append(data, '\n'), 0644), "writing %s", path)
}

func xmlAttrEscape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
