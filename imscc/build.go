package imscc

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kalebabebe/mitx-canvas-tools/assets"
	"github.com/kalebabebe/mitx-canvas-tools/capa"
	"github.com/kalebabebe/mitx-canvas-tools/config"
	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/kalebabebe/mitx-canvas-tools/qti"
	"github.com/kalebabebe/mitx-canvas-tools/urlname"
)

// BuildOptions override the course identity derived from the archive.
// Empty fields fall back to derivation from the course code and start date,
// then to the configured defaults.
type BuildOptions struct {
	Org      string
	Run      string
	Language string
}

const (
	contentTypeWikiPage     = "WikiPage"
	contentTypeAssignment   = "Assignment"
	contentTypeQuiz         = "Quizzes::Quiz"
	contentTypeExternalTool = "ContextExternalTool"
	contentTypeDiscussion   = "DiscussionTopic"
	contentTypeExternalURL  = "ExternalUrl"
	contentTypeAttachment   = "Attachment"
)

// BuildCourse walks the archive's modules and items and produces the course
// tree. Failures on individual items are logged and skipped; only archive
// level failures surface as errors.
func BuildCourse(arc *Archive, opts BuildOptions) (*Course, error) {
	meta, err := arc.CourseMetadata()
	if err != nil {
		return nil, err
	}
	modules, err := arc.Modules()
	if err != nil {
		return nil, err
	}
	groups, err := arc.AssignmentGroups()
	if err != nil {
		return nil, err
	}

	org, courseCode, run := deriveCourseID(meta, opts)
	language := opts.Language
	if language == "" {
		language = "en"
	}

	b := &builder{
		arc:          arc,
		names:        urlname.New(),
		moduleTokens: map[string]string{},
		itemTokens:   map[string]string{},
	}
	// One upfront pass assigns every module and item its token, so later
	// references resolve to the same string no matter who asks first.
	for _, m := range modules {
		b.moduleTokens[m.Identifier] = b.names.Generate(m.Title, urlname.DefaultMaxLength)
		for _, it := range m.Items {
			b.itemTokens[it.Identifier] = b.names.Generate(it.Title, urlname.DefaultMaxLength)
		}
	}

	title := meta.Title
	if title == "" {
		title = "Untitled Course"
	}
	course := &Course{
		DisplayName:     title,
		Org:             org,
		CourseCode:      courseCode,
		Run:             run,
		Language:        language,
		StartDate:       meta.StartDate,
		EndDate:         meta.EndDate,
		ExtraAttributes: map[string]string{},
		Grading:         gradingCategories(groups),
	}
	if _, body, ok := arc.FrontPage(); ok {
		course.FrontPageHTML = assets.RewriteReferences(body)
	}

	for _, m := range modules {
		course.Chapters = append(course.Chapters, b.buildChapter(m))
	}
	if len(b.ledger) > 0 {
		course.UnsupportedItems = b.ledger
		course.Chapters = append(course.Chapters, b.buildImportNotesChapter())
	}
	return course, nil
}

type builder struct {
	arc          *Archive
	names        *urlname.Generator
	moduleTokens map[string]string
	itemTokens   map[string]string
	ledger       []ir.UnsupportedItem
}

func (b *builder) buildChapter(m Module) *Chapter {
	token := b.moduleTokens[m.Identifier]
	published := m.WorkflowState == "active"
	chapter := &Chapter{
		DisplayName:     m.Title,
		URLName:         token,
		IsPublished:     published,
		ExtraAttributes: map[string]string{},
	}
	seq := &Sequential{
		DisplayName:     m.Title,
		URLName:         token + "_content",
		IsPublished:     published,
		Prereq:          b.resolvePrereq(m),
		ExtraAttributes: map[string]string{},
	}
	if m.RequireSequentialProgress {
		seq.ExtraAttributes["require_sequential_progress"] = "true"
	}
	for _, item := range m.Items {
		vert, err := b.buildVertical(item)
		if err != nil {
			Log.Warnf("Skipping item %q: %v", item.Title, err)
			continue
		}
		if vert != nil && len(vert.Blocks) > 0 {
			seq.Verticals = append(seq.Verticals, vert)
		}
	}
	chapter.Sequentials = append(chapter.Sequentials, seq)
	return chapter
}

// resolvePrereq maps the module's first prerequisite reference to that
// module's token. The target format supports a single prerequisite, so any
// further references are dropped.
func (b *builder) resolvePrereq(m Module) string {
	if len(m.PrerequisiteRefs) == 0 {
		return ""
	}
	return b.moduleTokens[m.PrerequisiteRefs[0]]
}

func (b *builder) buildVertical(item Item) (*Vertical, error) {
	vert := &Vertical{
		DisplayName:     item.Title,
		URLName:         b.itemTokens[item.Identifier],
		ExtraAttributes: map[string]string{},
	}
	switch item.ContentType {
	case contentTypeWikiPage:
		if block := b.buildWikiBlock(item); block != nil {
			vert.Blocks = append(vert.Blocks, block)
		}
	case contentTypeAssignment:
		block, err := b.buildAssignmentBlock(item)
		if err != nil {
			return nil, err
		}
		if block != nil {
			vert.Blocks = append(vert.Blocks, block)
		}
	case contentTypeQuiz:
		blocks, titleSuffix, err := b.buildQuizBlocks(item)
		if err != nil {
			return nil, err
		}
		vert.Blocks = append(vert.Blocks, blocks...)
		vert.DisplayName += titleSuffix
	default:
		b.recordUnsupported(item)
		return nil, nil
	}
	return vert, nil
}

func (b *builder) buildWikiBlock(item Item) *Block {
	body, ok := b.arc.WikiPageBody(item.IdentifierRef)
	if !ok {
		Log.Debugf("No wiki content found for page %q", item.Title)
		return nil
	}
	content := "<div class=\"wiki-page-content\">\n" + assets.RewriteReferences(body) + "\n</div>"
	return &Block{
		DisplayName:     item.Title,
		URLName:         b.names.Generate(item.Title+"_html", urlname.DefaultMaxLength),
		BlockType:       ir.BlockTypeHTML,
		Content:         content,
		ExtraAttributes: map[string]string{},
	}
}

func (b *builder) buildAssignmentBlock(item Item) (*Block, error) {
	settings, err := b.arc.AssignmentSettings(item.IdentifierRef)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		Log.Debugf("No settings found for assignment %q", item.Title)
		return nil, nil
	}
	if hasSubmissionMode(settings.SubmissionTypes, "online_text_entry", "online_upload") {
		prompt := capa.StripWrapperTags(assets.RewriteReferences(settings.BodyHTML))
		return &Block{
			DisplayName:     item.Title,
			URLName:         b.names.Generate(item.Title+"_assignment", urlname.DefaultMaxLength),
			BlockType:       ir.BlockTypeOpenAssessment,
			Content:         capa.OpenResponseBody(item.Title, prompt, settings.PointsPossible),
			ExtraAttributes: map[string]string{},
		}, nil
	}
	return &Block{
		DisplayName:     item.Title,
		URLName:         b.names.Generate(item.Title+"_assignment", urlname.DefaultMaxLength),
		BlockType:       ir.BlockTypeHTML,
		Content:         assignmentNoticeHTML(item.Title, settings),
		ExtraAttributes: map[string]string{},
	}, nil
}

func hasSubmissionMode(types []string, wanted ...string) bool {
	for _, t := range types {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

func assignmentNoticeHTML(title string, settings *AssignmentSettings) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"assignment-info\">\n")
	sb.WriteString("  <h3>" + htmlEscape(title) + "</h3>\n")
	sb.WriteString(fmt.Sprintf("  <p><strong>Submission Type:</strong> %s</p>\n", htmlEscape(strings.Join(settings.SubmissionTypes, ", "))))
	sb.WriteString(fmt.Sprintf("  <p><strong>Grading Type:</strong> %s</p>\n", htmlEscape(settings.GradingType)))
	sb.WriteString(fmt.Sprintf("  <p><strong>Points Possible:</strong> %s</p>\n", strconv.FormatFloat(settings.PointsPossible, 'f', -1, 64)))
	sb.WriteString("  <p><em>This assignment was imported from another platform. Submission and grading need to be configured manually.</em></p>\n")
	sb.WriteString("</div>")
	return sb.String()
}

func (b *builder) buildQuizBlocks(item Item) (blocks []*Block, titleSuffix string, err error) {
	qtiPath := filepath.Join(b.arc.RootDir, item.IdentifierRef, "assessment_qti.xml")
	if _, statErr := os.Stat(qtiPath); statErr != nil {
		Log.Debugf("No question file found for quiz %q", item.Title)
		return nil, "", nil
	}
	quiz, err := qti.ParseQuizFile(qtiPath)
	if err != nil {
		return nil, "", err
	}
	if len(quiz.Questions) == 0 {
		Log.Debugf("No questions parsed for quiz %q", item.Title)
		return nil, "", nil
	}
	meta, err := qti.ParseMetaFile(filepath.Join(b.arc.RootDir, item.IdentifierRef, "assessment_meta.xml"))
	if err != nil {
		Log.Warnf("Ignoring unreadable quiz metadata for %q: %v", item.Title, err)
		meta = nil
	}
	for i, q := range quiz.Questions {
		body, blockType := capa.Convert(q)
		title := q.Title
		if title == "" {
			title = fmt.Sprintf("Question %d", i+1)
		}
		block := &Block{
			DisplayName:     title,
			URLName:         b.names.Generate(fmt.Sprintf("%s_q%d", item.Title, i+1), urlname.DefaultMaxLength),
			BlockType:       blockType,
			Content:         body,
			ExtraAttributes: map[string]string{},
		}
		if blockType == ir.BlockTypeProblem {
			if q.Points > 0 {
				block.ExtraAttributes["weight"] = strconv.FormatFloat(q.Points, 'f', -1, 64)
			}
			if meta != nil {
				if meta.AllowedAttempts > 0 {
					block.ExtraAttributes["max_attempts"] = strconv.Itoa(meta.AllowedAttempts)
				}
				if meta.ShowCorrectAnswers {
					block.ExtraAttributes["showanswer"] = "always"
				} else {
					block.ExtraAttributes["showanswer"] = "never"
				}
			}
		}
		blocks = append(blocks, block)
	}
	if meta != nil && meta.TimeLimitMinutes > 0 {
		titleSuffix = fmt.Sprintf(" (%d min time limit)", meta.TimeLimitMinutes)
	}
	return blocks, titleSuffix, nil
}

func (b *builder) recordUnsupported(item Item) {
	b.ledger = append(b.ledger, ir.UnsupportedItem{
		TypeLabel: typeLabel(item.ContentType),
		Title:     item.Title,
		URL:       item.URL,
	})
}

func typeLabel(contentType string) string {
	switch contentType {
	case contentTypeExternalTool:
		return "External Tool"
	case contentTypeDiscussion:
		return "Discussion"
	case contentTypeExternalURL:
		return "External URL"
	case contentTypeAttachment:
		return "File"
	default:
		return contentType
	}
}

// buildImportNotesChapter renders the unsupported-items ledger as one HTML
// page so the operator can see exactly what needs manual recreation.
func (b *builder) buildImportNotesChapter() *Chapter {
	byLabel := map[string][]ir.UnsupportedItem{}
	for _, entry := range b.ledger {
		byLabel[entry.TypeLabel] = append(byLabel[entry.TypeLabel], entry)
	}
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var sb strings.Builder
	sb.WriteString("<div class=\"import-notes\">\n")
	sb.WriteString("  <p>The following items could not be converted automatically and must be recreated manually:</p>\n")
	for _, label := range labels {
		sb.WriteString("  <h3>" + htmlEscape(label) + "</h3>\n  <ul>\n")
		for _, entry := range byLabel[label] {
			sb.WriteString("    <li>" + htmlEscape(entry.Title))
			if entry.URL != "" {
				sb.WriteString(" (" + htmlEscape(entry.URL) + ")")
			}
			sb.WriteString("</li>\n")
		}
		sb.WriteString("  </ul>\n")
	}
	sb.WriteString("</div>")

	token := b.names.Generate("Import Notes", urlname.DefaultMaxLength)
	block := &Block{
		DisplayName:     "Items Requiring Manual Import",
		URLName:         b.names.Generate("import_notes_html", urlname.DefaultMaxLength),
		BlockType:       ir.BlockTypeHTML,
		Content:         sb.String(),
		ExtraAttributes: map[string]string{},
	}
	vert := &Vertical{
		DisplayName:     "Items Requiring Manual Import",
		URLName:         b.names.Generate("import_notes_unit", urlname.DefaultMaxLength),
		ExtraAttributes: map[string]string{},
		Blocks:          []*Block{block},
	}
	seq := &Sequential{
		DisplayName:     "Import Notes",
		URLName:         token + "_content",
		IsPublished:     true,
		ExtraAttributes: map[string]string{},
		Verticals:       []*Vertical{vert},
	}
	return &Chapter{
		DisplayName:     "Import Notes",
		URLName:         token,
		IsPublished:     true,
		ExtraAttributes: map[string]string{},
		Sequentials:     []*Sequential{seq},
	}
}

// gradingCategories maps assignment groups with percentage weights onto
// grading policy categories. Groups without weights collapse to a single
// default category.
func gradingCategories(groups []AssignmentGroup) []ir.GradingCategory {
	var weighted []AssignmentGroup
	for _, g := range groups {
		if g.Weight > 0 {
			weighted = append(weighted, g)
		}
	}
	if len(weighted) == 0 {
		return []ir.GradingCategory{{
			Type:       "Homework",
			ShortLabel: "HW",
			Weight:     1.0,
			MinCount:   1,
			DropCount:  0,
		}}
	}
	categories := make([]ir.GradingCategory, 0, len(weighted))
	for _, g := range weighted {
		categories = append(categories, ir.GradingCategory{
			Type:       g.Title,
			ShortLabel: shortLabel(g.Title),
			Weight:     g.Weight / 100,
			MinCount:   1,
			DropCount:  0,
		})
	}
	return categories
}

func shortLabel(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "HW"
	}
	var sb strings.Builder
	for _, f := range fields {
		r := []rune(f)
		sb.WriteString(strings.ToUpper(string(r[0])))
	}
	return sb.String()
}

var idCleanRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
var idCollapseRe = regexp.MustCompile(`_+`)

func cleanID(s string) string {
	s = idCleanRe.ReplaceAllString(s, "_")
	s = idCollapseRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// deriveCourseID extracts the org/course/run triple: an "ORG.COURSE" course
// code splits into org and course, the run comes from the start year, and
// explicit options win over both.
func deriveCourseID(meta *CourseMetadata, opts BuildOptions) (org, courseCode, run string) {
	cfg := config.Cfg()
	code := meta.CourseCode
	if code == "" {
		code = "Course"
	}
	if parts := strings.SplitN(code, ".", 2); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		org = parts[0]
		courseCode = parts[1]
	} else {
		org = cfg.DefaultOrg
		courseCode = strings.ReplaceAll(code, " ", "_")
	}
	if meta.StartDate != nil {
		run = strconv.Itoa(meta.StartDate.Year())
	} else {
		run = cfg.DefaultRun
	}
	if opts.Org != "" {
		org = opts.Org
	}
	if opts.Run != "" {
		run = opts.Run
	}
	org = cleanID(org)
	courseCode = cleanID(courseCode)
	run = cleanID(run)
	return org, courseCode, run
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
	return r.Replace(s)
}
