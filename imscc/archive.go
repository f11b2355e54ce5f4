package imscc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrArchiveNotFound is returned by OpenArchive when the archive path
	// does not exist.
	ErrArchiveNotFound = errors.New("imscc: archive file not found")
	// ErrManifestMissing is returned by OpenArchive when the extracted
	// archive has no root imsmanifest.xml.
	ErrManifestMissing = errors.New("imscc: no imsmanifest.xml in archive")
)

// Archive is an extracted course export. RootDir points at the extraction
// directory and stays valid until Close.
type Archive struct {
	Path    string
	RootDir string
	tempDir string
}

// CourseMetadata holds the course-level settings. Missing fields stay at
// their zero values; unparseable dates stay nil.
type CourseMetadata struct {
	Identifier           string
	Title                string
	CourseCode           string
	StartDate            *time.Time
	EndDate              *time.Time
	GroupWeightingScheme string
}

type Module struct {
	Identifier                string
	Title                     string
	WorkflowState             string
	Position                  int
	RequireSequentialProgress bool
	PrerequisiteRefs          []string
	Items                     []Item
}

type Item struct {
	Identifier    string
	ContentType   string
	Title         string
	IdentifierRef string
	WorkflowState string
	Position      int
	URL           string
}

type AssignmentGroup struct {
	Identifier string
	Title      string
	Position   int
	Weight     float64
}

type AssignmentSettings struct {
	Identifier      string
	Title           string
	PointsPossible  float64
	GradingType     string
	SubmissionTypes []string
	WorkflowState   string
	DueAt           string
	GroupRef        string
	BodyHTML        string
}

// OpenArchive extracts the zip at path into a private temporary directory
// and verifies the root manifest is present. The caller must Close the
// returned Archive to release the extraction directory.
func OpenArchive(path string) (*Archive, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(ErrArchiveNotFound, path)
	}
	tempDir, err := os.MkdirTemp("", "ccimport_")
	if err != nil {
		return nil, errors.Wrap(err, "creating extraction directory")
	}
	rootDir := filepath.Join(tempDir, "extracted")
	if err := unzip(path, rootDir); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.Wrap(err, "extracting archive")
	}
	if _, err := os.Stat(filepath.Join(rootDir, "imsmanifest.xml")); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.Wrap(ErrManifestMissing, path)
	}
	return &Archive{Path: path, RootDir: rootDir, tempDir: tempDir}, nil
}

// Close removes the extraction directory. Safe to call more than once.
func (a *Archive) Close() error {
	if a.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(a.tempDir)
	a.tempDir = ""
	return err
}

// CourseMetadata reads course_settings/course_settings.xml. A missing file
// yields empty metadata, not an error.
func (a *Archive) CourseMetadata() (*CourseMetadata, error) {
	meta := &CourseMetadata{}
	var settings courseSettingsXML
	ok, err := a.parseXMLFile(filepath.Join("course_settings", "course_settings.xml"), &settings)
	if err != nil || !ok {
		return meta, err
	}
	meta.Identifier = settings.Identifier
	meta.Title = settings.Title
	meta.CourseCode = settings.CourseCode
	meta.StartDate = parseCanvasDate(settings.StartAt)
	meta.EndDate = parseCanvasDate(settings.ConcludeAt)
	meta.GroupWeightingScheme = settings.GroupWeightingScheme
	return meta, nil
}

// Modules reads course_settings/module_meta.xml and returns modules in
// position order. A missing file yields an empty slice.
func (a *Archive) Modules() ([]Module, error) {
	var meta moduleMetaXML
	ok, err := a.parseXMLFile(filepath.Join("course_settings", "module_meta.xml"), &meta)
	if err != nil || !ok {
		return nil, err
	}
	modules := make([]Module, 0, len(meta.Modules))
	for _, m := range meta.Modules {
		module := Module{
			Identifier:                m.Identifier,
			Title:                     m.Title,
			WorkflowState:             m.WorkflowState,
			Position:                  parseInt(m.Position),
			RequireSequentialProgress: m.RequireSequentialProgress == "true",
		}
		for _, p := range m.Prerequisites {
			if p.IdentifierRef != "" {
				module.PrerequisiteRefs = append(module.PrerequisiteRefs, p.IdentifierRef)
			}
		}
		for _, it := range m.Items {
			module.Items = append(module.Items, Item{
				Identifier:    it.Identifier,
				ContentType:   it.ContentType,
				Title:         it.Title,
				IdentifierRef: it.IdentifierRef,
				WorkflowState: it.WorkflowState,
				Position:      parseInt(it.Position),
				URL:           it.URL,
			})
		}
		sort.SliceStable(module.Items, func(i, j int) bool {
			return module.Items[i].Position < module.Items[j].Position
		})
		modules = append(modules, module)
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].Position < modules[j].Position
	})
	return modules, nil
}

// AssignmentGroups reads course_settings/assignment_groups.xml.
func (a *Archive) AssignmentGroups() ([]AssignmentGroup, error) {
	var parsed assignmentGroupsXML
	ok, err := a.parseXMLFile(filepath.Join("course_settings", "assignment_groups.xml"), &parsed)
	if err != nil || !ok {
		return nil, err
	}
	groups := make([]AssignmentGroup, 0, len(parsed.Groups))
	for _, g := range parsed.Groups {
		groups = append(groups, AssignmentGroup{
			Identifier: g.Identifier,
			Title:      g.Title,
			Position:   parseInt(g.Position),
			Weight:     parseFloat(g.GroupWeight),
		})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Position < groups[j].Position })
	return groups, nil
}

// AssignmentSettings reads {identifier}/assignment_settings.xml plus the
// assignment body from the first HTML file in the same directory. Returns
// nil when the settings file is absent.
func (a *Archive) AssignmentSettings(identifier string) (*AssignmentSettings, error) {
	var parsed assignmentSettingsXML
	ok, err := a.parseXMLFile(filepath.Join(identifier, "assignment_settings.xml"), &parsed)
	if err != nil || !ok {
		return nil, err
	}
	settings := &AssignmentSettings{
		Identifier:     parsed.Identifier,
		Title:          parsed.Title,
		PointsPossible: parseFloat(parsed.PointsPossible),
		GradingType:    parsed.GradingType,
		WorkflowState:  parsed.WorkflowState,
		DueAt:          parsed.DueAt,
		GroupRef:       parsed.AssignmentGroupIdentifierRef,
	}
	for _, st := range strings.Split(parsed.SubmissionTypes, ",") {
		st = strings.TrimSpace(st)
		if st != "" {
			settings.SubmissionTypes = append(settings.SubmissionTypes, st)
		}
	}
	htmlFiles, _ := filepath.Glob(filepath.Join(a.RootDir, identifier, "*.html"))
	sort.Strings(htmlFiles)
	if len(htmlFiles) > 0 {
		if page, err := scanWikiFile(htmlFiles[0]); err == nil {
			settings.BodyHTML = page.Body
		}
	}
	return settings, nil
}

// WikiPageBody scans wiki_content for the page whose identifier meta tag
// matches and returns its body fragment. The second return is false when no
// page matches.
func (a *Archive) WikiPageBody(identifier string) (string, bool) {
	page, ok := a.findWikiPage(func(p *wikiPage) bool { return p.Identifier == identifier })
	if !ok {
		return "", false
	}
	return page.Body, true
}

// FrontPage returns the identifier and body of the page flagged as the
// course front page, if any.
func (a *Archive) FrontPage() (identifier string, body string, ok bool) {
	page, ok := a.findWikiPage(func(p *wikiPage) bool { return p.FrontPage })
	if !ok {
		return "", "", false
	}
	return page.Identifier, page.Body, true
}

func (a *Archive) findWikiPage(match func(*wikiPage) bool) (*wikiPage, bool) {
	files, err := filepath.Glob(filepath.Join(a.RootDir, "wiki_content", "*.html"))
	if err != nil {
		return nil, false
	}
	sort.Strings(files)
	for _, f := range files {
		page, err := scanWikiFile(f)
		if err != nil {
			Log.Debugf("Skipping unreadable wiki file %s: %v", f, err)
			continue
		}
		if match(page) {
			return page, true
		}
	}
	return nil, false
}

// parseXMLFile unmarshals the file at the archive-relative path into v. The
// first return is false when the file does not exist.
func (a *Archive) parseXMLFile(relPath string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(a.RootDir, relPath))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", relPath)
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "parsing %s", relPath)
	}
	return true, nil
}

func unzip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()
	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)
		// Check for ZipSlip
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("%s: illegal file path", fpath)
		}
		if f.FileInfo().IsDir() {
			os.MkdirAll(fpath, os.ModePerm)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func parseCanvasDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
