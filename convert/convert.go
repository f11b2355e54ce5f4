// Package convert orchestrates the full pipeline: open the archive, build
// the course tree, export the OLX directory, copy static assets, and
// summarize the run in a report.
package convert

import (
	"fmt"

	"github.com/kalebabebe/mitx-canvas-tools/assets"
	"github.com/kalebabebe/mitx-canvas-tools/config"
	"github.com/kalebabebe/mitx-canvas-tools/imscc"
	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/kalebabebe/mitx-canvas-tools/olx"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

// Report summarizes one conversion run for the caller. Skipped counts items
// the pipeline could not convert, grouped by their human-readable type
// label.
type Report struct {
	CourseTitle string         `json:"course_title"`
	CourseID    string         `json:"course_id"`
	Chapters    int            `json:"chapters"`
	Sequentials int            `json:"sequentials"`
	Verticals   int            `json:"verticals"`
	Blocks      int            `json:"blocks"`
	Assets      int            `json:"assets"`
	Skipped     map[string]int `json:"skipped"`
	OutputDir   string         `json:"output_dir"`
}

// Run converts the archive at archivePath into an OLX tree under outDir.
func Run(archivePath, outDir string, opts Options) (*Report, error) {
	arc, err := imscc.OpenArchive(archivePath)
	if err != nil {
		return nil, errors.Wrap(err, "opening archive")
	}
	defer arc.Close()

	course, err := imscc.BuildCourse(arc, imscc.BuildOptions{
		Org:      opts.Org,
		Run:      opts.Run,
		Language: opts.Language,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building course tree")
	}
	Log.Infof("Built course %s (%d chapters)", course.GetDisplayName(), len(course.GetChapters()))

	if err := olx.ExportCourse(course, outDir, opts.Force); err != nil {
		return nil, errors.Wrap(err, "exporting course")
	}

	assetCount, err := assets.CopyWebResources(arc.RootDir, outDir)
	if err != nil {
		return nil, errors.Wrap(err, "copying assets")
	}
	Log.Infof("Copied %d static assets", assetCount)

	report := buildReport(course, outDir, assetCount)
	return report, nil
}

func buildReport(course ir.Course, outDir string, assetCount int) *Report {
	report := &Report{
		CourseTitle: course.GetDisplayName(),
		CourseID:    fmt.Sprintf("%s/%s/%s", course.GetOrgName(), course.GetCourseCode(), course.GetRunName()),
		Assets:      assetCount,
		Skipped:     map[string]int{},
		OutputDir:   outDir,
	}
	for _, chap := range course.GetChapters() {
		report.Chapters++
		for _, seq := range chap.GetSequentials() {
			report.Sequentials++
			for _, vert := range seq.GetVerticals() {
				report.Verticals++
				report.Blocks += len(vert.GetBlocks())
			}
		}
	}
	for _, item := range course.GetUnsupportedItems() {
		report.Skipped[item.TypeLabel]++
	}
	return report
}
