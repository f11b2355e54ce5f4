package ccserver

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/exlinc/golang-utils/jsonhttp"
	"github.com/kalebabebe/mitx-canvas-tools/config"
	"github.com/kalebabebe/mitx-canvas-tools/convert"
	"github.com/kalebabebe/mitx-canvas-tools/smtputils"
)

type convertResponse struct {
	Report       *convert.Report `json:"report"`
	DownloadName string          `json:"download_name"`
	DownloadPath string          `json:"download_path"`
}

func convertArchive(w http.ResponseWriter, r *http.Request) {
	cfg := config.Cfg()
	if err := r.ParseMultipartForm(cfg.MaxUploadMB << 20); err != nil {
		jsonhttp.JSONBadRequestError(w, "Invalid multipart upload", err.Error())
		return
	}
	file, header, err := r.FormFile("archive")
	if err != nil {
		jsonhttp.JSONBadRequestError(w, "Missing archive file field", "")
		return
	}
	defer file.Close()

	runID := fmt.Sprintf("cc_%d", time.Now().UnixNano())
	uploadPath := filepath.Join(cfg.UploadDir, runID+".imscc")
	if err := saveUpload(file, uploadPath); err != nil {
		Log.Error("An error occurred storing the upload: ", err)
		jsonhttp.JSONInternalError(w, "An error occurred storing the upload", "")
		return
	}
	defer os.Remove(uploadPath)

	outDir := filepath.Join(cfg.OutputDir, runID)
	opts := convert.Options{
		Org:      r.FormValue("org"),
		Run:      r.FormValue("run"),
		Language: r.FormValue("language"),
		Force:    true,
	}
	report, err := convert.Run(uploadPath, outDir, opts)
	if err != nil {
		Log.Errorf("Conversion of %s failed: %v", header.Filename, err)
		jsonhttp.JSONBadRequestError(w, "Conversion failed", err.Error())
		return
	}

	downloadName := runID + ".tar.gz"
	if err := tarGzDir(outDir, filepath.Join(cfg.OutputDir, downloadName)); err != nil {
		Log.Error("An error occurred packaging the output: ", err)
		jsonhttp.JSONInternalError(w, "An error occurred packaging the output", "")
		return
	}

	if email := strings.TrimSpace(r.FormValue("notify_email")); email != "" {
		go func() {
			if err := smtputils.SendEmail(email, "Course conversion complete", reportHTML(report, downloadName)); err != nil {
				Log.Warnf("Report email to %s failed: %v", email, err)
			}
		}()
	}

	jsonhttp.JSONSuccess(w, convertResponse{
		Report:       report,
		DownloadName: downloadName,
		DownloadPath: "/v1/download/" + downloadName,
	}, "Conversion complete")
}

func saveUpload(src io.Reader, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

func reportHTML(report *convert.Report, downloadName string) string {
	var sb strings.Builder
	sb.WriteString("<h2>Course conversion complete</h2>\n")
	sb.WriteString(fmt.Sprintf("<p><strong>%s</strong> (%s)</p>\n", report.CourseTitle, report.CourseID))
	sb.WriteString(fmt.Sprintf("<p>Chapters: %d, Sequentials: %d, Units: %d, Components: %d, Assets: %d</p>\n",
		report.Chapters, report.Sequentials, report.Verticals, report.Blocks, report.Assets))
	if len(report.Skipped) > 0 {
		sb.WriteString("<p>Skipped items:</p>\n<ul>\n")
		for label, count := range report.Skipped {
			sb.WriteString(fmt.Sprintf("<li>%s: %d</li>\n", label, count))
		}
		sb.WriteString("</ul>\n")
	}
	sb.WriteString(fmt.Sprintf("<p>Download: %s</p>\n", downloadName))
	return sb.String()
}
