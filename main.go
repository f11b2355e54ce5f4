package main

import (
	"encoding/json"
	"fmt"

	"github.com/kalebabebe/mitx-canvas-tools/ccserver"
	"github.com/kalebabebe/mitx-canvas-tools/config"
	"github.com/kalebabebe/mitx-canvas-tools/convert"
	"github.com/kalebabebe/mitx-canvas-tools/courseuri"
	"github.com/kalebabebe/mitx-canvas-tools/extfmt"
	"github.com/kalebabebe/mitx-canvas-tools/imscc"
	"github.com/kalebabebe/mitx-canvas-tools/olx"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	convertCmd      = kingpin.Command("convert", "Convert a Canvas course export to an Open edX OLX tree")
	convertForce    = convertCmd.Flag("force", "Ignore if the destination already exists, just write the files/folders").Default("false").Bool()
	convertArchive  = convertCmd.Flag("archive", "The path to the source .imscc archive").Required().String()
	convertOutDir   = convertCmd.Flag("out-dir", "The destination directory for the OLX tree").Required().String()
	convertOptsFile = convertCmd.Flag("options", "Path to a YAML options file (org/run/language overrides)").String()
	convertOrg      = convertCmd.Flag("org", "Override the derived organization token").String()
	convertRun      = convertCmd.Flag("run", "Override the derived run token").String()
	verifyCmd       = kingpin.Command("verify", "Check that a course archive parses into a complete course tree")
	verifyFormat    = verifyCmd.Flag("format", "The format to which the course should conform to").Default("imscc").String()
	verifyURI       = verifyCmd.Flag("uri", "The URI of the source of the course").Required().String()
	serveCmd        = kingpin.Command("serve", "Run the conversion HTTP service")
)

var Log = config.Cfg().GetLogger()

func init() {
	extfmt.RegisterExtFmt("imscc", imscc.NewIMSCCExtFmt())
	extfmt.RegisterExtFmt("olx", olx.NewOLXExtFmt())
}

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version("0.1").Author("MITx")
	kingpin.CommandLine.Help = "Canvas Common Cartridge to Open edX OLX - Utilities"
	switch kingpin.Parse() {
	case "convert":
		opts, err := convert.LoadOptionsFile(*convertOptsFile)
		if err != nil {
			Log.Fatalf("Invalid options file: %s", err.Error())
		}
		if *convertOrg != "" {
			opts.Org = *convertOrg
		}
		if *convertRun != "" {
			opts.Run = *convertRun
		}
		opts.Force = opts.Force || *convertForce
		Log.Info("Converting course ...")
		report, err := convert.Run(*convertArchive, *convertOutDir, opts)
		if err != nil {
			Log.Fatalf("Course conversion failed with: %s", err.Error())
		}
		Log.Infof("Successfully converted course: %s", report.CourseTitle)
		printReport(report)
	case "verify":
		Log.Info("Importing course for verification ...")
		ir, err := getExtFmtF(*verifyFormat).Import(verifyAndCleanURIF(*verifyURI))
		if err != nil {
			Log.Fatalf("Course import verification failed with: %s", err.Error())
		}
		Log.Infof("Successfully verified course: %s", ir.GetDisplayName())
		return
	case "serve":
		ccserver.Serve()
	default:
		Log.Fatal("Unknown command")
	}
}

func printReport(report *convert.Report) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		Log.Errorf("Cannot render report: %s", err.Error())
		return
	}
	fmt.Println(string(out))
}

func getExtFmtF(key string) extfmt.ExtFmt {
	impl := extfmt.GetImplementation(key)
	if impl == nil {
		Log.Fatalf(fmt.Sprintf("invalid format type: %s", key))
	}
	return impl
}

func verifyAndCleanURIF(uri string) string {
	var err error
	uri, err = courseuri.VerifyAndClean(uri)
	if err != nil {
		Log.Fatalf("invalid uri: %s", err.Error())
	}
	return uri
}
