// Package imscc reads Canvas IMS Common Cartridge course exports and builds
// the intermediate course tree consumed by the OLX exporter.
package imscc

import (
	"github.com/kalebabebe/mitx-canvas-tools/config"
	"github.com/kalebabebe/mitx-canvas-tools/courseuri"
	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

func NewIMSCCExtFmt() *IMSCC {
	return &IMSCC{}
}

type IMSCC struct {
}

func (i *IMSCC) Import(fromUri string) (toIntermediateRepresentation ir.Course, err error) {
	path, err := courseuri.GetAbsolutePathFromFileURI(fromUri)
	if err != nil {
		return nil, err
	}
	arc, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	defer arc.Close()
	return BuildCourse(arc, BuildOptions{})
}

func (i *IMSCC) Export(fromIntermediateRepresentation ir.Course, toUri string, forceExport bool) (err error) {
	return errors.New("imscc: export to Common Cartridge is not supported")
}
