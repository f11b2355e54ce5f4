// Package olx serializes the intermediate course tree into an Open edX OLX
// directory tree: one XML file per node plus policy, about, and info
// documents.
package olx

import (
	"github.com/kalebabebe/mitx-canvas-tools/config"
	"github.com/kalebabebe/mitx-canvas-tools/courseuri"
	"github.com/kalebabebe/mitx-canvas-tools/ir"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

func NewOLXExtFmt() *OLX {
	return &OLX{}
}

type OLX struct {
}

func (o *OLX) Import(fromUri string) (toIntermediateRepresentation ir.Course, err error) {
	return nil, errors.New("olx: import is not supported")
}

func (o *OLX) Export(fromIntermediateRepresentation ir.Course, toUri string, forceExport bool) (err error) {
	rootDir, err := courseuri.GetAbsolutePathFromFileURI(toUri)
	if err != nil {
		return err
	}
	return ExportCourse(fromIntermediateRepresentation, rootDir, forceExport)
}
