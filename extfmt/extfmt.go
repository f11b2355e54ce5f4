// Package extfmt is the registry of external course formats. A format
// implements ExtFmt to move courses between its on-disk representation and
// the ir course tree; the imscc importer and olx exporter register here.
package extfmt

import "github.com/kalebabebe/mitx-canvas-tools/ir"

type ExtFmt interface {
	Import(fromUri string) (toIntermediateRepresentation ir.Course, err error)
	Export(fromIntermediateRepresentation ir.Course, toUri string, forceExport bool) (err error)
}
