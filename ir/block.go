package ir

// Block content types understood by the OLX exporter.
const (
	BlockTypeHTML           = "html"
	BlockTypeProblem        = "problem"
	BlockTypeOpenAssessment = "openassessment"
)

type Block interface {
	GetDisplayName() string
	GetURLName() string
	GetBlockType() string
	GetContent() string
	GetExtraAttributes() map[string]string
}
