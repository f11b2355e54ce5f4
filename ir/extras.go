package ir

// UnsupportedItem is one ledger entry for source content the pipeline could
// not convert. TypeLabel is the human-readable grouping key used in the
// conversion report and the generated import-notes page.
type UnsupportedItem struct {
	TypeLabel string
	Title     string
	URL       string
}

// GradingCategory feeds one weighted grader entry in the exported grading
// policy. Weight is a fraction in [0,1].
type GradingCategory struct {
	Type       string
	ShortLabel string
	Weight     float64
	MinCount   int
	DropCount  int
}
