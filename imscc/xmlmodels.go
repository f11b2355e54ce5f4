package imscc

import "encoding/xml"

// Unqualified element names in these models match both namespaced and bare
// tags, so exports with or without the Canvas schema namespace parse the
// same way.

type courseSettingsXML struct {
	XMLName              xml.Name `xml:"course"`
	Identifier           string   `xml:"identifier,attr"`
	Title                string   `xml:"title"`
	CourseCode           string   `xml:"course_code"`
	StartAt              string   `xml:"start_at"`
	ConcludeAt           string   `xml:"conclude_at"`
	License              string   `xml:"license"`
	IsPublic             string   `xml:"is_public"`
	GroupWeightingScheme string   `xml:"group_weighting_scheme"`
}

type moduleMetaXML struct {
	XMLName xml.Name    `xml:"modules"`
	Modules []moduleXML `xml:"module"`
}

type moduleXML struct {
	Identifier                string            `xml:"identifier,attr"`
	Title                     string            `xml:"title"`
	WorkflowState             string            `xml:"workflow_state"`
	Position                  string            `xml:"position"`
	RequireSequentialProgress string            `xml:"require_sequential_progress"`
	Prerequisites             []prerequisiteXML `xml:"prerequisites>prerequisite"`
	Items                     []moduleItemXML   `xml:"items>item"`
}

type prerequisiteXML struct {
	Type          string `xml:"type,attr"`
	IdentifierRef string `xml:"identifierref"`
	Title         string `xml:"title"`
}

type moduleItemXML struct {
	Identifier    string `xml:"identifier,attr"`
	ContentType   string `xml:"content_type"`
	Title         string `xml:"title"`
	IdentifierRef string `xml:"identifierref"`
	WorkflowState string `xml:"workflow_state"`
	Position      string `xml:"position"`
	URL           string `xml:"url"`
}

type assignmentGroupsXML struct {
	XMLName xml.Name             `xml:"assignmentGroups"`
	Groups  []assignmentGroupXML `xml:"assignmentGroup"`
}

type assignmentGroupXML struct {
	Identifier  string `xml:"identifier,attr"`
	Title       string `xml:"title"`
	Position    string `xml:"position"`
	GroupWeight string `xml:"group_weight"`
}

type assignmentSettingsXML struct {
	XMLName                      xml.Name `xml:"assignment"`
	Identifier                   string   `xml:"identifier,attr"`
	Title                        string   `xml:"title"`
	PointsPossible               string   `xml:"points_possible"`
	GradingType                  string   `xml:"grading_type"`
	SubmissionTypes              string   `xml:"submission_types"`
	WorkflowState                string   `xml:"workflow_state"`
	DueAt                        string   `xml:"due_at"`
	AssignmentGroupIdentifierRef string   `xml:"assignment_group_identifierref"`
}
