package olx

import "encoding/xml"

type courseRootXML struct {
	XMLName xml.Name `xml:"course"`
	URLName string   `xml:"url_name,attr"`
	Org     string   `xml:"org,attr"`
	Course  string   `xml:"course,attr"`
}

type courseXML struct {
	XMLName     xml.Name     `xml:"course"`
	DisplayName string       `xml:"display_name,attr"`
	Language    string       `xml:"language,attr"`
	Start       string       `xml:"start,attr,omitempty"`
	End         string       `xml:"end,attr,omitempty"`
	Chapters    []nodeRefXML `xml:"chapter"`
	Wiki        wikiXML      `xml:"wiki"`
}

type wikiXML struct {
	Slug string `xml:"slug,attr"`
}

// nodeRefXML is a child reference inside a structure file. XMLName carries
// the element name so one type serves chapter, sequential, vertical, and
// component references alike.
type nodeRefXML struct {
	XMLName xml.Name
	URLName string `xml:"url_name,attr"`
}

type chapterXML struct {
	XMLName            xml.Name     `xml:"chapter"`
	DisplayName        string       `xml:"display_name,attr"`
	VisibleToStaffOnly string       `xml:"visible_to_staff_only,attr,omitempty"`
	Sequentials        []nodeRefXML `xml:"sequential"`
}

type sequentialXML struct {
	XMLName            xml.Name     `xml:"sequential"`
	DisplayName        string       `xml:"display_name,attr"`
	Prereq             string       `xml:"prereq,attr,omitempty"`
	VisibleToStaffOnly string       `xml:"visible_to_staff_only,attr,omitempty"`
	Verticals          []nodeRefXML `xml:"vertical"`
}

type verticalXML struct {
	XMLName     xml.Name `xml:"vertical"`
	DisplayName string   `xml:"display_name,attr"`
	Blocks      []nodeRefXML
}

type htmlMetaXML struct {
	XMLName     xml.Name `xml:"html"`
	DisplayName string   `xml:"display_name,attr"`
	Filename    string   `xml:"filename,attr"`
}
