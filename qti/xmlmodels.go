package qti

// Struct models for the QTI 1.2 XML surface we consume. Unqualified field
// tags match elements in any namespace, so the same models cover both the
// namespaced and bare variants found in the wild.

type questestinteropXML struct {
	Assessment *assessmentXML `xml:"assessment"`
	Objectbank *objectbankXML `xml:"objectbank"`
	Items      []itemXML      `xml:"item"`
}

type assessmentXML struct {
	Ident    string       `xml:"ident,attr"`
	Title    string       `xml:"title,attr"`
	Sections []sectionXML `xml:"section"`
}

type objectbankXML struct {
	Ident    string       `xml:"ident,attr"`
	Items    []itemXML    `xml:"item"`
	Sections []sectionXML `xml:"section"`
}

type sectionXML struct {
	Ident             string                `xml:"ident,attr"`
	Items             []itemXML             `xml:"item"`
	Sections          []sectionXML          `xml:"section"`
	SelectionOrdering *selectionOrderingXML `xml:"selection_ordering"`
}

type selectionOrderingXML struct {
	Selection selectionXML `xml:"selection"`
}

type selectionXML struct {
	SourceBankRef   string `xml:"sourcebank_ref"`
	SelectionNumber int    `xml:"selection_number"`
}

type itemXML struct {
	Ident             string                `xml:"ident,attr"`
	Title             string                `xml:"title,attr"`
	MetadataFields    []metadataFieldXML    `xml:"itemmetadata>qtimetadata>qtimetadatafield"`
	Presentation      *presentationXML      `xml:"presentation"`
	ResProcessing     *resprocessingXML     `xml:"resprocessing"`
	ItemprocExtension *itemprocExtensionXML `xml:"itemproc_extension"`
}

type metadataFieldXML struct {
	Label string `xml:"fieldlabel"`
	Entry string `xml:"fieldentry"`
}

type presentationXML struct {
	Materials    []materialXML    `xml:"material"`
	ResponseLids []responseLidXML `xml:"response_lid"`
	ResponseStrs []responseStrXML `xml:"response_str"`
	Flow         *presentationXML `xml:"flow"`
}

// flattened resolves the optional <flow> wrapper some producers emit.
func (p *presentationXML) flattened() *presentationXML {
	if p == nil {
		return &presentationXML{}
	}
	out := &presentationXML{
		Materials:    p.Materials,
		ResponseLids: p.ResponseLids,
		ResponseStrs: p.ResponseStrs,
	}
	for f := p.Flow; f != nil; f = f.Flow {
		out.Materials = append(out.Materials, f.Materials...)
		out.ResponseLids = append(out.ResponseLids, f.ResponseLids...)
		out.ResponseStrs = append(out.ResponseStrs, f.ResponseStrs...)
	}
	return out
}

type materialXML struct {
	Mattexts []mattextXML `xml:"mattext"`
}

func (m *materialXML) text() string {
	if m == nil {
		return ""
	}
	for _, mt := range m.Mattexts {
		if mt.Value != "" {
			return mt.Value
		}
	}
	return ""
}

type mattextXML struct {
	TextType string `xml:"texttype,attr"`
	Value    string `xml:",chardata"`
}

type responseLidXML struct {
	Ident        string           `xml:"ident,attr"`
	RCardinality string           `xml:"rcardinality,attr"`
	Material     *materialXML     `xml:"material"`
	RenderChoice *renderChoiceXML `xml:"render_choice"`
}

type renderChoiceXML struct {
	Labels []responseLabelXML `xml:"response_label"`
}

type responseLabelXML struct {
	Ident    string       `xml:"ident,attr"`
	Material *materialXML `xml:"material"`
}

type responseStrXML struct {
	Ident string `xml:"ident,attr"`
}

type resprocessingXML struct {
	RespConditions []respconditionXML `xml:"respcondition"`
}

type respconditionXML struct {
	ConditionVar conditionvarXML `xml:"conditionvar"`
	SetVars      []setvarXML     `xml:"setvar"`
}

// scoreValue returns the SCORE assignment of the condition, or -1 when the
// condition does not set SCORE.
func (rc *respconditionXML) scoreValue() float64 {
	for _, sv := range rc.SetVars {
		if sv.VarName == "" || sv.VarName == "SCORE" {
			if v, err := parseFloat(sv.Value); err == nil {
				return v
			}
		}
	}
	return -1
}

type setvarXML struct {
	VarName string `xml:"varname,attr"`
	Action  string `xml:"action,attr"`
	Value   string `xml:",chardata"`
}

type conditionvarXML struct {
	VarEquals []varequalXML `xml:"varequal"`
	And       *andXML       `xml:"and"`
	Or        *orXML        `xml:"or"`
}

type andXML struct {
	VarEquals []varequalXML `xml:"varequal"`
	Nots      []notXML      `xml:"not"`
	VarGte    *boundXML     `xml:"vargte"`
	VarLte    *boundXML     `xml:"varlte"`
	Ands      []andXML      `xml:"and"`
}

type orXML struct {
	VarEquals []varequalXML `xml:"varequal"`
	Ands      []andXML      `xml:"and"`
}

type notXML struct {
	VarEquals []varequalXML `xml:"varequal"`
}

type varequalXML struct {
	RespIdent string `xml:"respident,attr"`
	Value     string `xml:",chardata"`
}

type boundXML struct {
	RespIdent string `xml:"respident,attr"`
	Value     string `xml:",chardata"`
}

type itemprocExtensionXML struct {
	Calculated *calculatedXML `xml:"calculated"`
}

type calculatedXML struct {
	AnswerTolerance string          `xml:"answer_tolerance"`
	Formulas        formulasXML     `xml:"formulas"`
	Vars            []calcVarXML    `xml:"vars>var"`
	VarSets         []calcVarSetXML `xml:"var_sets>var_set"`
}

type formulasXML struct {
	Formula []string `xml:"formula"`
}

type calcVarXML struct {
	Name string `xml:"name,attr"`
	Min  string `xml:"min"`
	Max  string `xml:"max"`
}

type calcVarSetXML struct {
	Ident  string          `xml:"ident,attr"`
	Vars   []calcSetVarXML `xml:"var"`
	Answer string          `xml:"answer"`
}

type calcSetVarXML struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type quizMetaXML struct {
	Ident              string `xml:"identifier,attr"`
	Title              string `xml:"title"`
	TimeLimit          string `xml:"time_limit"`
	AllowedAttempts    string `xml:"allowed_attempts"`
	ScoringPolicy      string `xml:"scoring_policy"`
	ShowCorrectAnswers string `xml:"show_correct_answers"`
}
