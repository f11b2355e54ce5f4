package qti

import "strings"

// parseCorrectIDs collects the choice ids (or literal answers, for short
// answer) from every respcondition that awards a full score. Conjunctive
// ("all of") conditions contribute their direct varequal children; ids
// wrapped in a negation are incorrect answers and are excluded.
func parseCorrectIDs(resp *resprocessingXML) []string {
	if resp == nil {
		return nil
	}
	var ids []string
	for i := range resp.RespConditions {
		rc := &resp.RespConditions[i]
		if rc.scoreValue() != 100 {
			continue
		}
		cv := &rc.ConditionVar
		for _, ve := range cv.VarEquals {
			if v := strings.TrimSpace(ve.Value); v != "" {
				ids = append(ids, v)
			}
		}
		if cv.And != nil {
			for _, ve := range cv.And.VarEquals {
				if v := strings.TrimSpace(ve.Value); v != "" {
					ids = append(ids, v)
				}
			}
		}
		if cv.Or != nil {
			for _, ve := range cv.Or.VarEquals {
				if v := strings.TrimSpace(ve.Value); v != "" {
					ids = append(ids, v)
				}
			}
		}
	}
	return ids
}

// parseBlanks builds the per-blank structure of matching,
// fill-in-multiple-blanks and multiple-dropdowns questions. Every
// response_lid is one blank; its correct choice is resolved by matching the
// blank's response identifier against any credit-awarding respcondition.
func parseBlanks(pres *presentationXML, resp *resprocessingXML) []Blank {
	blanks := make([]Blank, 0, len(pres.ResponseLids))
	for _, lid := range pres.ResponseLids {
		blank := Blank{
			RespIdent: lid.Ident,
			Prompt:    UnescapeEntities(lid.Material.text()),
			Choices:   parseChoices(lid),
			CorrectID: correctIDForRespIdent(resp, lid.Ident),
		}
		blanks = append(blanks, blank)
	}
	return blanks
}

func correctIDForRespIdent(resp *resprocessingXML, respIdent string) string {
	if resp == nil {
		return ""
	}
	for i := range resp.RespConditions {
		rc := &resp.RespConditions[i]
		if rc.scoreValue() <= 0 {
			continue
		}
		for _, ve := range collectVarEquals(&rc.ConditionVar) {
			if ve.RespIdent == respIdent {
				if v := strings.TrimSpace(ve.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func collectVarEquals(cv *conditionvarXML) []varequalXML {
	out := append([]varequalXML{}, cv.VarEquals...)
	if cv.And != nil {
		out = append(out, varEqualsFromAnd(cv.And)...)
	}
	if cv.Or != nil {
		out = append(out, cv.Or.VarEquals...)
		for i := range cv.Or.Ands {
			out = append(out, varEqualsFromAnd(&cv.Or.Ands[i])...)
		}
	}
	return out
}

func varEqualsFromAnd(a *andXML) []varequalXML {
	out := append([]varequalXML{}, a.VarEquals...)
	for i := range a.Ands {
		out = append(out, varEqualsFromAnd(&a.Ands[i])...)
	}
	return out
}

// parseNumericalAnswers fills q's numeric answers, ranges and tolerance.
// Exact values come from varequal elements, closed ranges from a vargte/varlte
// pair under a conjunction. When only a range is present the answer is its
// midpoint and the tolerance half its width; an exact value always stays the
// answer and only the tolerance comes from the range.
func parseNumericalAnswers(resp *resprocessingXML, q *Question) {
	if resp == nil {
		return
	}
	for i := range resp.RespConditions {
		rc := &resp.RespConditions[i]
		if rc.scoreValue() != 100 {
			continue
		}
		extractNumericValues(&rc.ConditionVar, q)
	}
	if len(q.Ranges) == 0 {
		return
	}
	for _, r := range q.Ranges {
		if r.Min == 0 && r.Max == 0 {
			continue
		}
		tolerance := (r.Max - r.Min) / 2
		if len(q.NumericAnswers) == 0 {
			q.NumericAnswers = []float64{(r.Min + r.Max) / 2}
		}
		q.Tolerance = &tolerance
		break
	}
}

func extractNumericValues(cv *conditionvarXML, q *Question) {
	varEquals := cv.VarEquals
	ands := []andXML{}
	if cv.And != nil {
		ands = append(ands, *cv.And)
	}
	if cv.Or != nil {
		varEquals = append(varEquals, cv.Or.VarEquals...)
		ands = append(ands, cv.Or.Ands...)
	}
	for _, ve := range varEquals {
		v, err := parseFloat(ve.Value)
		if err != nil || v == 0 {
			continue
		}
		if !containsFloat(q.NumericAnswers, v) {
			q.NumericAnswers = append(q.NumericAnswers, v)
		}
	}
	for i := range ands {
		a := &ands[i]
		if a.VarGte != nil && a.VarLte != nil {
			lo, errLo := parseFloat(a.VarGte.Value)
			hi, errHi := parseFloat(a.VarLte.Value)
			if errLo == nil && errHi == nil && (lo != 0 || hi != 0) {
				q.Ranges = append(q.Ranges, Range{Min: lo, Max: hi})
			}
		}
	}
}

func containsFloat(vals []float64, v float64) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

// parseCalculated reads the vendor extension block of a calculated question:
// the formula, the variable bounds, and the first concrete sample whose
// substituted answer is displayed.
func parseCalculated(ext *itemprocExtensionXML) *CalcData {
	if ext == nil || ext.Calculated == nil {
		return nil
	}
	raw := ext.Calculated
	calc := &CalcData{}
	if len(raw.Formulas.Formula) > 0 {
		calc.Formula = strings.TrimSpace(raw.Formulas.Formula[0])
	}
	for _, v := range raw.Vars {
		cv := CalcVar{Name: v.Name}
		if f, err := parseFloat(v.Min); err == nil {
			cv.Min = f
		}
		if f, err := parseFloat(v.Max); err == nil {
			cv.Max = f
		}
		calc.Vars = append(calc.Vars, cv)
	}
	if tol, err := parseFloat(strings.TrimSuffix(strings.TrimSpace(raw.AnswerTolerance), "%")); err == nil {
		calc.Tolerance = tol
	}
	for _, vs := range raw.VarSets {
		answer, err := parseFloat(vs.Answer)
		if err != nil {
			continue
		}
		sample := &CalcSample{Values: map[string]float64{}, Answer: answer}
		for _, v := range vs.Vars {
			if f, err := parseFloat(v.Value); err == nil {
				sample.Values[v.Name] = f
			}
		}
		calc.Sample = sample
		break
	}
	return calc
}
