package qti

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseMetaFile reads the assessment_meta.xml that sits next to a quiz's
// question file. A missing file yields (nil, nil); quiz settings are
// optional everywhere downstream.
func ParseMetaFile(path string) (*Meta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "qti: reading quiz meta file")
	}
	parsed := &quizMetaXML{}
	if err := xml.Unmarshal(raw, parsed); err != nil {
		return nil, errors.Wrap(err, "qti: unmarshalling quiz meta file")
	}
	meta := &Meta{
		Ident:         parsed.Ident,
		Title:         strings.TrimSpace(parsed.Title),
		ScoringPolicy: strings.TrimSpace(parsed.ScoringPolicy),
	}
	if v, err := strconv.Atoi(strings.TrimSpace(parsed.TimeLimit)); err == nil {
		meta.TimeLimitMinutes = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(parsed.AllowedAttempts)); err == nil {
		meta.AllowedAttempts = v
	}
	meta.ShowCorrectAnswers = strings.TrimSpace(parsed.ShowCorrectAnswers) == "true"
	return meta, nil
}
