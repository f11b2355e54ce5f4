package qti

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// questionsFromBank resolves a quiz section's sourcebank_ref: it loads the
// named bank file, parses every item inside, and returns the first n parsed
// questions in file order. No randomization; reproducible output matters more
// than faithfulness to Canvas's runtime draw.
func questionsFromBank(rootDir, bankID string, n int) ([]*Question, error) {
	path, err := findBankFile(rootDir, bankID)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "qti: reading bank file")
	}
	root := &questestinteropXML{}
	if err := xml.Unmarshal(raw, root); err != nil {
		return nil, errors.Wrap(err, "qti: unmarshalling bank file")
	}
	var items []itemXML
	switch {
	case root.Objectbank != nil:
		items = root.Objectbank.Items
		for i := range root.Objectbank.Sections {
			items = append(items, sectionItems(&root.Objectbank.Sections[i])...)
		}
	case root.Assessment != nil:
		for i := range root.Assessment.Sections {
			items = append(items, sectionItems(&root.Assessment.Sections[i])...)
		}
	default:
		items = root.Items
	}
	var out []*Question
	for i := range items {
		if q := parseItem(&items[i]); q != nil {
			out = append(out, q)
		}
		if n > 0 && len(out) == n {
			break
		}
	}
	return out, nil
}

func sectionItems(sect *sectionXML) []itemXML {
	items := append([]itemXML{}, sect.Items...)
	for i := range sect.Sections {
		items = append(items, sectionItems(&sect.Sections[i])...)
	}
	return items
}

func findBankFile(rootDir, bankID string) (string, error) {
	candidates := []string{
		filepath.Join(rootDir, bankID, bankID+".xml"),
		filepath.Join(rootDir, "non_cc_assessments", bankID+".xml.qti"),
		filepath.Join(rootDir, "non_cc_assessments", bankID+".xml"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", errors.Errorf("qti: question bank file not found for %s", bankID)
}
