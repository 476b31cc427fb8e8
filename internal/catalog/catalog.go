// Package catalog holds the reference classification lists that inputs are
// matched against. Each classification ships as an embedded JSON file:
// plain lists are arrays of labels, code-bearing lists are arrays of
// [code, label] pairs.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/sectormatch/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog is one reference classification: an ordered list of entries,
// loaded once per session and read-only thereafter. A loaded Catalog may be
// cached and shared across concurrent sessions without locking.
type Catalog struct {
	Name    string
	Coded   bool
	Entries []model.ReferenceEntry
}

// Load returns the catalog for the given classification identifier.
// Aliases are accepted (e.g. "openIO-Canada" for IOCC). Unknown identifiers
// fail with ErrUnknownClassification.
func Load(name string) (*Catalog, error) {
	canonical, s, err := resolve(name)
	if err != nil {
		return nil, err
	}

	raw, err := dataFS.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", s.file, err)
	}

	entries, err := parseEntries(raw, s.coded)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", s.file, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog: %s is empty", s.file)
	}

	return &Catalog{Name: canonical, Coded: s.coded, Entries: entries}, nil
}

// parseEntries decodes a reference list according to its shape tag.
func parseEntries(raw []byte, coded bool) ([]model.ReferenceEntry, error) {
	if !coded {
		var labels []string
		if err := json.Unmarshal(raw, &labels); err != nil {
			return nil, err
		}
		entries := make([]model.ReferenceEntry, len(labels))
		for i, label := range labels {
			entries[i] = model.ReferenceEntry{Label: label}
		}
		return entries, nil
	}

	var pairs [][]string
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, err
	}
	entries := make([]model.ReferenceEntry, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("entry %d: expected [code, label], got %d elements", i, len(pair))
		}
		entries[i] = model.ReferenceEntry{Code: pair[0], Label: pair[1]}
	}
	return entries, nil
}

// Labels returns the entry labels in catalog order. This is the text that
// gets embedded; codes are never embedded.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		labels[i] = e.Label
	}
	return labels
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}
