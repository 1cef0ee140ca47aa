// Package conformance ingests the W3C XML Conformance Test Suite catalog
// (xmlconf.xml) and runs each listed case against this module's own Parse.
package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-xmltree/xmltree"
)

// TestCase is one <TEST> entry from the catalog: an input document and the
// well-formedness outcome a conforming processor is expected to report.
type TestCase struct {
	ID   string
	Type string // "valid", "invalid", "not-wf", or "error"
	Path string // absolute path to the input document
}

// Catalog is the flattened list of test cases a catalog file describes.
// <TESTCASES> nodes nest arbitrarily; LoadCatalog walks the nesting and
// returns every <TEST> leaf it finds.
type Catalog struct {
	Cases []TestCase
}

// LoadCatalog parses the catalog file at path (dogfeeding this module's own
// Parse) and resolves every case's URI against the catalog's directory.
//
// The real xmlconf.xml uses xml:base on nested <TESTCASES> to relocate URI
// resolution per subsuite; this loader does not honor xml:base and instead
// resolves every URI relative to the directory of the catalog file named by
// path. Driving the suite therefore requires invoking LoadCatalog once per
// subsuite's own catalog file (e.g. ibm/ibm_oasis_invalid.xml) rather than
// only the top-level xmlconf.xml. Run loads exactly the one catalog file it
// is given and does not descend into other catalog files.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	doc, err := xmltree.Parse(string(data), xmltree.IgnoreUndefinedEntities(true))
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	cat := &Catalog{}
	collectCases(doc.Root, dir, cat)
	return cat, nil
}

// collectCases recursively descends <TESTCASES> elements collecting <TEST>
// leaves, mirroring the suite's arbitrarily nested grouping of test cases
// by submitter and feature area.
func collectCases(el *xmltree.Element, dir string, cat *Catalog) {
	if el == nil {
		return
	}
	for _, child := range el.Children {
		childEl, ok := child.(*xmltree.Element)
		if !ok {
			continue
		}
		switch childEl.Name {
		case "TESTCASES":
			collectCases(childEl, dir, cat)
		case "TEST":
			tc := TestCase{Type: "valid"}
			if id, ok := childEl.Attrs.Get("ID"); ok {
				tc.ID = id
			}
			if typ, ok := childEl.Attrs.Get("TYPE"); ok {
				tc.Type = typ
			}
			uri, ok := childEl.Attrs.Get("URI")
			if !ok {
				continue
			}
			tc.Path = filepath.Join(dir, uri)
			cat.Cases = append(cat.Cases, tc)
		}
	}
}
