package conformance

import (
	"fmt"
	"os"

	"github.com/go-xmltree/xmltree"
)

// Result is the outcome of running one TestCase against Parse.
type Result struct {
	Case    TestCase
	Skipped bool
	Failure string // empty if the case passed (or was skipped)
}

// Summary aggregates Results across a catalog run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Results []Result
}

// Run loads the catalog at catalogPath and evaluates every case it lists
// against xmltree.Parse.
//
// Expectations follow this module's non-validating scope: "not-wf" cases
// must fail to parse, "valid" and "invalid" cases must both parse
// successfully (validity constraints are schema-validation concerns this
// parser does not implement), and "error" cases — violations a conforming
// processor "may" but need not detect — are recorded but never counted as
// failures, matching the suite's own optionality for that category.
func Run(catalogPath string) (Summary, error) {
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, tc := range cat.Cases {
		sum.Total++
		result := evaluate(tc)
		sum.Results = append(sum.Results, result)
		switch {
		case result.Skipped:
			sum.Skipped++
		case result.Failure != "":
			sum.Failed++
		default:
			sum.Passed++
		}
	}
	return sum, nil
}

func evaluate(tc TestCase) Result {
	data, err := os.ReadFile(tc.Path)
	if err != nil {
		return Result{Case: tc, Skipped: true}
	}

	_, parseErr := xmltree.Parse(string(data))

	switch tc.Type {
	case "not-wf":
		if parseErr == nil {
			return Result{Case: tc, Failure: "expected a well-formedness error but parsing succeeded"}
		}
	case "valid", "invalid":
		if parseErr != nil {
			return Result{Case: tc, Failure: fmt.Sprintf("expected well-formed input but got: %v", parseErr)}
		}
	case "error":
		// Optional: a conforming processor may or may not report these.
	}
	return Result{Case: tc}
}
