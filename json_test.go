package xmltree

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDocumentToJSONFieldOrder(t *testing.T) {
	doc, err := Parse(`<root a="1" b="2">hi</root>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := json.Marshal(doc.ToJSON())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got := string(data)
	want := `{"type":"Document","children":[{"type":"Element","name":"root","attributes":{"a":"1","b":"2"},"children":[{"type":"Text","text":"hi"}],"isRootNode":true}]}`
	if got != want {
		t.Fatalf("ToJSON =\n%s\nwant\n%s", got, want)
	}
}

func TestAttrJSONPreservesInsertionOrderNotAlphabetical(t *testing.T) {
	doc, err := Parse(`<root z="1" a="2" m="3"/>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := json.Marshal(doc.ToJSON())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `"attributes":{"z":"1","a":"2","m":"3"}`
	if !strings.Contains(string(data), want) {
		t.Fatalf("expected attribute order z,a,m to survive marshaling; got %s", data)
	}
}
