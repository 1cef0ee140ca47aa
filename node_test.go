package xmltree

import "testing"

func TestAttrListDuplicateRejected(t *testing.T) {
	var a AttrList
	if !a.add("id", "1") {
		t.Fatalf("first add should succeed")
	}
	if a.add("id", "2") {
		t.Fatalf("duplicate add should fail")
	}
	value, ok := a.Get("id")
	if !ok || value != "1" {
		t.Fatalf("Get(id) = %q, %v, want 1, true", value, ok)
	}
}

func TestAttrListPreservesInsertionOrder(t *testing.T) {
	var a AttrList
	a.add("b", "2")
	a.add("a", "1")
	a.add("c", "3")
	wantNames := []string{"b", "a", "c"}
	for i, want := range wantNames {
		name, _ := a.At(i)
		if name != want {
			t.Fatalf("At(%d) = %q, want %q", i, name, want)
		}
	}
}

func TestChildSinkCoalescesAdjacentText(t *testing.T) {
	var children []Node
	parent := &Element{Name: "root"}
	sink := &childSink{children: &children, parent: parent}

	sink.appendText("hello ", false)
	sink.appendText("world", false)

	if len(children) != 1 {
		t.Fatalf("len(children) = %d, want 1 (coalesced)", len(children))
	}
	text, ok := children[0].(*Text)
	if !ok || text.Value != "hello world" {
		t.Fatalf("children[0] = %#v, want Text{Value: %q}", children[0], "hello world")
	}
}

func TestChildSinkCDATABreaksCoalescenceWhenPreserved(t *testing.T) {
	var children []Node
	parent := &Element{Name: "root"}
	sink := &childSink{children: &children, parent: parent, preserveCDATA: true}

	sink.appendText("a", false)
	sink.appendText("b", true)
	sink.appendText("c", false)

	if len(children) != 3 {
		t.Fatalf("len(children) = %d, want 3 (Text, CDATA, Text kept distinct)", len(children))
	}
	if _, ok := children[1].(*CDATA); !ok {
		t.Fatalf("children[1] = %#v, want *CDATA", children[1])
	}
}

func TestChildSinkCDATAFoldedWhenNotPreserved(t *testing.T) {
	var children []Node
	parent := &Element{Name: "root"}
	sink := &childSink{children: &children, parent: parent, preserveCDATA: false}

	sink.appendText("a", false)
	sink.appendText("b", true)

	if len(children) != 1 {
		t.Fatalf("len(children) = %d, want 1 (folded into one Text)", len(children))
	}
	text := children[0].(*Text)
	if text.Value != "ab" {
		t.Fatalf("text.Value = %q, want %q", text.Value, "ab")
	}
}

func TestNodeKindString(t *testing.T) {
	if KindElement.String() != "Element" {
		t.Fatalf("KindElement.String() = %q, want Element", KindElement.String())
	}
}
