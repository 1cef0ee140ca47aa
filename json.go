package xmltree

import (
	"bytes"
	"encoding/json"
)

func marshalJSONString(s string) ([]byte, error) {
	return json.Marshal(s)
}

// JSON projection: a deep, parent-link-omitting, key-ordered view of a
// parsed tree. Each node type marshals its own "type" field first, followed
// by its type-specific fields in a stable order — the declaration order of
// the struct fields below, which encoding/json always honors for structs
// (unlike map keys, which it sorts alphabetically; attribute order is
// preserved instead through attrJSON's custom MarshalJSON).

type documentJSON struct {
	Type     string `json:"type"`
	Children []any  `json:"children"`
}

type elementJSON struct {
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Attributes attrJSON `json:"attributes"`
	Children   []any    `json:"children"`
	IsRootNode bool     `json:"isRootNode"`
}

type textJSON struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type cdataJSON struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type commentJSON struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type piJSON struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// attrJSON marshals an AttrList as a JSON object with keys emitted in
// insertion order, since encoding/json's map support would otherwise sort
// them and silently break the tree's insertion-order invariant.
type attrJSON AttrList

func (a attrJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < len(a.names); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshalJSONString(a.names[i])
		if err != nil {
			return nil, err
		}
		value, err := marshalJSONString(a.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Document) toJSON() any {
	children := make([]any, 0, len(d.Children))
	for _, c := range d.Children {
		children = append(children, c.toJSON())
	}
	return documentJSON{Type: "Document", Children: children}
}

func (e *Element) toJSON() any {
	children := make([]any, 0, len(e.Children))
	for _, c := range e.Children {
		children = append(children, c.toJSON())
	}
	return elementJSON{
		Type:       "Element",
		Name:       e.Name,
		Attributes: attrJSON(e.Attrs),
		Children:   children,
		IsRootNode: e.IsRootNode,
	}
}

func (t *Text) toJSON() any {
	return textJSON{Type: "Text", Text: t.Value}
}

func (c *CDATA) toJSON() any {
	return cdataJSON{Type: "CDATA", Text: c.Value}
}

func (c *Comment) toJSON() any {
	return commentJSON{Type: "Comment", Content: c.Content}
}

func (p *ProcessingInstruction) toJSON() any {
	return piJSON{Type: "ProcessingInstruction", Name: p.Name, Content: p.Content}
}

// ToJSON returns a plain-data projection of the document suitable for
// json.Marshal. Parent back-references are omitted; node kinds are
// distinguished by their "type" field.
func (d *Document) ToJSON() any { return d.toJSON() }
