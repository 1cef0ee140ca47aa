package xmltree

// NodeKind identifies the syntactic kind of a tree node.
type NodeKind byte

const (
	KindDocument NodeKind = iota
	KindElement
	KindText
	KindCDATA
	KindComment
	KindProcessingInstruction
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindCDATA:
		return "CDATA"
	case KindComment:
		return "Comment"
	case KindProcessingInstruction:
		return "ProcessingInstruction"
	default:
		return "Unknown"
	}
}

// Node is the closed tagged union over the five node kinds a parsed document
// can contain, plus the Document node itself. The set is fixed by the XML
// grammar and closed by the unexported toJSON method, which every node kind
// implements and through which the JSON projection traverses the tree;
// Kind() reports which kind a node is.
type Node interface {
	Kind() NodeKind
	Parent() Node
	toJSON() any
}

// Document is the root of a parsed tree: an ordered sequence of Element,
// Comment, and ProcessingInstruction children, with exactly one Element
// child (the root). Whitespace outside the root element is skipped and not
// kept as Text.
type Document struct {
	Children []Node
	Root     *Element
}

func (d *Document) Kind() NodeKind { return KindDocument }
func (d *Document) Parent() Node   { return nil }

// AttrList is an order-preserving, duplicate-rejecting collection of
// attribute name/value pairs, backed by two parallel slices rather than a
// map so that iteration order matches insertion order.
type AttrList struct {
	names  []string
	values []string
}

// Len reports the number of attributes.
func (a *AttrList) Len() int { return len(a.names) }

// At returns the name/value pair at position i in insertion order.
func (a *AttrList) At(i int) (name, value string) { return a.names[i], a.values[i] }

// Get returns the value of name and whether it was present.
func (a *AttrList) Get(name string) (string, bool) {
	for i, n := range a.names {
		if n == name {
			return a.values[i], true
		}
	}
	return "", false
}

// Has reports whether name is present.
func (a *AttrList) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// add appends name/value, returning false if name is already present
// (duplicate attribute names within one element are a well-formedness
// error, enforced by the caller).
func (a *AttrList) add(name, value string) bool {
	if a.Has(name) {
		return false
	}
	a.names = append(a.names, name)
	a.values = append(a.values, value)
	return true
}

// Element is a start/end tag pair or an empty-element tag. Name retains any
// colon unsplit (namespace-awareness is out of scope). Attrs preserves
// insertion order with unique keys. IsRootNode is true only for the
// document's unique root.
type Element struct {
	Name       string
	Attrs      AttrList
	Children   []Node
	parent     Node
	IsRootNode bool
}

func (e *Element) Kind() NodeKind   { return KindElement }
func (e *Element) Parent() Node     { return e.parent }
func (e *Element) setParent(p Node) { e.parent = p }

// parentSetter is implemented by every node kind that carries a mutable
// parent back-reference, letting childSink assign it once in one place
// instead of every call site constructing the node having to remember to
// set it itself.
type parentSetter interface {
	setParent(Node)
}

// childSink accumulates children for either a *Document or an *Element,
// applying the text-coalescence invariant: adjacent plain Text children
// merge, and a CDATA section merges too unless PreserveCDATA breaks
// coalescence.
type childSink struct {
	children      *[]Node
	parent        Node
	preserveCDATA bool
}

// appendNode appends n to the sink's children and sets its parent
// back-reference to the sink's owning node.
func (s *childSink) appendNode(n Node) {
	if ps, ok := n.(parentSetter); ok {
		ps.setParent(s.parent)
	}
	*s.children = append(*s.children, n)
}

func (s *childSink) appendText(value string, isCDATA bool) {
	if isCDATA && s.preserveCDATA {
		s.appendNode(&CDATA{Value: value})
		return
	}
	if n := len(*s.children); n > 0 {
		if last, ok := (*s.children)[n-1].(*Text); ok {
			last.Value += value
			return
		}
	}
	s.appendNode(&Text{Value: value})
}

// Text is a run of character data. Adjacent Text nodes in the same
// element's children are coalesced into one by the tree builder.
type Text struct {
	Value  string
	parent Node
}

func (t *Text) Kind() NodeKind   { return KindText }
func (t *Text) Parent() Node     { return t.parent }
func (t *Text) setParent(p Node) { t.parent = p }

// CDATA is a CDATA section represented distinctly from Text, emitted only
// when the PreserveCDATA option is set; otherwise CDATA content is folded
// into an ordinary Text node and coalesced with its neighbors.
type CDATA struct {
	Value  string
	parent Node
}

func (c *CDATA) Kind() NodeKind   { return KindCDATA }
func (c *CDATA) Parent() Node     { return c.parent }
func (c *CDATA) setParent(p Node) { c.parent = p }

// Comment is a "<!-- ... -->" node. Content never contains "--" and never
// ends in "-", enforced by the grammar engine before the node is built.
type Comment struct {
	Content string
	parent  Node
}

func (c *Comment) Kind() NodeKind   { return KindComment }
func (c *Comment) Parent() Node     { return c.parent }
func (c *Comment) setParent(p Node) { c.parent = p }

// ProcessingInstruction is a "<?target content?>" node. Name (the target)
// must not equal "xml" case-insensitively — that position is reserved for
// the XML declaration, which is never emitted as a node.
type ProcessingInstruction struct {
	Name    string
	Content string
	parent  Node
}

func (p *ProcessingInstruction) Kind() NodeKind   { return KindProcessingInstruction }
func (p *ProcessingInstruction) Parent() Node     { return p.parent }
func (p *ProcessingInstruction) setParent(n Node) { p.parent = n }
