package xmltree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// parser drives a scanner and resolver through the XML 1.0 document grammar,
// building an owning in-memory tree. Every production method either returns
// a fully built value/node or a located *posError — there is no partial or
// speculative tree mutation once a production commits.
type parser struct {
	s    *scanner
	res  *resolver
	opts config
}

// Parse parses a complete XML 1.0 document held entirely in memory and
// returns its tree, or a located *Error describing the first
// well-formedness violation encountered. input is assumed to already be
// decoded UTF-8 text; a single leading byte-order mark is stripped before
// scanning.
func Parse(input string, opts ...Option) (*Document, error) {
	input = strings.TrimPrefix(input, "\uFEFF")
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			pos := advancePosition(position{line: 1, column: 1}, input[:i])
			return nil, buildError(input, newPosError(pos, errInvalidEncoding))
		}
		i += size
	}
	cfg := applyOptions(opts)
	p := &parser{
		s:    newScanner(input),
		res:  &resolver{ignoreUndefined: cfg.ignoreUndefinedEntities, resolveUndefined: cfg.resolveUndefinedEntity},
		opts: cfg,
	}
	doc, err := p.parseDocument()
	if err != nil {
		return nil, buildError(input, err)
	}
	return doc, nil
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}
	sink := &childSink{children: &doc.Children, parent: doc, preserveCDATA: p.opts.preserveCDATA}

	if err := p.parseXMLDecl(); err != nil {
		return nil, err
	}
	if err := p.parseMisc(sink); err != nil {
		return nil, err
	}
	if p.s.lookingAt("<!DOCTYPE") {
		if err := p.parseDoctype(); err != nil {
			return nil, err
		}
		if err := p.parseMisc(sink); err != nil {
			return nil, err
		}
	}

	if !p.s.lookingAt("<") || p.s.lookingAt("</") {
		return nil, newPosError(p.s.snapshot(), errMissingRootElement)
	}
	root, err := p.parseElement(sink)
	if err != nil {
		return nil, err
	}
	root.IsRootNode = true
	doc.Root = root

	if err := p.parseMisc(sink); err != nil {
		return nil, err
	}
	if !p.s.atEOF() {
		return nil, newPosError(p.s.snapshot(), errMultipleRootElements)
	}
	return doc, nil
}

// parseMisc consumes the Misc* run permitted between/around the prolog and
// the single root element: whitespace, comments, and processing
// instructions, in any order and quantity.
func (p *parser) parseMisc(sink *childSink) error {
	for {
		p.skipS()
		switch {
		case p.s.lookingAt("<!--"):
			comment, err := p.parseComment()
			if err != nil {
				return err
			}
			if p.opts.preserveComments {
				sink.appendNode(comment)
			}
		case p.s.lookingAt("<?"):
			pi, err := p.parsePI()
			if err != nil {
				return err
			}
			sink.appendNode(pi)
		default:
			return nil
		}
	}
}

// parseDoctype skips a "<!DOCTYPE ... >" declaration without interpreting
// it: this parser has no DTD semantics (no external entity resolution, no
// default attribute values, no content-model validation), so the internal
// subset is only scanned far enough to find its balanced close, tracking
// bracket and quote nesting to stay correct across literals like
// `<!ENTITY foo "]>">`.
func (p *parser) parseDoctype() error {
	start := p.s.snapshot()
	p.s.match("<!DOCTYPE")
	depth := 0
	var quote byte
	for {
		b, ok := p.s.peekByte()
		if !ok {
			return newPosError(start, errUnclosedTag)
		}
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			p.s.consume()
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
			p.s.consume()
		case '[':
			depth++
			p.s.consume()
		case ']':
			depth--
			p.s.consume()
		case '>':
			p.s.consume()
			if depth <= 0 {
				return nil
			}
		default:
			p.s.consume()
		}
	}
}

// parseElement parses a start tag, its attributes, and either an empty-
// element close or a content run terminated by a matching end tag.
func (p *parser) parseElement(parentSink *childSink) (*Element, error) {
	startPos := p.s.snapshot()
	if !p.s.match("<") {
		return nil, newPosError(startPos, errUnexpectedToken)
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	el := &Element{Name: name}
	for {
		sBefore := p.s.snapshot()
		hadSpace := p.skipS()
		if p.s.lookingAt("/>") || p.s.lookingAt(">") {
			break
		}
		if !hadSpace {
			return nil, newPosError(sBefore, errUnexpectedToken)
		}
		attrPos := p.s.snapshot()
		attrName, attrValue, ok, err := p.tryParseAttribute()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !el.Attrs.add(attrName, attrValue) {
			return nil, newPosError(attrPos, errDuplicateAttribute)
		}
	}

	if p.s.match("/>") {
		parentSink.appendNode(el)
		return el, nil
	}
	if !p.s.match(">") {
		return nil, newPosError(p.s.snapshot(), errUnclosedTag)
	}
	parentSink.appendNode(el)

	childSinkForEl := &childSink{children: &el.Children, parent: el, preserveCDATA: p.opts.preserveCDATA}
	if err := p.parseContent(childSinkForEl); err != nil {
		return nil, err
	}

	endPos := p.s.snapshot()
	if !p.s.match("</") {
		return nil, newPosError(endPos, errUnclosedTag)
	}
	endName, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if endName != name {
		return nil, newPosError(endPos, fmt.Errorf("Missing end tag for element %s", name))
	}
	p.skipS()
	if !p.s.match(">") {
		return nil, newPosError(p.s.snapshot(), errUnclosedTag)
	}
	return el, nil
}

// parseContent parses the body of an element: character data, child
// elements, references, CDATA sections, comments, and processing
// instructions, in any mixture and order, stopping at the first end tag.
func (p *parser) parseContent(sink *childSink) error {
	for {
		if p.s.atEOF() {
			return newPosError(p.s.snapshot(), errUnclosedTag)
		}
		switch {
		case p.s.lookingAt("</"):
			return nil
		case p.s.lookingAt("<![CDATA["):
			text, err := p.parseCDATA()
			if err != nil {
				return err
			}
			sink.appendText(text, true)
		case p.s.lookingAt("<!--"):
			comment, err := p.parseComment()
			if err != nil {
				return err
			}
			if p.opts.preserveComments {
				sink.appendNode(comment)
			}
		case p.s.lookingAt("<?"):
			pi, err := p.parsePI()
			if err != nil {
				return err
			}
			sink.appendNode(pi)
		case p.s.lookingAt("<"):
			if _, err := p.parseElement(sink); err != nil {
				return err
			}
		default:
			if err := p.parseCharData(sink); err != nil {
				return err
			}
		}
	}
}

// parseCharData consumes a maximal run of character data (including '&'
// references, but stopping before '<'), expands references and normalizes
// line endings via the resolver, and rejects a literal "]]>" as required by
// production [14] CharData.
func (p *parser) parseCharData(sink *childSink) error {
	start := p.s.snapshot()
	raw := p.s.consumeWhile(func(r rune) bool { return r != '<' })
	if idx := strings.Index(raw, "]]>"); idx >= 0 {
		return newPosError(advancePosition(start, raw[:idx]), errStrayCDataClose)
	}
	for i, r := range raw {
		if !isChar(r) {
			return newPosError(advancePosition(start, raw[:i]), errInvalidCharacter)
		}
	}
	text, err := p.res.expand(raw, start, refContextContent)
	if err != nil {
		return err
	}
	if text != "" {
		sink.appendText(text, false)
	}
	return nil
}

// tryParseAttribute attempts to parse one Name Eq AttValue pair. ok is false
// (with no error) when the upcoming tokens are not an attribute, signaling
// the caller that the attribute list has ended.
func (p *parser) tryParseAttribute() (name, value string, ok bool, err error) {
	pos := p.s.snapshot()
	r, peeked := p.s.peek(0)
	if !peeked || !isNameStartChar(r) {
		return "", "", false, nil
	}
	name, err = p.parseName()
	if err != nil {
		return "", "", false, err
	}
	p.skipS()
	if !p.s.match("=") {
		return "", "", false, newPosError(pos, errUnexpectedToken)
	}
	p.skipS()
	value, err = p.parseAttValue()
	if err != nil {
		return "", "", false, err
	}
	return name, value, true, nil
}

// parseAttValue parses a single- or double-quoted attribute value, expanding
// references and normalizing whitespace and line endings through the
// resolver (refContextAttribute).
func (p *parser) parseAttValue() (string, error) {
	pos := p.s.snapshot()
	quoteByte, ok := p.s.peekByte()
	if !ok || (quoteByte != '\'' && quoteByte != '"') {
		return "", newPosError(pos, errUnquotedAttributeValue)
	}
	quote := string(quoteByte)
	p.s.consume()
	valuePos := p.s.snapshot()
	raw, found := p.s.scanUntil(quote)
	if !found {
		return "", newPosError(pos, errUnclosedTag)
	}
	p.s.consume()
	for i, r := range raw {
		if !isChar(r) {
			return "", newPosError(advancePosition(valuePos, raw[:i]), errInvalidCharacter)
		}
	}
	return p.res.expand(raw, valuePos, refContextAttribute)
}

// parseComment parses "<!--" ... "-->", rejecting "--" anywhere inside the
// content and a trailing "-" immediately before the close, per production
// [15].
func (p *parser) parseComment() (*Comment, error) {
	start := p.s.snapshot()
	p.s.match("<!--")
	contentPos := p.s.snapshot()
	content, found := p.s.scanUntil("-->")
	if !found {
		return nil, newPosError(start, errUnclosedComment)
	}
	p.s.match("-->")
	if idx := strings.Index(content, "--"); idx >= 0 {
		return nil, newPosError(advancePosition(contentPos, content[:idx]), errInvalidCommentContent)
	}
	if strings.HasSuffix(content, "-") {
		return nil, newPosError(advancePosition(contentPos, content[:len(content)-1]), errInvalidCommentContent)
	}
	for i, r := range content {
		if !isChar(r) {
			return nil, newPosError(advancePosition(contentPos, content[:i]), errInvalidCharacter)
		}
	}
	return &Comment{Content: content}, nil
}

// parsePI parses "<?" target (S content)? "?>". target must not equal "xml"
// case-insensitively: that spelling is reserved for the XML declaration,
// which is consumed separately and never reaches this production.
func (p *parser) parsePI() (*ProcessingInstruction, error) {
	start := p.s.snapshot()
	p.s.match("<?")
	targetPos := p.s.snapshot()
	target, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if equalFold(target, "xml") {
		return nil, newPosError(targetPos, errInvalidPITarget)
	}
	var content string
	if p.skipS() {
		contentPos := p.s.snapshot()
		text, found := p.s.scanUntil("?>")
		if !found {
			return nil, newPosError(start, errUnclosedPI)
		}
		for i, r := range text {
			if !isChar(r) {
				return nil, newPosError(advancePosition(contentPos, text[:i]), errInvalidCharacter)
			}
		}
		content = text
	} else if !p.s.lookingAt("?>") {
		return nil, newPosError(p.s.snapshot(), errUnclosedPI)
	}
	if !p.s.match("?>") {
		return nil, newPosError(start, errUnclosedPI)
	}
	return &ProcessingInstruction{Name: target, Content: content}, nil
}

// parseCDATA parses "<![CDATA[" ... "]]>" and returns its raw, unexpanded
// content: CDATA sections undergo no reference expansion, only inclusion as
// literal character data (production [18]-[21]).
func (p *parser) parseCDATA() (string, error) {
	start := p.s.snapshot()
	p.s.match("<![CDATA[")
	contentPos := p.s.snapshot()
	content, found := p.s.scanUntil("]]>")
	if !found {
		return "", newPosError(start, errUnclosedCDATA)
	}
	p.s.match("]]>")
	for i, r := range content {
		if !isChar(r) {
			return "", newPosError(advancePosition(contentPos, content[:i]), errInvalidCharacter)
		}
	}
	return content, nil
}

// parseName parses production [5] Name.
func (p *parser) parseName() (string, error) {
	pos := p.s.snapshot()
	r, ok := p.s.peek(0)
	if !ok || !isNameStartChar(r) {
		return "", newPosError(pos, errUnexpectedToken)
	}
	return p.s.consumeWhile(isNameChar), nil
}

// skipS consumes production [3] S (whitespace) and reports whether any was
// present.
func (p *parser) skipS() bool {
	consumed := false
	for {
		r, ok := p.s.peek(0)
		if !ok || !isWhitespace(r) {
			return consumed
		}
		p.s.consume()
		consumed = true
	}
}

// consumeRequiredS consumes at least one whitespace character, reporting
// false if none was present (used where the grammar mandates S, such as
// between "<?xml" and "version").
func (p *parser) consumeRequiredS() bool {
	return p.skipS()
}
