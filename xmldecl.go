package xmltree

// parseXMLDecl parses the optional "<?xml ... ?>" declaration, which — unlike
// an ordinary processing instruction — has a fixed pseudo-attribute grammar:
// VersionInfo, then optional EncodingDecl, then optional SDDecl, each
// appearing at most once and in that order. It is only ever attempted at
// offset 0 of the document, before any other construct.
func (p *parser) parseXMLDecl() error {
	start := p.s.snapshot()
	if !p.s.match("<?xml") {
		return nil
	}
	if !p.consumeRequiredS() {
		return newPosError(p.s.snapshot(), errInvalidXMLDeclaration)
	}

	seenVersion, seenEncoding, seenStandalone := false, false, false
	for {
		p.skipS()
		if p.s.lookingAt("?>") {
			break
		}
		name, err := p.parseDeclName()
		if err != nil {
			return err
		}
		p.skipS()
		if !p.s.match("=") {
			return newPosError(p.s.snapshot(), errInvalidXMLDeclaration)
		}
		p.skipS()
		value, err := p.parseDeclValue()
		if err != nil {
			return err
		}
		switch name {
		case "version":
			if seenVersion || seenEncoding || seenStandalone {
				return newPosError(start, errInvalidXMLDeclaration)
			}
			if !isXMLVersion(value) {
				return newPosError(start, errInvalidXMLDeclaration)
			}
			seenVersion = true
		case "encoding":
			if !seenVersion || seenEncoding || seenStandalone {
				return newPosError(start, errInvalidXMLDeclaration)
			}
			if !isSupportedEncoding(value) {
				return newPosError(start, errUnsupportedEncoding)
			}
			seenEncoding = true
		case "standalone":
			if !seenVersion || seenStandalone {
				return newPosError(start, errInvalidXMLDeclaration)
			}
			if value != "yes" && value != "no" {
				return newPosError(start, errInvalidXMLDeclaration)
			}
			seenStandalone = true
		default:
			return newPosError(start, errInvalidXMLDeclaration)
		}
	}
	if !seenVersion {
		return newPosError(start, errInvalidXMLDeclaration)
	}
	if !p.s.match("?>") {
		return newPosError(p.s.snapshot(), errInvalidXMLDeclaration)
	}
	return nil
}

func (p *parser) parseDeclName() (string, error) {
	pos := p.s.snapshot()
	name := p.s.consumeWhile(func(r rune) bool { return isNameChar(r) })
	if name == "" {
		return "", newPosError(pos, errInvalidXMLDeclaration)
	}
	return name, nil
}

// parseDeclValue parses a single-or-double-quoted pseudo-attribute value with
// no entity or character reference processing: XMLDecl pseudo-attributes are
// plain restricted literals, not AttValue.
func (p *parser) parseDeclValue() (string, error) {
	pos := p.s.snapshot()
	quoteByte, ok := p.s.peekByte()
	if !ok || (quoteByte != '\'' && quoteByte != '"') {
		return "", newPosError(pos, errInvalidXMLDeclaration)
	}
	quote := string(quoteByte)
	p.s.consume()
	value, found := p.s.scanUntil(quote)
	if !found {
		return "", newPosError(pos, errInvalidXMLDeclaration)
	}
	p.s.consume()
	return value, nil
}

// isXMLVersion reports whether value matches VersionNum ::= '1.' [0-9]+.
func isXMLVersion(value string) bool {
	const prefix = "1."
	if len(value) <= len(prefix) || value[:len(prefix)] != prefix {
		return false
	}
	for _, c := range value[len(prefix):] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isSupportedEncoding reports whether value names UTF-8, the only encoding
// this parser accepts (the module takes a decoded Go string, so any
// conversion from another declared encoding must happen upstream of Parse).
func isSupportedEncoding(value string) bool {
	switch {
	case equalFold(value, "utf-8"), equalFold(value, "utf8"):
		return true
	default:
		return false
	}
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
