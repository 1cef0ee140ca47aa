package xmltree

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel well-formedness errors, grouped by the taxonomy in the design:
// lexical, structural, attribute, reference, and declaration errors. Each is
// wrapped with location context by newPosError at the point of detection and
// translated into the public *Error at the Parse boundary.
var (
	errInvalidCharacter          = errors.New("invalid character")
	errInvalidEncoding           = errors.New("invalid UTF-8 encoding")
	errUnexpectedToken           = errors.New("unexpected token")
	errUnclosedTag               = errors.New("unclosed tag")
	errMultipleRootElements      = errors.New("multiple root elements")
	errMissingRootElement        = errors.New("missing root element")
	errUnclosedComment           = errors.New("unclosed comment")
	errUnclosedCDATA             = errors.New("unclosed CDATA section")
	errUnclosedPI                = errors.New("unclosed processing instruction")
	errDuplicateAttribute        = errors.New("duplicate attribute")
	errUnquotedAttributeValue    = errors.New("unquoted attribute value")
	errInvalidCharInAttribute    = errors.New("'<' is not allowed in attribute values")
	errMalformedReference        = errors.New("malformed entity or character reference")
	errUndefinedEntity           = errors.New("undefined entity")
	errInvalidCharacterReference = errors.New("invalid character reference")
	errInvalidXMLDeclaration     = errors.New("invalid XML declaration")
	errUnsupportedEncoding       = errors.New("unsupported encoding")
	errInvalidPITarget           = errors.New("processing instruction target must not be 'xml'")
	errInvalidCommentContent     = errors.New("comment must not contain '--' or end in '-'")
	errStrayCDataClose           = errors.New("']]>' is not allowed in content outside a CDATA section")
)

// posError pairs a sentinel error with the position of its first offending
// code point. It is carried internally as a plain error value and only
// translated into the public, located *Error at the Parse boundary.
type posError struct {
	pos position
	err error
}

func (e *posError) Error() string { return e.err.Error() }
func (e *posError) Unwrap() error { return e.err }

func newPosError(pos position, err error) error {
	return &posError{pos: pos, err: err}
}

// Error is the diagnostic Parse returns when input is not well-formed. It
// carries everything needed to point a human at the exact failure: the
// 1-based line and column, the 0-based character position, a human message,
// and a bounded single-line excerpt with a caret under the column.
type Error struct {
	Message string
	Line    int
	Column  int
	Pos     int
	Excerpt string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (line %d, column %d)\n%s", e.Message, e.Line, e.Column, e.Excerpt)
}

// buildError translates an internal error (a *posError if one was raised
// during scanning/parsing, or a plain error for failures detected without a
// specific position) into the public, located *Error.
func buildError(src string, err error) *Error {
	var pe *posError
	if !errors.As(err, &pe) {
		return &Error{Message: err.Error()}
	}
	line, column, pos := pe.pos.line, pe.pos.column, pe.pos.pos
	return &Error{
		Message: pe.err.Error(),
		Line:    line,
		Column:  column,
		Pos:     utf8.RuneCountInString(src[:min(pos, len(src))]),
		Excerpt: excerpt(src, pos, line, column),
	}
}

const excerptFullLineMax = 80
const excerptHalfWindow = 40

// excerpt renders the offending source line bounded to a deterministic
// window, plus a caret line pointing at column: the full line if it fits
// within 80 characters, else 40 characters to either side of the caret with
// ellipses where truncated.
func excerpt(src string, pos, line, column int) string {
	lineText, lineStart := sourceLine(src, pos, line)
	if len(lineText) <= excerptFullLineMax {
		caret := strings.Repeat(" ", column-1) + "^"
		return lineText + "\n" + caret
	}

	caretOffset := pos - lineStart // 0-based rune-ish offset within the line (byte offset is adequate for ASCII-dominant XML)
	start := caretOffset - excerptHalfWindow
	leadingEllipsis := start > 0
	if start < 0 {
		start = 0
	}
	end := caretOffset + excerptHalfWindow
	trailingEllipsis := end < len(lineText)
	if end > len(lineText) {
		end = len(lineText)
	}
	window := lineText[start:end]
	caretPos := caretOffset - start

	var sb strings.Builder
	if leadingEllipsis {
		sb.WriteString("...")
		caretPos += 3
	}
	sb.WriteString(window)
	if trailingEllipsis {
		sb.WriteString("...")
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", caretPos))
	sb.WriteByte('^')
	return sb.String()
}

// sourceLine returns the full text of the line containing byte offset pos
// and the byte offset at which that line starts. The line-number argument is
// not used.
func sourceLine(src string, pos, _ int) (string, int) {
	start := strings.LastIndexByte(src[:min(pos, len(src))], '\n')
	start++ // -1 becomes 0 when absent
	end := strings.IndexByte(src[pos:], '\n')
	if end < 0 {
		return src[start:], start
	}
	return src[start : pos+end], start
}
