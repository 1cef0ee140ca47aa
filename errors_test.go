package xmltree

import (
	"strings"
	"testing"
)

func TestBuildErrorLocatesPosError(t *testing.T) {
	src := "line one\nline two\nbad line"
	pos := position{pos: 19, line: 3, column: 1}
	err := buildError(src, newPosError(pos, errUnclosedTag))

	if err.Line != 3 || err.Column != 1 || err.Pos != 19 {
		t.Fatalf("err = %+v, want line 3 column 1 pos 19", err)
	}
	if !strings.Contains(err.Excerpt, "bad line") {
		t.Fatalf("excerpt = %q, want it to contain the offending line", err.Excerpt)
	}
	if !strings.Contains(err.Excerpt, "^") {
		t.Fatalf("excerpt = %q, want a caret", err.Excerpt)
	}
}

func TestBuildErrorPlainError(t *testing.T) {
	err := buildError("source", errMissingRootElement)
	if err.Line != 0 || err.Column != 0 {
		t.Fatalf("err = %+v, want zero-valued location for an unpositioned error", err)
	}
	if err.Message != errMissingRootElement.Error() {
		t.Fatalf("err.Message = %q, want %q", err.Message, errMissingRootElement.Error())
	}
}

func TestExcerptTruncatesLongLines(t *testing.T) {
	longLine := strings.Repeat("x", 200)
	src := longLine
	caretCol := 150
	got := excerpt(src, caretCol-1, 1, caretCol)
	lines := strings.SplitN(got, "\n", 2)
	if !strings.HasPrefix(lines[0], "...") {
		t.Fatalf("expected a leading ellipsis, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "...") {
		t.Fatalf("expected a trailing ellipsis, got %q", lines[0])
	}
}

func TestExcerptShortLineNoTruncation(t *testing.T) {
	src := "short line"
	got := excerpt(src, 2, 1, 3)
	lines := strings.SplitN(got, "\n", 2)
	if lines[0] != src {
		t.Fatalf("excerpt first line = %q, want %q unmodified", lines[0], src)
	}
}
