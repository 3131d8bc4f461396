package spanutil

import (
	"strings"
	"testing"
)

func TestTrimForReplacementConsumesSemicolon(t *testing.T) {
	text := "const h = x;\nconst next = 1;"
	start := strings.Index(text, "x")
	r := Range{Start: start, End: start + 1}
	got := TrimForReplacement(text, r)
	if text[got.End] != '\n' {
		t.Fatalf("expected trim to stop right before the newline, got End=%d (%q)", got.End, text[got.End:])
	}
}

func TestTrimForReplacementNeverEatsNewline(t *testing.T) {
	text := "x;\n  next();"
	r := Range{Start: 0, End: 1}
	got := TrimForReplacement(text, r)
	if got.End != 2 {
		t.Fatalf("expected End=2 (just past the semicolon), got %d", got.End)
	}
}

func TestWidenForParensWidensCollapsedSpan(t *testing.T) {
	// The quirk being corrected reports a zero-width span pointing at the
	// ')' right after its own '('.
	text := "wrap()"
	start := strings.Index(text, ")")
	r := Range{Start: start, End: start}
	got := WidenForParens(text, r)
	if got.Start != start-1 {
		t.Fatalf("expected widen to consume the preceding '(', got Start=%d", got.Start)
	}
}

func TestWidenForParensLeavesParenthesizedHandlerAlone(t *testing.T) {
	// An ordinary paren-wrapped arrow keeps its wrapping parens: they stay
	// valid around whatever replaces the inner expression.
	text := "const h = (() => {});"
	start := strings.Index(text, "() => {}")
	r := Range{Start: start, End: start + len("() => {}")}
	got := WidenForParens(text, r)
	if got.Start != r.Start {
		t.Fatalf("expected no widening, got Start=%d", got.Start)
	}
}

func TestWidenForParensLeavesUnrelatedParenAlone(t *testing.T) {
	text := "fn(() => {}, extra)"
	start := strings.Index(text, "() => {}")
	r := Range{Start: start, End: start + len("() => {}")}
	got := WidenForParens(text, r)
	if got.Start != r.Start {
		t.Fatalf("expected no widening, got Start=%d", got.Start)
	}
}

func TestBaseOffsetCorrectionSkipsBOMAndShebang(t *testing.T) {
	text := "\xEF\xBB\xBF#!/usr/bin/env node\nconst x = 1;"
	got := BaseOffsetCorrection(text)
	want := len("\xEF\xBB\xBF#!/usr/bin/env node\n")
	if got != want {
		t.Fatalf("BaseOffsetCorrection = %d, want %d", got, want)
	}
}
