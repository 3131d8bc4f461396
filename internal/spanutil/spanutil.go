// Package spanutil turns parser-reported locations into source byte ranges
// ready for splicing: correcting for any offset the parser measures from,
// widening across redundant parentheses, and trimming trailing punctuation
// so a replacement leaves well-formed source behind.
package spanutil

import "strings"

// Range is a half-open byte range [Start, End) into a source text.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// BaseOffsetCorrection finds the byte offset of the first real token in
// text, skipping a UTF-8 BOM, a shebang line, whitespace, and line/block
// comments. Some parsers report every span relative to that first token
// rather than to byte zero; adding this value to such an offset recovers an
// absolute offset into text.
//
// The parser behind internal/clientparser already reports absolute offsets,
// so Transform does not call this function.
func BaseOffsetCorrection(text string) int {
	i := 0
	if strings.HasPrefix(text, "\uFEFF") {
		i += len("\uFEFF")
	}
	if strings.HasPrefix(text[i:], "#!") {
		if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
			i += nl + 1
		} else {
			i = len(text)
		}
	}
	for i < len(text) {
		switch {
		case text[i] == ' ' || text[i] == '\t' || text[i] == '\r' || text[i] == '\n':
			i++
		case strings.HasPrefix(text[i:], "//"):
			if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
				i += nl + 1
			} else {
				i = len(text)
			}
		case strings.HasPrefix(text[i:], "/*"):
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				i += 2 + end + 2
			} else {
				i = len(text)
			}
		default:
			return i
		}
	}
	return i
}

// WidenForParens corrects one specific parser quirk: a paren-wrapped
// expression whose reported span collapses to a zero-width point at the
// closing paren, sitting just after the matching opening paren. When the
// byte before start is '(' and the byte at start is ')', the start is
// widened by one so the stray paren doesn't survive the replacement. Any
// other arrangement is left untouched — in particular, an ordinary
// parenthesized handler keeps its wrapping parens, which remain valid
// around the replacement expression.
func WidenForParens(text string, r Range) Range {
	if r.Start > 0 && r.Start < len(text) && text[r.Start-1] == '(' && text[r.Start] == ')' {
		r.Start--
	}
	return r
}

// TrimForReplacement extends r.End across trailing whitespace, and if the
// next non-whitespace byte is a semicolon, consumes that too along with any
// further trailing whitespace. This keeps the rewritten source well-formed
// when the handler being replaced was a complete statement.
func TrimForReplacement(text string, r Range) Range {
	end := r.End
	end = skipTrailingSpace(text, end)
	if end < len(text) && text[end] == ';' {
		end++
		end = skipTrailingSpace(text, end)
	}
	r.End = end
	return r
}

// skipTrailingSpace only consumes same-line horizontal whitespace: eating a
// newline here would pull the next statement's own leading indentation into
// the replaced range.
func skipTrailingSpace(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}
