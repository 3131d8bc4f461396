package logger

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

// ImportAttributes is a compact, comparable encoding of the key/value
// attributes on an import statement's "with" clause. Values are packed into
// a single string so instances are usable as map keys.
type ImportAttributes struct {
	packedData string
}

func EncodeImportAttributes(value map[string]string) ImportAttributes {
	if len(value) == 0 {
		return ImportAttributes{}
	}
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		kJSON, _ := json.Marshal(k)
		sb.Write(kJSON)
		sb.WriteByte(':')
		vJSON, _ := json.Marshal(value[k])
		sb.Write(vJSON)
	}
	return ImportAttributes{packedData: sb.String()}
}

func (attrs ImportAttributes) DecodeIntoMap() (result map[string]string) {
	if attrs.packedData != "" {
		json.Unmarshal([]byte("{"+attrs.packedData+"}"), &result)
	}
	return
}

// A StringInJSTableEntry maps one position inside a string literal's decoded
// contents back to the position of the raw source text that encodes it.
type StringInJSTableEntry struct {
	innerLoc    Loc
	outerLoc    Loc
	innerLine   int32
	innerColumn int32
}

// GenerateStringInJSTable builds a table mapping offsets within a string
// literal's decoded contents back to offsets within the JavaScript source
// containing the literal, so messages produced while parsing the decoded
// contents (e.g. as JSON) can point at the original source text.
func GenerateStringInJSTable(outerContents string, outerStringLiteralLoc Loc, innerContents string) (table []StringInJSTableEntry) {
	line := int32(1)
	column := int32(0)
	inner := int32(0)
	outer := outerStringLiteralLoc.Start + 1 // Skip the opening quote

	for inner < int32(len(innerContents)) {
		// Line continuations contribute no decoded contents
		for outer+1 < int32(len(outerContents)) && outerContents[outer] == '\\' {
			c, width := utf8.DecodeRuneInString(outerContents[outer+1:])
			if c != '\n' && c != '\r' && c != '\u2028' && c != '\u2029' {
				break
			}
			outer += 1 + int32(width)
			if c == '\r' && outer < int32(len(outerContents)) && outerContents[outer] == '\n' {
				outer++
			}
		}

		table = append(table, StringInJSTableEntry{
			innerLoc:    Loc{Start: inner},
			outerLoc:    Loc{Start: outer},
			innerLine:   line,
			innerColumn: column,
		})

		r, width := utf8.DecodeRuneInString(innerContents[inner:])
		inner += int32(width)
		if r == '\n' {
			line++
			column = 0
		} else {
			column += int32(width)
		}
		outer += widthOfEncodedRune(outerContents, outer, r)
	}

	table = append(table, StringInJSTableEntry{
		innerLoc:    Loc{Start: inner},
		outerLoc:    Loc{Start: outer},
		innerLine:   line,
		innerColumn: column,
	})
	return
}

// widthOfEncodedRune measures how many bytes of the raw literal encode the
// rune decoded at this position: either the rune itself or one of the escape
// sequences for it.
func widthOfEncodedRune(outerContents string, outer int32, r rune) int32 {
	if outer >= int32(len(outerContents)) || outerContents[outer] != '\\' {
		return int32(utf8.RuneLen(r))
	}
	if outer+1 >= int32(len(outerContents)) {
		return 1
	}
	switch outerContents[outer+1] {
	case 'x':
		return 4 // "\xFF"
	case 'u':
		if outer+2 < int32(len(outerContents)) && outerContents[outer+2] == '{' {
			if end := strings.IndexByte(outerContents[outer:], '}'); end >= 0 {
				return int32(end) + 1 // "\u{10000}"
			}
		}
		if r > 0xFFFF {
			return 12 // A surrogate pair such as "\uD800\uDC00"
		}
		return 6 // "\0"
	default:
		// A single-character escape such as "\n" or "\\"
		_, width := utf8.DecodeRuneInString(outerContents[outer+1:])
		return 1 + int32(width)
	}
}

// RemapStringInJSLoc translates a location within the decoded contents back
// to a location within the JavaScript source using a table generated by
// GenerateStringInJSTable.
func RemapStringInJSLoc(table []StringInJSTableEntry, innerLoc Loc) Loc {
	count := len(table)
	if count == 0 {
		return innerLoc
	}
	i := sort.Search(count, func(i int) bool {
		return table[i].innerLoc.Start > innerLoc.Start
	})
	if i > 0 {
		i--
	}
	entry := table[i]
	return Loc{Start: entry.outerLoc.Start + (innerLoc.Start - entry.innerLoc.Start)}
}

// NewStringInJSLog wraps a log so that locations in messages added to it are
// remapped from the decoded string contents back to the outer source.
func NewStringInJSLog(log Log, outerTracker *LineColumnTracker, table []StringInJSTableEntry) Log {
	remap := func(data MsgData) MsgData {
		if data.Location == nil || len(table) == 0 {
			return data
		}
		line := int32(data.Location.Line)
		column := int32(data.Location.Column)
		entry := table[len(table)-1]
		for _, it := range table {
			if it.innerLine > line || (it.innerLine == line && it.innerColumn >= column) {
				entry = it
				break
			}
		}
		newData := outerTracker.MsgData(Range{Loc: entry.outerLoc}, data.Text)
		if newData.Location != nil {
			newData.Location.Suggestion = data.Location.Suggestion
		}
		newData.UserDetail = data.UserDetail
		return newData
	}

	return Log{
		Level:     log.Level,
		Overrides: log.Overrides,

		AddMsg: func(msg Msg) {
			msg.Data = remap(msg.Data)
			for i, note := range msg.Notes {
				msg.Notes[i] = remap(note)
			}
			log.AddMsg(msg)
		},
		HasErrors:  log.HasErrors,
		AlmostDone: log.AlmostDone,
		Done:       log.Done,
	}
}
