// Package bytemap maps parser-reported byte offsets onto splice-safe
// positions in the source text. Parser spans are byte offsets into UTF-8
// text, and a splice point must never land inside a multi-byte rune or the
// rewritten source stops being valid UTF-8. The table is computed once per
// source and shared by every span in a module.
package bytemap

import "sort"

// Mapper is a precomputed rune-boundary table for one source text. The two
// parallel slices record the byte offset of every rune start together with
// the cumulative UTF-16 code-unit index at that rune, advancing by one code
// unit for BMP characters and two for supplementary characters.
type Mapper struct {
	byteOffsets []int32
	unitIndexes []int32
}

func New(text string) *Mapper {
	m := &Mapper{
		byteOffsets: make([]int32, 0, len(text)+1),
		unitIndexes: make([]int32, 0, len(text)+1),
	}
	units := int32(0)
	for i, r := range text {
		m.byteOffsets = append(m.byteOffsets, int32(i))
		m.unitIndexes = append(m.unitIndexes, units)
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	m.byteOffsets = append(m.byteOffsets, int32(len(text)))
	m.unitIndexes = append(m.unitIndexes, units)
	return m
}

// search returns the index of the last boundary at or before byteOffset.
func (m *Mapper) search(byteOffset int) int {
	i := sort.Search(len(m.byteOffsets), func(i int) bool {
		return m.byteOffsets[i] > int32(byteOffset)
	})
	return i - 1
}

// ToIndex returns the nearest splice-safe byte index for a parser-reported
// byte offset: the offset itself when it falls on a rune boundary, otherwise
// the start of the rune containing it. Offsets outside the text clamp to its
// endpoints.
func (m *Mapper) ToIndex(byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	last := len(m.byteOffsets) - 1
	if byteOffset >= int(m.byteOffsets[last]) {
		return int(m.byteOffsets[last])
	}
	return int(m.byteOffsets[m.search(byteOffset)])
}

// IsBoundary reports whether byteOffset is a position the source can be
// spliced at without splitting a rune.
func (m *Mapper) IsBoundary(byteOffset int) bool {
	return m.ToIndex(byteOffset) == byteOffset
}

// ToCodeUnits returns the UTF-16 code-unit index of the rune containing
// byteOffset, which is how editors and source maps count columns. Offsets
// outside the text clamp to its endpoints.
func (m *Mapper) ToCodeUnits(byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	last := len(m.byteOffsets) - 1
	if byteOffset >= int(m.byteOffsets[last]) {
		return int(m.unitIndexes[last])
	}
	return int(m.unitIndexes[m.search(byteOffset)])
}
