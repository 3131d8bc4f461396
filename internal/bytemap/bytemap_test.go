package bytemap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/bytemap"
)

func TestToIndexASCII(t *testing.T) {
	m := bytemap.New("hello")
	for i := 0; i <= 5; i++ {
		require.Equal(t, i, m.ToIndex(i))
		require.True(t, m.IsBoundary(i))
	}
}

func TestToIndexClampsEndpoints(t *testing.T) {
	m := bytemap.New("abc")
	require.Equal(t, 0, m.ToIndex(-7))
	require.Equal(t, 3, m.ToIndex(3))
	require.Equal(t, 3, m.ToIndex(99))
}

func TestToIndexMultiByte(t *testing.T) {
	// "café" is 5 bytes: c(0) a(1) f(2) é(3,4)
	m := bytemap.New("café")
	require.Equal(t, 3, m.ToIndex(3))
	require.Equal(t, 3, m.ToIndex(4), "mid-rune offset snaps to the rune start")
	require.False(t, m.IsBoundary(4))
	require.Equal(t, 5, m.ToIndex(5))
}

func TestToCodeUnitsBMP(t *testing.T) {
	// Each of the three runes is one UTF-16 code unit regardless of its
	// UTF-8 width.
	m := bytemap.New("aéz")
	require.Equal(t, 0, m.ToCodeUnits(0))
	require.Equal(t, 1, m.ToCodeUnits(1))
	require.Equal(t, 2, m.ToCodeUnits(3))
	require.Equal(t, 3, m.ToCodeUnits(4))
}

func TestToCodeUnitsSupplementary(t *testing.T) {
	// "😀" is 4 UTF-8 bytes but 2 UTF-16 code units.
	m := bytemap.New("a😀b")
	require.Equal(t, 1, m.ToCodeUnits(1))
	require.Equal(t, 3, m.ToCodeUnits(5))
	require.Equal(t, 4, m.ToCodeUnits(6))
}

func TestEmptySource(t *testing.T) {
	m := bytemap.New("")
	require.Equal(t, 0, m.ToIndex(0))
	require.Equal(t, 0, m.ToIndex(10))
	require.True(t, m.IsBoundary(0))
}
