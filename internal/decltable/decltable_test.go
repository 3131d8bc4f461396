package decltable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
	"github.com/nullstack-dev/useclient-transform/internal/decltable"
)

func build(t *testing.T, source string) *decltable.Table {
	t.Helper()
	tree, _, err := clientparser.Parse("/a/b.tsx", source)
	require.NoError(t, err)
	return decltable.Build(tree.Symbols, source, clientparser.TopLevelStmts(tree))
}

func TestBuildFunctionDeclaration(t *testing.T) {
	table := build(t, "function helper(a) { return a + dep; }\n")
	entry, ok := table.Lookup("helper")
	require.True(t, ok)
	require.Contains(t, entry.Declared, "helper")
	require.Contains(t, entry.Deps, "dep")
	require.NotContains(t, entry.Deps, "helper")
}

func TestBuildDestructuredConst(t *testing.T) {
	table := build(t, "const { a, b } = source;\n")
	entryA, ok := table.Lookup("a")
	require.True(t, ok)
	entryB, ok := table.Lookup("b")
	require.True(t, ok)
	require.Same(t, entryA, entryB)
	require.Contains(t, entryA.Declared, "a")
	require.Contains(t, entryA.Declared, "b")
	require.Contains(t, entryA.Deps, "source")
}

func TestBuildExportedDeclaration(t *testing.T) {
	table := build(t, "export const label = 1;\n")
	entry, ok := table.Lookup("label")
	require.True(t, ok)
	require.Contains(t, entry.Text, "const label = 1")
}

func TestBuildSelfReferencingFunctionExcludesOwnName(t *testing.T) {
	table := build(t, "function fact(n) { return n <= 1 ? 1 : n * fact(n - 1); }\n")
	entry, ok := table.Lookup("fact")
	require.True(t, ok)
	require.NotContains(t, entry.Deps, "fact")
}
