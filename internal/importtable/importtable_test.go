package importtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
	"github.com/nullstack-dev/useclient-transform/internal/importtable"
)

func build(t *testing.T, source string) (*importtable.Table, []importtable.SideEffectImport) {
	t.Helper()
	tree, _, err := clientparser.Parse("/a/b.tsx", source)
	require.NoError(t, err)
	return importtable.Build(tree.Symbols, source, clientparser.TopLevelStmts(tree))
}

func TestBuildDefaultImport(t *testing.T) {
	table, sideEffects := build(t, `import React from "react";`+"\n")
	require.Empty(t, sideEffects)
	entry, ok := table.Lookup("React")
	require.True(t, ok)
	require.Equal(t, importtable.Default, entry.Kind)
	require.Equal(t, `import React from "react";`, entry.Text)
}

func TestBuildNamedImport(t *testing.T) {
	table, _ := build(t, `import { submit, other as renamed } from "./c.ts";`+"\n")
	entry, ok := table.Lookup("submit")
	require.True(t, ok)
	require.Equal(t, importtable.Named, entry.Kind)

	renamed, ok := table.Lookup("renamed")
	require.True(t, ok)
	require.Equal(t, importtable.Named, renamed.Kind)
}

func TestBuildNamespaceImport(t *testing.T) {
	table, _ := build(t, `import * as utils from "./utils.ts";`+"\n")
	entry, ok := table.Lookup("utils")
	require.True(t, ok)
	require.Equal(t, importtable.Namespace, entry.Kind)
}

func TestBuildSideEffectImport(t *testing.T) {
	_, sideEffects := build(t, `import "./reset.css";`+"\n")
	require.Len(t, sideEffects, 1)
	require.Contains(t, sideEffects[0].Text, "./reset.css")
}

func TestBuildMissingNameNotFound(t *testing.T) {
	table, _ := build(t, `import React from "react";`+"\n")
	_, ok := table.Lookup("doesNotExist")
	require.False(t, ok)
}
