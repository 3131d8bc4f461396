package synth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
	"github.com/nullstack-dev/useclient-transform/internal/decltable"
	"github.com/nullstack-dev/useclient-transform/internal/handlerscan"
	"github.com/nullstack-dev/useclient-transform/internal/importtable"
	"github.com/nullstack-dev/useclient-transform/internal/synth"
)

func synthesize(t *testing.T, source string) synth.Result {
	t.Helper()
	tree, _, err := clientparser.Parse("/project/src/widget.tsx", source)
	require.NoError(t, err)
	stmts := clientparser.TopLevelStmts(tree)

	handlers := handlerscan.Scan(tree.Symbols, stmts)
	require.Len(t, handlers, 1)

	imports, sideEffects := importtable.Build(tree.Symbols, source, stmts)
	require.Empty(t, sideEffects)
	decls := decltable.Build(tree.Symbols, source, stmts)

	return synth.Synthesize(tree.Symbols, source, "abc123def456", "/project/src/widget.tsx", handlers[0], imports, decls)
}

func TestSynthesizeImportOnlyClosure(t *testing.T) {
	result := synthesize(t, `
		import { track } from "./analytics.ts";
		export const onClick = () => { "use client"; track("clicked"); };
	`)
	require.Contains(t, result.ImportNames, "track")
	require.Empty(t, result.Unresolved)
	require.Contains(t, result.Code, `import { track } from "./analytics.ts";`)
	require.Contains(t, result.Code, "export default")
}

func TestSynthesizeDeclOnlyClosure(t *testing.T) {
	result := synthesize(t, `
		function helper(x) { return x * 2; }
		export const onClick = () => { "use client"; return helper(1); };
	`)
	require.Contains(t, result.DeclNames, "helper")
	require.Empty(t, result.Unresolved)
	require.Contains(t, result.Code, "function helper")
}

func TestSynthesizeTransitiveDeclClosure(t *testing.T) {
	result := synthesize(t, `
		function base(x) { return x + 1; }
		function helper(x) { return base(x) * 2; }
		export const onClick = () => { "use client"; return helper(1); };
	`)
	require.Contains(t, result.DeclNames, "helper")
	require.Contains(t, result.DeclNames, "base")
	require.Empty(t, result.Unresolved)
}

func TestSynthesizeImportAndDeclCombined(t *testing.T) {
	result := synthesize(t, `
		import { track } from "./analytics.ts";
		function helper(x) { track(x); return x; }
		export const onClick = () => { "use client"; return helper(1); };
	`)
	require.Contains(t, result.ImportNames, "track")
	require.Contains(t, result.DeclNames, "helper")
	require.Empty(t, result.Unresolved)
}

func TestSynthesizeSurfacesUnresolvedNames(t *testing.T) {
	result := synthesize(t, `
		export const onClick = () => { "use client"; doesNotExistAnywhere(); };
	`)
	require.Contains(t, result.Unresolved, "doesNotExistAnywhere")
}

func TestSynthesizeFiltersGlobals(t *testing.T) {
	result := synthesize(t, `
		export const onClick = () => { "use client"; console.log(Math.max(1, 2)); };
	`)
	require.Empty(t, result.Unresolved)
	require.Empty(t, result.ImportNames)
	require.Empty(t, result.DeclNames)
}

func TestSynthesizeDedupesMultiNameDeclaration(t *testing.T) {
	result := synthesize(t, `
		const { a, b } = computeBoth();
		export const onClick = () => { "use client"; return a + b; };
	`)
	require.Contains(t, result.Code, "const { a, b }")
	count := 0
	for _, n := range result.DeclNames {
		if n == "a" || n == "b" {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestSynthesizeChunkHashIsDeterministic(t *testing.T) {
	source := `export const onClick = () => { "use client"; return 1; };`
	a := synthesize(t, source)
	b := synthesize(t, source)
	require.Equal(t, a.ChunkHash12, b.ChunkHash12)
	require.Len(t, a.ChunkHash12, 12)
}
