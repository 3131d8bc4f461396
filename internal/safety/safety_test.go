package safety_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
	"github.com/nullstack-dev/useclient-transform/internal/importtable"
	"github.com/nullstack-dev/useclient-transform/internal/safety"
)

func TestCheckSideEffectImportsEmpty(t *testing.T) {
	require.NoError(t, safety.CheckSideEffectImports(nil))
}

func TestCheckSideEffectImportsDetected(t *testing.T) {
	err := safety.CheckSideEffectImports([]importtable.SideEffectImport{{Text: `import "./reset.css";`}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "side-effect imports")
}

func TestCheckUnsafeCallablesDetectsCall(t *testing.T) {
	tree, _, err := clientparser.Parse("/a/b.tsx", "function top() { return 1; }\ntop();\n")
	require.NoError(t, err)
	stmts := clientparser.TopLevelStmts(tree)
	names := map[string]struct{}{"top": {}}
	err = safety.CheckUnsafeCallables(tree.Symbols, stmts, names)
	require.Error(t, err)
	var unsafeErr *safety.UnsafeCallableError
	require.ErrorAs(t, err, &unsafeErr)
	require.Equal(t, "top", unsafeErr.Name)
	require.Equal(t, "call", unsafeErr.Kind)
}

func TestCheckUnsafeCallablesRespectsShadowing(t *testing.T) {
	tree, _, err := clientparser.Parse("/a/b.tsx", "function top() { return 1; }\nfunction invoke(top) { return top(); }\n")
	require.NoError(t, err)
	stmts := clientparser.TopLevelStmts(tree)
	names := map[string]struct{}{"top": {}}
	require.NoError(t, safety.CheckUnsafeCallables(tree.Symbols, stmts, names))
}

func TestCheckUnsafeCallablesDetectsNew(t *testing.T) {
	tree, _, err := clientparser.Parse("/a/b.tsx", "function Widget() { return 1; }\nnew Widget();\n")
	require.NoError(t, err)
	stmts := clientparser.TopLevelStmts(tree)
	names := map[string]struct{}{"Widget": {}}
	err = safety.CheckUnsafeCallables(tree.Symbols, stmts, names)
	require.Error(t, err)
}

func TestCheckUnsafeCallablesNoBannedNames(t *testing.T) {
	tree, _, err := clientparser.Parse("/a/b.tsx", "function top() { return 1; }\ntop();\n")
	require.NoError(t, err)
	stmts := clientparser.TopLevelStmts(tree)
	require.NoError(t, safety.CheckUnsafeCallables(tree.Symbols, stmts, nil))
}
