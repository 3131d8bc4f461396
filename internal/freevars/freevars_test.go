package freevars_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
	"github.com/nullstack-dev/useclient-transform/internal/freevars"
)

func collect(t *testing.T, source string) map[string]struct{} {
	t.Helper()
	tree, _, err := clientparser.Parse("/a/b.tsx", source)
	require.NoError(t, err)
	a := &freevars.Analyzer{Symbols: tree.Symbols}
	return a.Collect(nil, clientparser.TopLevelStmts(tree))
}

func names(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}

func TestCollectSimpleReference(t *testing.T) {
	free := collect(t, `foo(bar);`)
	require.ElementsMatch(t, []string{"foo", "bar"}, names(free))
}

func TestCollectLocalDeclarationIsNotFree(t *testing.T) {
	free := collect(t, `const x = 1; foo(x);`)
	require.ElementsMatch(t, []string{"foo"}, names(free))
}

func TestCollectFunctionParamsShadow(t *testing.T) {
	free := collect(t, `function f(x) { return x + y; }`)
	require.ElementsMatch(t, []string{"y"}, names(free))
}

func TestCollectNamedFunctionExpressionSelfReference(t *testing.T) {
	free := collect(t, `const fact = function self(n) { return n <= 1 ? 1 : n * self(n - 1); };`)
	require.Empty(t, free)
}

func TestCollectDestructuring(t *testing.T) {
	free := collect(t, `const { a, b: [c] } = obj; use(a, c);`)
	require.ElementsMatch(t, []string{"obj", "use"}, names(free))
}

func TestCollectBlockScoping(t *testing.T) {
	free := collect(t, `{ let x = 1; } use(x);`)
	require.ElementsMatch(t, []string{"use", "x"}, names(free))
}
