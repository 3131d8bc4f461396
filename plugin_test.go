package useclient

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterDefaults(t *testing.T) {
	var f *Filter
	require.True(t, f.Match("/app/src/widget.tsx"))
	require.True(t, f.Match("/app/src/handler.mjs"))
	require.True(t, f.Match("/app/src/legacy.cjs"))
	require.False(t, f.Match("/app/src/styles.css"))
	require.False(t, f.Match("/app/node_modules/pkg/index.tsx"))
}

func TestFilterCustomExpressions(t *testing.T) {
	f := &Filter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/src/`)},
		Exclude: []*regexp.Regexp{regexp.MustCompile(`\.test\.`)},
	}
	require.True(t, f.Match("/app/src/widget.tsx"))
	require.False(t, f.Match("/app/lib/widget.tsx"), "include expressions narrow the default set")
	require.False(t, f.Match("/app/src/widget.test.tsx"))
}

func TestTransformHookFilterSkips(t *testing.T) {
	p := NewPlugin()
	host := &recordingHost{}
	source := `const h = () => { "use client"; return 1; };` + "\n"

	rewritten, chunks, err := p.TransformHook(host, Options{AbsPath: "/app/node_modules/dep/a.tsx"}, source)
	require.NoError(t, err)
	require.Empty(t, chunks)
	require.Equal(t, source, rewritten)
}

func TestTransformHookStoresAndLoadHookServes(t *testing.T) {
	p := NewPlugin()
	p.StartBuild()
	host := &recordingHost{}
	source := `export const h = () => { "use client"; return 1; };` + "\n"

	_, chunks, err := p.TransformHook(host, Options{AbsPath: "/app/src/widget.tsx"}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	code, moduleType, ok := p.LoadHook(chunks[0].Id)
	require.True(t, ok)
	require.Equal(t, "tsx", moduleType)
	require.True(t, strings.HasPrefix(code, "\"use client\";"))
}

func TestLoadHookInstanceIsolation(t *testing.T) {
	a := NewPlugin()
	b := NewPlugin()
	host := &recordingHost{}
	source := `export const h = () => { "use client"; return 1; };` + "\n"

	_, chunks, err := a.TransformHook(host, Options{AbsPath: "/app/src/widget.tsx"}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	_, _, ok := b.LoadHook(chunks[0].Id)
	require.False(t, ok, "instance B must never serve instance A's chunks")
}

func TestStartBuildClearsRegistry(t *testing.T) {
	p := NewPlugin()
	host := &recordingHost{}
	source := `export const h = () => { "use client"; return 1; };` + "\n"

	_, chunks, err := p.TransformHook(host, Options{AbsPath: "/app/src/widget.tsx"}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	p.StartBuild()
	_, _, ok := p.LoadHook(chunks[0].Id)
	require.False(t, ok)
}

func TestResolveHookInlineIdPassesThrough(t *testing.T) {
	p := NewPlugin()
	host := &recordingHost{}
	source := `export const h = () => { "use client"; return 1; };` + "\n"

	_, chunks, err := p.TransformHook(host, Options{AbsPath: "/app/src/widget.tsx"}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	resolved, ok := p.ResolveHook(host, chunks[0].Id, "/app/src/widget.tsx")
	require.True(t, ok)
	require.Equal(t, chunks[0].Id, resolved)
}

func TestResolveHookDelegatesFromInlineImporter(t *testing.T) {
	p := NewPlugin()
	host := &recordingHost{}
	source := strings.Join([]string{
		`import { submit } from "./c.ts";`,
		`export const h = () => { "use client"; submit(); };`,
		``,
	}, "\n")

	_, chunks, err := p.TransformHook(host, Options{AbsPath: "/app/src/widget.tsx"}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	resolved, ok := p.ResolveHook(host, "./c.ts", chunks[0].Id)
	require.True(t, ok)
	require.Equal(t, "./c.ts", resolved)

	_, ok = p.ResolveHook(host, "./c.ts", "/app/src/other.tsx")
	require.False(t, ok, "non-inline importers decline so the host's default resolution applies")
}
