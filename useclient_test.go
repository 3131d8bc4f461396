package useclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/policy"
	"github.com/nullstack-dev/useclient-transform/internal/test"
)

type recordingHost struct {
	warnings []string
	errors   []string
	refs     int
}

func (h *recordingHost) EmitChunk(id string, fileName string) (string, error) {
	h.refs++
	return "REF", nil
}
func (h *recordingHost) AddWatchFile(absPath string)                        {}
func (h *recordingHost) ResolveExternal(id, importer string) (string, bool) { return id, true }
func (h *recordingHost) Warn(message string)                                { h.warnings = append(h.warnings, message) }
func (h *recordingHost) Error(message string)                               { h.errors = append(h.errors, message) }

func runTransform(t *testing.T, source string, opts Options) (string, []Chunk, error) {
	t.Helper()
	host := &recordingHost{}
	if opts.AbsPath == "" {
		opts.AbsPath = "/project/src/widget.tsx"
	}
	return Transform(host, opts, source)
}

func TestTransformNoDirective(t *testing.T) {
	source := "export const x = 1;\n"
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Empty(t, chunks)
	test.AssertEqualWithDiff(t, rewritten, source)
}

func TestTransformBasicExtraction(t *testing.T) {
	source := `export const h = () => { "use client"; return 1; };` + "\n"
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Contains(t, rewritten, "new URL(import.meta.REF).pathname")
	require.NotContains(t, rewritten, "use client")
	require.True(t, strings.HasPrefix(chunks[0].Code, "\"use client\";"))
	require.Contains(t, chunks[0].Code, "export default")
}

func TestTransformTransitiveClosure(t *testing.T) {
	source := strings.Join([]string{
		`import { submit } from "./c.ts";`,
		`const label = "x";`,
		`export const h = () => { "use client"; submit(label); };`,
		``,
	}, "\n")
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Contains(t, chunks[0].Code, `import { submit } from "./c.ts";`)
	require.Contains(t, chunks[0].Code, `const label = "x";`)
	require.Contains(t, rewritten, `import { submit } from "./c.ts";`)
}

func TestTransformUnsafeCallableIsFatal(t *testing.T) {
	source := strings.Join([]string{
		`function top() { "use client"; return 1; }`,
		`top();`,
		``,
	}, "\n")
	_, chunks, err := runTransform(t, source, Options{})
	require.Error(t, err)
	require.Empty(t, chunks)
	require.Contains(t, err.Error(), "top")
}

func TestTransformUnsafeCallableShadowed(t *testing.T) {
	source := strings.Join([]string{
		`function top() { "use client"; return 1; }`,
		`function invoke(top) { return top(); }`,
		``,
	}, "\n")
	_, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
}

func TestTransformSideEffectImportIsFatal(t *testing.T) {
	source := strings.Join([]string{
		`import "./reset.css";`,
		`const h = () => { "use client"; return 1; };`,
		``,
	}, "\n")
	_, chunks, err := runTransform(t, source, Options{})
	require.Error(t, err)
	require.Empty(t, chunks)
	require.Contains(t, err.Error(), "side-effect imports")
}

func TestTransformMultiByteSafety(t *testing.T) {
	source := strings.Join([]string{
		`const label = "café";`,
		`const h = () => { "use client"; return label; };`,
		``,
	}, "\n")
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Contains(t, rewritten, "café")
	require.Contains(t, rewritten, "new URL(import.meta.REF).pathname")
}

func TestTransformUnresolvedWarnsByDefault(t *testing.T) {
	source := `const h = () => { "use client"; return missingName(); };` + "\n"
	host := &recordingHost{}
	rewritten, chunks, err := Transform(host, Options{AbsPath: "/a/b.tsx"}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.NotEmpty(t, host.warnings)
	require.Contains(t, rewritten, "new URL(import.meta.REF).pathname")
}

func TestTransformUnresolvedFatalWhenErrorPolicy(t *testing.T) {
	source := `const h = () => { "use client"; return missingName(); };` + "\n"
	host := &recordingHost{}
	_, chunks, err := Transform(host, Options{AbsPath: "/a/b.tsx", Unresolved: policy.UnresolvedError}, source)
	require.Error(t, err)
	require.Empty(t, chunks)
}

func TestTransformUnresolvedIgnored(t *testing.T) {
	source := `const h = () => { "use client"; return missingName(); };` + "\n"
	host := &recordingHost{}
	_, chunks, err := Transform(host, Options{AbsPath: "/a/b.tsx", Unresolved: policy.UnresolvedIgnore}, source)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Empty(t, host.warnings)
}

func TestTransformFunctionDeclarationForm(t *testing.T) {
	source := "export function h() {\n  \"use client\";\n  return 1;\n}\n"
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Contains(t, rewritten, "export const h = new URL(import.meta.REF).pathname;")
	require.NotContains(t, rewritten, "function h")
}

func TestTransformPreservesTrailingCallArgument(t *testing.T) {
	source := `fn(() => { "use client"; return 1; }, extra);` + "\n"
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Contains(t, rewritten, ", extra)")
}

func TestTransformTwoHandlersPreserveSeparator(t *testing.T) {
	source := strings.Join([]string{
		`const a = () => { "use client"; return 1; };`,
		`const b = () => { "use client"; return 2; };`,
		``,
	}, "\n")
	rewritten, chunks, err := runTransform(t, source, Options{})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, 2, strings.Count(rewritten, "new URL(import.meta.REF).pathname"))
	require.Contains(t, rewritten, "const a = new URL(import.meta.REF).pathname;\nconst b = new URL(import.meta.REF).pathname;")
}

func TestTransformParseFailureNonStrictWarns(t *testing.T) {
	source := `const h = () => { "use client" return @@@ ; };` + "\n"
	host := &recordingHost{}
	rewritten, chunks, err := Transform(host, Options{AbsPath: "/a/b.tsx"}, source)
	require.NoError(t, err)
	require.Empty(t, chunks)
	require.Equal(t, source, rewritten)
	require.NotEmpty(t, host.warnings)
}

func TestTransformParseFailureStrictIsFatal(t *testing.T) {
	source := `const h = () => { "use client" return @@@ ; };` + "\n"
	host := &recordingHost{}
	_, chunks, err := Transform(host, Options{AbsPath: "/a/b.tsx", Strict: true}, source)
	require.Error(t, err)
	require.Empty(t, chunks)
}

func TestIsInlineModuleId(t *testing.T) {
	host := &recordingHost{}
	_, chunks, err := Transform(host, Options{AbsPath: "/project/src/widget.tsx"},
		`const h = () => { "use client"; return 1; };`+"\n")
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	path, ok := IsInlineModuleId(chunks[0].Id)
	require.True(t, ok)
	require.True(t, strings.HasSuffix(path, chunks[0].FileName))
}
