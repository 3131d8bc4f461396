// Package useclient implements a single-file source transform that hoists
// every inline `"use client"` handler out of a server module into its own
// synthesized client chunk, replacing the handler in place with a URL
// expression the host resolves to that chunk's emitted asset.
//
// The package exposes Transform plus a small Host interface (§6 of the
// design this package implements) standing in for whatever bundler
// integration embeds it; cmd/useclient-transform is the simplest possible
// Host, used as a diagnostic driver over the library.
package useclient

import (
	"fmt"
	"strings"

	"github.com/nullstack-dev/useclient-transform/internal/bytemap"
	"github.com/nullstack-dev/useclient-transform/internal/chunkname"
	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
	"github.com/nullstack-dev/useclient-transform/internal/decltable"
	"github.com/nullstack-dev/useclient-transform/internal/handlerscan"
	"github.com/nullstack-dev/useclient-transform/internal/importtable"
	"github.com/nullstack-dev/useclient-transform/internal/policy"
	"github.com/nullstack-dev/useclient-transform/internal/replace"
	"github.com/nullstack-dev/useclient-transform/internal/safety"
	"github.com/nullstack-dev/useclient-transform/internal/spanutil"
	"github.com/nullstack-dev/useclient-transform/internal/synth"
)

// Host is the set of callbacks a bundler integration supplies so Transform
// can emit chunks and report diagnostics without depending on any specific
// bundler's API.
type Host interface {
	// EmitChunk registers a new bundle entry for id, whose source is later
	// served by the embedder's load hook consulting the Registry, and
	// returns a RefToken the caller substitutes into the emitted
	// `new URL(import.meta.<RefToken>).pathname` expression. Synthesized
	// chunks carry no module side effects, so the host is free to mark the
	// entry side-effect-free for tree shaking.
	EmitChunk(id string, fileName string) (refToken string, err error)
	// AddWatchFile registers a dependency so changes to absPath retrigger
	// this transform.
	AddWatchFile(absPath string)
	// ResolveExternal resolves id as imported from importer, used by the
	// resolve hook when an import originates from a synthesized inline
	// module. ok is false when the host cannot resolve it.
	ResolveExternal(id string, importer string) (resolved string, ok bool)
	// Warn reports a non-fatal diagnostic.
	Warn(message string)
	// Error reports a fatal diagnostic. Transform still returns the error
	// through its own return value regardless of what Error does.
	Error(message string)
}

// DebugFunc receives the transform's own trace output when debug logging
// is enabled. Nil disables it.
type DebugFunc func(message string)

// Options are the four knobs of the external interface (§6), plus the
// absolute path Transform reports diagnostics under. Filter is only
// consulted by Plugin.TransformHook; calling Transform directly bypasses it.
type Options struct {
	AbsPath    string
	Filter     *Filter
	Debug      DebugFunc
	Unresolved policy.UnresolvedPolicy
	Strict     bool
}

func (o Options) debugf(format string, args ...interface{}) {
	if o.Debug != nil {
		o.Debug(fmt.Sprintf(format, args...))
	}
}

// Chunk is one synthesized client module emitted during a Transform call.
type Chunk struct {
	Id          string
	FileName    string
	Code        string
	RefToken    string
	HandlerName string
}

// ParseError wraps a parse failure of the source module.
type ParseError struct{ Cause error }

func (e *ParseError) Error() string { return fmt.Sprintf("[use-client] parse failed: %s", e.Cause) }
func (e *ParseError) Unwrap() error { return e.Cause }

// FatalError wraps any of the always-fatal checks (§4.H) with the module's
// absolute path, matching the "identifies the absolute module id" contract
// of §7.
type FatalError struct {
	AbsPath string
	Cause   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("[use-client] %s: %s", e.AbsPath, e.Cause)
}
func (e *FatalError) Unwrap() error { return e.Cause }

// Transform runs the whole pipeline over one module's source text. It
// returns the unchanged source (and no chunks) when the module contains no
// qualifying handler, or when a parse failure occurs under a non-strict
// unresolved/strict policy.
func Transform(host Host, opts Options, source string) (string, []Chunk, error) {
	if !strings.Contains(source, "use client") {
		return source, nil, nil
	}

	eng := policy.Engine{Unresolved: opts.Unresolved, Strict: opts.Strict}

	tree, _, err := clientparser.Parse(opts.AbsPath, source)
	if err != nil {
		if eng.ParseFailureIsFatal() {
			fatal := &ParseError{Cause: err}
			host.Error(fatal.Error())
			return source, nil, fatal
		}
		host.Warn(fmt.Sprintf("[use-client] %s: %s", opts.AbsPath, err))
		return source, nil, nil
	}

	stmts := clientparser.TopLevelStmts(tree)
	handlers := handlerscan.Scan(tree.Symbols, stmts)
	if len(handlers) == 0 {
		return source, nil, nil
	}

	importTable, sideEffects := importtable.Build(tree.Symbols, source, stmts)
	if err := safety.CheckSideEffectImports(sideEffects); err != nil {
		fatal := &FatalError{AbsPath: opts.AbsPath, Cause: err}
		host.Error(fatal.Error())
		return source, nil, fatal
	}

	declTable := decltable.Build(tree.Symbols, source, stmts)

	hoistedNames := map[string]struct{}{}
	for _, h := range handlers {
		switch h.Form {
		case handlerscan.FormDeclTopLevel, handlerscan.FormDeclExported, handlerscan.FormExportDefaultNamed:
			if h.Name != "" {
				hoistedNames[h.Name] = struct{}{}
			}
		}
	}
	if err := safety.CheckUnsafeCallables(tree.Symbols, stmts, hoistedNames); err != nil {
		fatal := &FatalError{AbsPath: opts.AbsPath, Cause: err}
		host.Error(fatal.Error())
		return source, nil, fatal
	}

	sourceFileHash12 := chunkname.FileHash12(source)
	mapper := bytemap.New(source)

	var chunks []Chunk
	var replacements []replace.Replacement

	for _, h := range handlers {
		result := synth.Synthesize(tree.Symbols, source, sourceFileHash12, opts.AbsPath, h, importTable, declTable)

		if len(result.Unresolved) > 0 {
			switch eng.UnresolvedAction() {
			case policy.ActionFatal:
				fatal := &FatalError{AbsPath: opts.AbsPath, Cause: &policy.UnresolvedReferenceError{HandlerName: h.Name, Names: result.Unresolved}}
				host.Error(fatal.Error())
				return source, nil, fatal
			case policy.ActionWarn:
				host.Warn((&policy.UnresolvedReferenceWarning{HandlerName: h.Name, Names: result.Unresolved}).Error())
			case policy.ActionIgnore:
				// Explicit escape hatch: proceed silently.
			}
		}

		chunkFileName := chunkname.Name(opts.AbsPath, result.ChunkHash12, "tsx")
		id := inlineModuleId(opts.AbsPath, chunkFileName)

		refToken, err := host.EmitChunk(id, "assets/"+chunkname.Name(opts.AbsPath, result.ChunkHash12, "js"))
		if err != nil {
			fatal := &FatalError{AbsPath: opts.AbsPath, Cause: err}
			host.Error(fatal.Error())
			return source, nil, fatal
		}

		chunks = append(chunks, Chunk{
			Id: id, FileName: chunkFileName, Code: result.Code,
			RefToken: refToken, HandlerName: h.Name,
		})
		opts.debugf("[use-client] %s: emitted %s for handler %q", opts.AbsPath, chunkFileName, h.Name)

		r := spanutil.Range{Start: mapper.ToIndex(int(h.RangeStart)), End: mapper.ToIndex(int(h.RangeEnd))}
		r = spanutil.WidenForParens(source, r)
		if h.Form != handlerscan.FormExpression {
			// Statement forms drop the original trailing ";" from the span;
			// the declaration forms' replacement text supplies its own, and
			// the anonymous default-export text ends without one. An
			// expression form's trailing semicolon belongs to the
			// surrounding statement and stays put.
			r = spanutil.TrimForReplacement(source, r)
		}
		if r.Start < 0 || r.End > len(source) || r.Start >= r.End || !mapper.IsBoundary(r.Start) || !mapper.IsBoundary(r.End) {
			opts.debugf("[use-client] %s: skipping handler %q, computed span [%d, %d) is unusable", opts.AbsPath, h.Name, r.Start, r.End)
			continue
		}

		urlExpr := fmt.Sprintf("new URL(import.meta.%s).pathname", refToken)
		replacements = append(replacements, replace.Replacement{
			Start: r.Start, End: r.End, Text: replacementText(h, urlExpr),
		})
	}

	rewritten := replace.Apply(source, replacements)
	host.AddWatchFile(opts.AbsPath)
	return rewritten, chunks, nil
}

// replacementText implements the §4.K replacement-text table for h's form.
func replacementText(h handlerscan.Handler, urlExpr string) string {
	switch h.Form {
	case handlerscan.FormDeclTopLevel:
		return fmt.Sprintf("const %s = %s;", h.Name, urlExpr)
	case handlerscan.FormDeclExported:
		return fmt.Sprintf("export const %s = %s;", h.Name, urlExpr)
	case handlerscan.FormExportDefaultNamed:
		return fmt.Sprintf("const %s = %s; export default %s;", h.Name, urlExpr, h.Name)
	case handlerscan.FormExportDefaultAnonymous:
		return fmt.Sprintf("export default %s", urlExpr)
	default: // FormExpression
		return urlExpr
	}
}

// inlineModulePrefix reserves virtual module ids from ever colliding with a
// real filesystem path; a leading null byte can never appear in one.
const inlineModulePrefix = "\x00useclient-inline:"

func inlineModuleId(sourceAbsPath string, chunkFileName string) string {
	dir := sourceAbsPath
	if idx := strings.LastIndexByte(sourceAbsPath, '/'); idx >= 0 {
		dir = sourceAbsPath[:idx]
	}
	return inlineModulePrefix + dir + "/" + chunkFileName
}

// IsInlineModuleId reports whether id was produced by inlineModuleId, and if
// so returns the synthesized path it wraps (stripped of any query string).
func IsInlineModuleId(id string) (string, bool) {
	if !strings.HasPrefix(id, inlineModulePrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(id, inlineModulePrefix)
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		rest = rest[:q]
	}
	return rest, true
}
