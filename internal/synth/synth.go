// Package synth assembles the synthesized client-side module for a single
// handler: the handler's own source text as a default export, plus every
// import statement and top-level declaration its free references transitively
// require.
package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nullstack-dev/useclient-transform/internal/chunkname"
	"github.com/nullstack-dev/useclient-transform/internal/decltable"
	"github.com/nullstack-dev/useclient-transform/internal/freevars"
	"github.com/nullstack-dev/useclient-transform/internal/handlerscan"
	"github.com/nullstack-dev/useclient-transform/internal/importtable"
	"github.com/nullstack-dev/useclient-transform/internal/js_ast"
)

// Globals is the curated set of names that never need to be imported or
// declared: standard built-ins, commonly referenced DOM/Web platform
// globals, and "arguments" (which freevars reports as free because its
// implicit per-function binding is never pushed into any declared scope).
var Globals = buildGlobals()

func buildGlobals() map[string]struct{} {
	names := []string{
		"arguments", "this", "globalThis", "undefined", "NaN", "Infinity",
		"Object", "Array", "Function", "String", "Number", "Boolean", "Symbol",
		"BigInt", "Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError",
		"EvalError", "URIError", "AggregateError", "Promise", "Proxy", "Reflect",
		"Map", "Set", "WeakMap", "WeakSet", "WeakRef", "FinalizationRegistry",
		"Date", "RegExp", "JSON", "Math", "ArrayBuffer", "SharedArrayBuffer",
		"DataView", "Int8Array", "Uint8Array", "Uint8ClampedArray", "Int16Array",
		"Uint16Array", "Int32Array", "Uint32Array", "Float32Array", "Float64Array",
		"BigInt64Array", "BigUint64Array", "Intl",
		"parseInt", "parseFloat", "isNaN", "isFinite", "encodeURIComponent",
		"decodeURIComponent", "encodeURI", "decodeURI", "structuredClone",
		"console", "setTimeout", "clearTimeout", "setInterval", "clearInterval",
		"queueMicrotask", "fetch", "Request", "Response", "Headers", "URL",
		"URLSearchParams", "FormData", "Blob", "File", "FileReader",
		"AbortController", "AbortSignal", "TextEncoder", "TextDecoder",
		"Event", "EventTarget", "CustomEvent", "MessageChannel", "MessagePort",
		"WebSocket", "Worker", "Window", "Document", "Navigator", "Location",
		"History", "Element", "HTMLElement", "Node", "NodeList", "DOMException",
		"document", "window", "navigator", "location", "history", "localStorage",
		"sessionStorage", "crypto", "performance", "requestAnimationFrame",
		"cancelAnimationFrame", "alert", "confirm", "prompt",
		"process", "Buffer", "module", "exports", "require", "__dirname", "__filename",
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// UnresolvedError describes names in the transitive closure that neither the
// Import Table nor the Declaration Table can resolve. Synthesize does not
// return it; it lists such names in Result.Unresolved.
type UnresolvedError struct {
	HandlerName string
	Names       []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved reference(s) in handler %q: %s", e.HandlerName, strings.Join(e.Names, ", "))
}

// Result is one synthesized inline module.
type Result struct {
	Code        string
	ChunkHash12 string
	Unresolved  []string
	ImportNames []string
	DeclNames   []string
}

// Synthesize builds the inline module text for handler h.
//
// symbols/source/sourceFileHash12/canonicalAbsPath describe the enclosing
// module h was found in; imports/decls are that module's Import and
// Declaration Tables (§4.E/§4.F).
func Synthesize(
	symbols []js_ast.Symbol,
	source string,
	sourceFileHash12 string,
	canonicalAbsPath string,
	h handlerscan.Handler,
	imports *importtable.Table,
	decls *decltable.Table,
) Result {
	fn := normalizeFn(h)

	free := collectFree(symbols, fn)
	for name := range Globals {
		delete(free, name)
	}

	requiredImports := map[int32]importtable.Entry{}
	requiredDecls := map[int32]*decltable.Entry{}
	var unresolved []string
	seen := map[string]struct{}{}

	worklist := make([]string, 0, len(free))
	for name := range free {
		worklist = append(worklist, name)
	}
	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if entry, ok := imports.Lookup(name); ok {
			requiredImports[entry.StmtStart] = entry
			continue
		}
		if entry, ok := decls.Lookup(name); ok {
			if _, already := requiredDecls[entry.StmtStart]; !already {
				requiredDecls[entry.StmtStart] = entry
				for dep := range entry.Deps {
					if _, isGlobal := Globals[dep]; isGlobal {
						continue
					}
					if _, ok := seen[dep]; !ok {
						worklist = append(worklist, dep)
					}
				}
			}
			continue
		}
		unresolved = append(unresolved, name)
	}
	sort.Strings(unresolved)

	code, importNames, declNames := assemble(requiredImports, requiredDecls, source, h)
	hash := chunkname.Hash12(sourceFileHash12, h.RangeStart, canonicalAbsPath)

	return Result{
		Code:        code,
		ChunkHash12: hash,
		Unresolved:  unresolved,
		ImportNames: importNames,
		DeclNames:   declNames,
	}
}

// normalizeFn strips the "use client" directive prologue and returns a
// function-expression shaped Fn for free-reference collection, regardless of
// whether h came from an arrow function or a function expression/declaration.
func normalizeFn(h handlerscan.Handler) js_ast.Fn {
	body := h.Body
	if len(body.Block.Stmts) > 0 {
		body.Block.Stmts = body.Block.Stmts[1:]
	}
	fn := js_ast.Fn{
		Args:       h.Args,
		Body:       body,
		IsAsync:    h.IsAsync,
		HasRestArg: h.HasRestArg,
	}
	if h.HasName {
		fn.Name = &js_ast.LocRef{Ref: h.NameRef}
	}
	return fn
}

func collectFree(symbols []js_ast.Symbol, fn js_ast.Fn) map[string]struct{} {
	a := &freevars.Analyzer{Symbols: symbols}
	expr := js_ast.Expr{Data: &js_ast.EFunction{Fn: fn}}
	return a.CollectExpr(nil, expr)
}

func assemble(
	requiredImports map[int32]importtable.Entry,
	requiredDecls map[int32]*decltable.Entry,
	source string,
	h handlerscan.Handler,
) (code string, importNames []string, declNames []string) {
	var b strings.Builder
	b.WriteString("\"use client\";\n\n")

	imports := make([]importtable.Entry, 0, len(requiredImports))
	for _, e := range requiredImports {
		imports = append(imports, e)
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].StmtStart < imports[j].StmtStart })
	for _, e := range imports {
		b.WriteString(e.Text)
		b.WriteString("\n")
		importNames = append(importNames, e.LocalName)
	}
	if len(imports) > 0 {
		b.WriteString("\n")
	}

	decls := make([]*decltable.Entry, 0, len(requiredDecls))
	for _, e := range requiredDecls {
		decls = append(decls, e)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].StmtStart < decls[j].StmtStart })
	for _, e := range decls {
		b.WriteString(e.Text)
		b.WriteString("\n\n")
		for name := range e.Declared {
			declNames = append(declNames, name)
		}
	}

	b.WriteString("export default ")
	b.WriteString(sliceFn(source, h))
	b.WriteString(";\n")

	return b.String(), importNames, declNames
}

// sliceFn recovers the handler's literal text verbatim from source, with
// its "use client" directive prologue cut out. Slicing the original text
// instead of re-printing the AST preserves everything a printer would
// normally have to throw away to stay a generic JS printer: arrow-vs-
// function syntax, parameter type annotations, comments, and exact
// formatting.
func sliceFn(source string, h handlerscan.Handler) string {
	text := source[h.CallableStart:h.RangeEnd]
	base := h.CallableStart

	stmts := h.Body.Block.Stmts
	dirStart := int(stmts[0].Loc.Start - base)
	var dirEnd int
	if len(stmts) > 1 {
		dirEnd = int(stmts[1].Loc.Start - base)
	} else {
		dirEnd = int(h.Body.Block.CloseBraceLoc.Start - base)
	}

	rest := text[dirEnd:]
	rest = strings.TrimLeft(rest, " \t")
	rest = strings.TrimPrefix(rest, "\n")
	rest = strings.TrimLeft(rest, " \t")

	return text[:dirStart] + rest
}
