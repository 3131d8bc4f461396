// Package decltable indexes a module's top-level value declarations
// (functions, variables, classes, enums) by every name each one introduces,
// together with that declaration's own free-reference set. The module
// synthesizer (internal/synth) walks this table to close a handler's
// dependency set transitively.
package decltable

import (
	"strings"

	"github.com/nullstack-dev/useclient-transform/internal/freevars"
	"github.com/nullstack-dev/useclient-transform/internal/js_ast"
)

// Entry is one top-level declaration. Declared is every name the statement
// introduces (a destructuring `const` can introduce more than one); Deps is
// the set of free names the declaration body itself references, with the
// declaration's own names already excluded.
type Entry struct {
	Declared  map[string]struct{}
	Deps      map[string]struct{}
	Text      string
	StmtStart int32
}

// Table maps a top-level name to the declaration that introduced it.
type Table struct {
	byName map[string]*Entry
}

func (t *Table) Lookup(name string) (*Entry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// Build scans source's top-level statements, looking through one level of
// `export` itself, and indexes every value-introducing declaration.
func Build(symbols []js_ast.Symbol, source string, stmts []js_ast.Stmt) *Table {
	t := &Table{byName: make(map[string]*Entry)}
	analyzer := &freevars.Analyzer{Symbols: symbols}

	nameOf := func(ref js_ast.Ref) string {
		if int(ref.InnerIndex) < len(symbols) {
			return symbols[ref.InnerIndex].OriginalName
		}
		return ""
	}

	for i, stmt := range stmts {
		decl := unwrapExport(stmt)
		if decl.Data == nil {
			continue
		}

		var declared map[string]struct{}
		switch s := decl.Data.(type) {
		case *js_ast.SFunction:
			if s.Fn.Name == nil {
				continue
			}
			declared = map[string]struct{}{nameOf(s.Fn.Name.Ref): {}}
		case *js_ast.SClass:
			if s.Class.Name == nil {
				continue
			}
			declared = map[string]struct{}{nameOf(s.Class.Name.Ref): {}}
		case *js_ast.SEnum:
			declared = map[string]struct{}{nameOf(s.Name.Ref): {}}
		case *js_ast.SLocal:
			declared = make(map[string]struct{})
			for _, d := range s.Decls {
				collectBindingNames(nameOf, d.Binding, declared)
			}
		default:
			continue
		}
		if len(declared) == 0 {
			continue
		}

		start := stmt.Loc.Start
		end := int32(len(source))
		if i+1 < len(stmts) {
			end = stmts[i+1].Loc.Start
		}
		text := strings.TrimRight(source[start:end], " \t\r\n")

		seed := freevars.NewScope()
		for name := range declared {
			seed[name] = struct{}{}
		}
		deps := analyzer.Collect([]freevars.Scope{seed}, []js_ast.Stmt{decl})
		for name := range declared {
			delete(deps, name)
		}

		entry := &Entry{Declared: declared, Deps: deps, Text: text, StmtStart: start}
		for name := range declared {
			t.byName[name] = entry
		}
	}

	return t
}

// unwrapExport strips a single leading `export` (or `export default`)
// wrapper off a top-level statement, returning the underlying declaration
// statement it wraps. Non-export, non-declaration statements are returned
// as a zero Stmt.
func unwrapExport(stmt js_ast.Stmt) js_ast.Stmt {
	switch s := stmt.Data.(type) {
	case *js_ast.SFunction:
		if s.IsExport {
			return stmt
		}
		return stmt
	case *js_ast.SClass:
		return stmt
	case *js_ast.SEnum:
		return stmt
	case *js_ast.SLocal:
		return stmt
	case *js_ast.SExportDefault:
		switch s.Value.Data.(type) {
		case *js_ast.SFunction, *js_ast.SClass:
			return s.Value
		}
	}
	return js_ast.Stmt{}
}

func collectBindingNames(nameOf func(js_ast.Ref) string, b js_ast.Binding, out map[string]struct{}) {
	switch d := b.Data.(type) {
	case *js_ast.BIdentifier:
		out[nameOf(d.Ref)] = struct{}{}
	case *js_ast.BArray:
		for _, item := range d.Items {
			collectBindingNames(nameOf, item.Binding, out)
		}
	case *js_ast.BObject:
		for _, p := range d.Properties {
			collectBindingNames(nameOf, p.Value, out)
		}
	}
}
