// Package importtable indexes a module's top-level import declarations by
// the local name each one binds, so the module synthesizer (internal/synth)
// can look up which whole import statement to carry into a client chunk
// for any free name a handler references.
package importtable

import (
	"strings"

	"github.com/nullstack-dev/useclient-transform/internal/js_ast"
)

// Kind identifies the binding form an import declaration introduced a local
// name through.
type Kind uint8

const (
	Default Kind = iota
	Named
	Namespace
)

// Entry is one local-name-to-import-statement mapping. Text is the exact
// source slice of the entire import statement, preserved verbatim so any
// side effect or formatting in the original import survives into the
// synthesized client module.
type Entry struct {
	LocalName string
	Kind      Kind
	Text      string
	// StmtStart is the byte offset of the import statement in source order,
	// used to restore original ordering when several imports are required.
	StmtStart int32
}

// Table maps a local name to the import statement that introduced it.
type Table struct {
	byName map[string]Entry
}

func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// SideEffectImport is a bare `import "path"` declaration: one with no
// specifiers at all. Every such statement is recorded so the safety checks
// (internal/safety) can reject the module outright.
type SideEffectImport struct {
	Text string
	Loc  int32
}

// Build scans source's top-level statements and indexes every value-binding
// import. stmts must be in source order; source is the full module text.
func Build(symbols []js_ast.Symbol, source string, stmts []js_ast.Stmt) (*Table, []SideEffectImport) {
	t := &Table{byName: make(map[string]Entry)}
	var sideEffects []SideEffectImport

	nameOf := func(ref js_ast.Ref) string {
		if int(ref.InnerIndex) < len(symbols) {
			return symbols[ref.InnerIndex].OriginalName
		}
		return ""
	}

	for i, stmt := range stmts {
		imp, ok := stmt.Data.(*js_ast.SImport)
		if !ok {
			continue
		}
		start := stmt.Loc.Start
		end := int32(len(source))
		if i+1 < len(stmts) {
			end = stmts[i+1].Loc.Start
		}
		text := strings.TrimRight(source[start:end], " \t\r\n")

		hasSpecifier := false
		if imp.DefaultName != nil {
			hasSpecifier = true
			t.byName[nameOf(imp.DefaultName.Ref)] = Entry{
				LocalName: nameOf(imp.DefaultName.Ref),
				Kind:      Default,
				Text:      text,
				StmtStart: start,
			}
		}
		if imp.Items != nil {
			for _, item := range *imp.Items {
				hasSpecifier = true
				name := nameOf(item.Name.Ref)
				t.byName[name] = Entry{LocalName: name, Kind: Named, Text: text, StmtStart: start}
			}
		}
		if imp.StarNameLoc != nil {
			hasSpecifier = true
			name := nameOf(imp.NamespaceRef)
			t.byName[name] = Entry{LocalName: name, Kind: Namespace, Text: text, StmtStart: start}
		}

		if !hasSpecifier {
			sideEffects = append(sideEffects, SideEffectImport{Text: text, Loc: start})
		}
	}

	return t, sideEffects
}
