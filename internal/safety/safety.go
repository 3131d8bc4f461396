// Package safety implements the two module-level checks that, unlike
// unresolved-reference handling, are never policy-driven: a side-effect-only
// import makes the module unsafe to split at all, and a callable use of a
// name a handler is about to shadow with a URL string would silently turn
// into a runtime error once the rewrite lands.
package safety

import (
	"fmt"

	"github.com/nullstack-dev/useclient-transform/internal/importtable"
	"github.com/nullstack-dev/useclient-transform/internal/js_ast"
)

// SideEffectImportError is fatal: a bare `import "path"` statement cannot be
// faithfully hoisted into, or erased from, a synthesized client module.
type SideEffectImportError struct {
	Statements []importtable.SideEffectImport
}

func (e *SideEffectImportError) Error() string {
	return fmt.Sprintf("side-effect imports are not allowed in a module containing \"use client\" handlers (%d found)", len(e.Statements))
}

// UnsafeCallableError is fatal: a handler declared under a name is still
// called, constructed, or used as a tagged-template function somewhere in
// the module, and that name is about to be rebound to a URL string.
type UnsafeCallableError struct {
	Name string
	Kind string // "call", "new", or "tagged template"
}

func (e *UnsafeCallableError) Error() string {
	return fmt.Sprintf("%q is used as a %s after being extracted as a \"use client\" handler; "+
		"its declaration will be replaced with a URL string", e.Name, e.Kind)
}

// CheckSideEffectImports returns a SideEffectImportError if any bare import
// statement is present.
func CheckSideEffectImports(sideEffects []importtable.SideEffectImport) error {
	if len(sideEffects) > 0 {
		return &SideEffectImportError{Statements: sideEffects}
	}
	return nil
}

// CheckUnsafeCallables scans stmts for callable uses of any name in names
// that aren't shadowed by an inner declaration of the same name.
func CheckUnsafeCallables(symbols []js_ast.Symbol, stmts []js_ast.Stmt, names map[string]struct{}) error {
	if len(names) == 0 {
		return nil
	}
	c := &callScanner{symbols: symbols, banned: names, scopes: []map[string]struct{}{{}}}
	for _, stmt := range stmts {
		c.stmt(stmt)
		if c.err != nil {
			return c.err
		}
	}
	return c.err
}

type callScanner struct {
	symbols []js_ast.Symbol
	banned  map[string]struct{}
	scopes  []map[string]struct{}
	err     error
}

func (c *callScanner) nameOf(ref js_ast.Ref) string {
	if int(ref.InnerIndex) < len(c.symbols) {
		return c.symbols[ref.InnerIndex].OriginalName
	}
	return ""
}

func (c *callScanner) push()             { c.scopes = append(c.scopes, map[string]struct{}{}) }
func (c *callScanner) pop()              { c.scopes = c.scopes[:len(c.scopes)-1] }
func (c *callScanner) declare(name string) {
	if name != "" {
		c.scopes[len(c.scopes)-1][name] = struct{}{}
	}
}

// shadowed reports whether name has been (re)declared in some scope nested
// below the module's top-level scope.
func (c *callScanner) shadowed(name string) bool {
	for i := 1; i < len(c.scopes); i++ {
		if _, ok := c.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

func (c *callScanner) flagIfUnsafe(target js_ast.Expr, kind string) {
	var name string
	switch t := target.Data.(type) {
	case *js_ast.EIdentifier:
		name = c.nameOf(t.Ref)
	case *js_ast.EImportIdentifier:
		name = c.nameOf(t.Ref)
	default:
		return
	}
	if _, isBanned := c.banned[name]; !isBanned {
		return
	}
	if c.shadowed(name) {
		return
	}
	if c.err == nil {
		c.err = &UnsafeCallableError{Name: name, Kind: kind}
	}
}

func (c *callScanner) stmt(stmt js_ast.Stmt) {
	if c.err != nil {
		return
	}
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		c.push()
		for _, child := range s.Stmts {
			c.stmt(child)
		}
		c.pop()
	case *js_ast.SExpr:
		c.expr(s.Value)
	case *js_ast.SLocal:
		for _, d := range s.Decls {
			if d.ValueOrNil.Data != nil {
				c.expr(d.ValueOrNil)
			}
			c.bindingNames(d.Binding)
		}
	case *js_ast.SFunction:
		if s.Fn.Name != nil {
			c.declare(c.nameOf(s.Fn.Name.Ref))
		}
		c.push()
		for _, arg := range s.Fn.Args {
			c.bindingNames(arg.Binding)
		}
		for _, child := range s.Fn.Body.Block.Stmts {
			c.stmt(child)
		}
		c.pop()
	case *js_ast.SClass:
		c.class(s.Class)
	case *js_ast.SIf:
		c.expr(s.Test)
		c.stmt(s.Yes)
		if s.NoOrNil.Data != nil {
			c.stmt(s.NoOrNil)
		}
	case *js_ast.SFor:
		c.push()
		if s.InitOrNil.Data != nil {
			c.stmt(s.InitOrNil)
		}
		if s.TestOrNil.Data != nil {
			c.expr(s.TestOrNil)
		}
		if s.UpdateOrNil.Data != nil {
			c.expr(s.UpdateOrNil)
		}
		c.stmt(s.Body)
		c.pop()
	case *js_ast.SForIn:
		c.expr(s.Value)
		c.push()
		c.stmt(s.Init)
		c.stmt(s.Body)
		c.pop()
	case *js_ast.SForOf:
		c.expr(s.Value)
		c.push()
		c.stmt(s.Init)
		c.stmt(s.Body)
		c.pop()
	case *js_ast.SDoWhile:
		c.stmt(s.Body)
		c.expr(s.Test)
	case *js_ast.SWhile:
		c.expr(s.Test)
		c.stmt(s.Body)
	case *js_ast.SWith:
		c.expr(s.Value)
		c.stmt(s.Body)
	case *js_ast.STry:
		c.push()
		for _, child := range s.Block.Stmts {
			c.stmt(child)
		}
		c.pop()
		if s.Catch != nil {
			c.push()
			if s.Catch.BindingOrNil.Data != nil {
				c.bindingNames(s.Catch.BindingOrNil)
			}
			for _, child := range s.Catch.Block.Stmts {
				c.stmt(child)
			}
			c.pop()
		}
		if s.Finally != nil {
			c.push()
			for _, child := range s.Finally.Block.Stmts {
				c.stmt(child)
			}
			c.pop()
		}
	case *js_ast.SSwitch:
		c.expr(s.Test)
		c.push()
		for _, cs := range s.Cases {
			if cs.ValueOrNil.Data != nil {
				c.expr(cs.ValueOrNil)
			}
			for _, child := range cs.Body {
				c.stmt(child)
			}
		}
		c.pop()
	case *js_ast.SReturn:
		if s.ValueOrNil.Data != nil {
			c.expr(s.ValueOrNil)
		}
	case *js_ast.SThrow:
		c.expr(s.Value)
	case *js_ast.SLabel:
		c.stmt(s.Stmt)
	case *js_ast.SExportDefault:
		c.stmt(s.Value)
	}
}

func (c *callScanner) bindingNames(b js_ast.Binding) {
	switch d := b.Data.(type) {
	case *js_ast.BIdentifier:
		c.declare(c.nameOf(d.Ref))
	case *js_ast.BArray:
		for _, item := range d.Items {
			c.bindingNames(item.Binding)
			if item.DefaultValueOrNil.Data != nil {
				c.expr(item.DefaultValueOrNil)
			}
		}
	case *js_ast.BObject:
		for _, p := range d.Properties {
			c.bindingNames(p.Value)
			if p.DefaultValueOrNil.Data != nil {
				c.expr(p.DefaultValueOrNil)
			}
		}
	}
}

func (c *callScanner) class(class js_ast.Class) {
	if class.ExtendsOrNil.Data != nil {
		c.expr(class.ExtendsOrNil)
	}
	if class.Name != nil {
		c.declare(c.nameOf(class.Name.Ref))
	}
	c.push()
	for _, p := range class.Properties {
		if p.Kind == js_ast.PropertyClassStaticBlock {
			if p.ClassStaticBlock != nil {
				for _, child := range p.ClassStaticBlock.Block.Stmts {
					c.stmt(child)
				}
			}
			continue
		}
		if p.Flags.Has(js_ast.PropertyIsComputed) && p.Key.Data != nil {
			c.expr(p.Key)
		}
		if p.ValueOrNil.Data != nil {
			c.expr(p.ValueOrNil)
		}
		if p.InitializerOrNil.Data != nil {
			c.expr(p.InitializerOrNil)
		}
	}
	c.pop()
}

func (c *callScanner) expr(expr js_ast.Expr) {
	if c.err != nil {
		return
	}
	switch e := expr.Data.(type) {
	case *js_ast.ECall:
		c.flagIfUnsafe(e.Target, "call")
		c.expr(e.Target)
		for _, a := range e.Args {
			c.expr(a)
		}
	case *js_ast.ENew:
		c.flagIfUnsafe(e.Target, "new")
		c.expr(e.Target)
		for _, a := range e.Args {
			c.expr(a)
		}
	case *js_ast.ETemplate:
		if e.TagOrNil.Data != nil {
			c.flagIfUnsafe(e.TagOrNil, "tagged template")
			c.expr(e.TagOrNil)
		}
		for _, part := range e.Parts {
			c.expr(part.Value)
		}
	case *js_ast.EArray:
		for _, item := range e.Items {
			c.expr(item)
		}
	case *js_ast.EUnary:
		c.expr(e.Value)
	case *js_ast.EBinary:
		c.expr(e.Left)
		c.expr(e.Right)
	case *js_ast.EDot:
		c.expr(e.Target)
	case *js_ast.EIndex:
		c.expr(e.Target)
		c.expr(e.Index)
	case *js_ast.EArrow:
		c.push()
		for _, arg := range e.Args {
			c.bindingNames(arg.Binding)
		}
		for _, child := range e.Body.Block.Stmts {
			c.stmt(child)
		}
		c.pop()
	case *js_ast.EFunction:
		if e.Fn.Name != nil {
			c.declare(c.nameOf(e.Fn.Name.Ref))
		}
		c.push()
		for _, arg := range e.Fn.Args {
			c.bindingNames(arg.Binding)
		}
		for _, child := range e.Fn.Body.Block.Stmts {
			c.stmt(child)
		}
		c.pop()
	case *js_ast.EClass:
		c.class(e.Class)
	case *js_ast.EObject:
		for _, p := range e.Properties {
			if p.ValueOrNil.Data != nil {
				c.expr(p.ValueOrNil)
			}
		}
	case *js_ast.ESpread:
		c.expr(e.Value)
	case *js_ast.EAnnotation:
		c.expr(e.Value)
	case *js_ast.EAwait:
		c.expr(e.Value)
	case *js_ast.EYield:
		if e.ValueOrNil.Data != nil {
			c.expr(e.ValueOrNil)
		}
	case *js_ast.EIf:
		c.expr(e.Test)
		c.expr(e.Yes)
		c.expr(e.No)
	case *js_ast.EJSXElement:
		if e.TagOrNil.Data != nil {
			c.expr(e.TagOrNil)
		}
		for _, p := range e.Properties {
			if p.ValueOrNil.Data != nil {
				c.expr(p.ValueOrNil)
			}
		}
		for _, child := range e.Children {
			c.expr(child)
		}
	case *js_ast.EImportCall:
		c.expr(e.Expr)
		if e.OptionsOrNil.Data != nil {
			c.expr(e.OptionsOrNil)
		}
	}
}
