// Package freevars walks a subtree of the kept js_ast and reports every
// identifier referenced as a value that isn't declared in any enclosing
// scope. It is the scope-aware free-variable analyzer the rest of this
// transform leans on to compute a handler's dependency closure.
//
// The walk is a plain type switch over js_ast's E*/S* union, in the same
// style js_parser's own folding and mangling passes use to visit the tree
// (see e.g. js_parser.go's constant-folding switch over Expr.Data) — this
// package never uses reflection to walk the AST.
//
// Names, not symbols. The parser that built this AST already resolved every
// identifier to a Symbol with scope-correct binding, shadowing included. This
// package deliberately ignores that resolution and instead re-derives
// "referenced but not locally declared" purely from original source names,
// because the contract here is about *names* a synthesized module must
// import or declare, not about the Refs of a tree that synthesized module
// will never share.
package freevars

import "github.com/nullstack-dev/useclient-transform/internal/js_ast"

// Scope is an unordered set of names declared directly in one lexical scope.
type Scope map[string]struct{}

// NewScope returns an empty Scope.
func NewScope() Scope { return make(Scope) }

// Analyzer resolves a js_ast.Ref back to the original source name it came
// from, via the symbol table of the single file being analyzed.
type Analyzer struct {
	Symbols []js_ast.Symbol
}

func (a *Analyzer) nameOf(ref js_ast.Ref) string {
	if int(ref.InnerIndex) < len(a.Symbols) {
		return a.Symbols[ref.InnerIndex].OriginalName
	}
	return ""
}

// Collect returns the free names referenced by stmts, given an ordered
// stack of enclosing scopes (outermost first). The initial stack is never
// mutated.
func (a *Analyzer) Collect(initial []Scope, stmts []js_ast.Stmt) map[string]struct{} {
	c := a.newCollector(initial)
	c.pushScope()
	c.stmtList(stmts)
	c.popScope()
	return c.out
}

// CollectExpr is Collect's single-expression counterpart, used to analyze a
// standalone handler expression (an arrow function or function expression).
func (a *Analyzer) CollectExpr(initial []Scope, expr js_ast.Expr) map[string]struct{} {
	c := a.newCollector(initial)
	c.expr(expr)
	return c.out
}

func (a *Analyzer) newCollector(initial []Scope) *collector {
	scopes := make([]Scope, len(initial))
	copy(scopes, initial)
	return &collector{a: a, scopes: scopes, out: make(map[string]struct{})}
}

type collector struct {
	a      *Analyzer
	scopes []Scope
	out    map[string]struct{}
}

func (c *collector) pushScope() { c.scopes = append(c.scopes, NewScope()) }
func (c *collector) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }
func (c *collector) top() Scope { return c.scopes[len(c.scopes)-1] }

func (c *collector) declare(name string) {
	if name != "" {
		c.top()[name] = struct{}{}
	}
}

func (c *collector) reference(name string) {
	if name == "" {
		return
	}
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			return
		}
	}
	c.out[name] = struct{}{}
}

func (c *collector) stmtList(stmts []js_ast.Stmt) {
	for _, s := range stmts {
		c.stmt(s)
	}
}

func (c *collector) stmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		c.pushScope()
		c.stmtList(s.Stmts)
		c.popScope()

	case *js_ast.SExpr:
		c.expr(s.Value)

	case *js_ast.SLocal:
		for _, d := range s.Decls {
			if d.ValueOrNil.Data != nil {
				c.expr(d.ValueOrNil)
			}
			c.binding(d.Binding)
		}

	case *js_ast.SFunction:
		if s.Fn.Name != nil {
			c.declare(c.a.nameOf(s.Fn.Name.Ref))
		}
		c.fn(s.Fn, nil)

	case *js_ast.SClass:
		c.class(s.Class)

	case *js_ast.SIf:
		c.expr(s.Test)
		c.stmt(s.Yes)
		if s.NoOrNil.Data != nil {
			c.stmt(s.NoOrNil)
		}

	case *js_ast.SFor:
		c.pushScope()
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
		c.popScope()

	case *js_ast.SForIn:
		c.expr(s.Value)
		c.pushScope()
		c.stmt(s.Init)
		c.stmt(s.Body)
		c.popScope()

	case *js_ast.SForOf:
		c.expr(s.Value)
		c.pushScope()
		c.stmt(s.Init)
		c.stmt(s.Body)
		c.popScope()

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
		c.pushScope()
		c.stmtList(s.Block.Stmts)
		c.popScope()
		if s.Catch != nil {
			c.pushScope()
			if s.Catch.BindingOrNil.Data != nil {
				c.binding(s.Catch.BindingOrNil)
			}
			c.stmtList(s.Catch.Block.Stmts)
			c.popScope()
		}
		if s.Finally != nil {
			c.pushScope()
			c.stmtList(s.Finally.Block.Stmts)
			c.popScope()
		}

	case *js_ast.SSwitch:
		c.expr(s.Test)
		c.pushScope()
		for _, cs := range s.Cases {
			if cs.ValueOrNil.Data != nil {
				c.expr(cs.ValueOrNil)
			}
			c.stmtList(cs.Body)
		}
		c.popScope()

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

	case *js_ast.SEnum:
		c.declare(c.a.nameOf(s.Name.Ref))
		for _, v := range s.Values {
			if v.ValueOrNil.Data != nil {
				c.expr(v.ValueOrNil)
			}
		}

	case *js_ast.SNamespace:
		c.declare(c.a.nameOf(s.Name.Ref))
		c.pushScope()
		c.stmtList(s.Stmts)
		c.popScope()

	case *js_ast.SBreak, *js_ast.SContinue, *js_ast.SEmpty, *js_ast.SDebugger,
		*js_ast.SComment, *js_ast.SDirective, *js_ast.STypeScript,
		*js_ast.SImport, *js_ast.SExportClause, *js_ast.SExportFrom,
		*js_ast.SExportStar, *js_ast.SExportEquals, *js_ast.SLazyExport:
		// Imports/exports are indexed separately (see the import/decl table
		// packages); labels and type-only statements contribute no references.
	}
}

func (c *collector) binding(b js_ast.Binding) {
	switch d := b.Data.(type) {
	case *js_ast.BIdentifier:
		c.declare(c.a.nameOf(d.Ref))
	case *js_ast.BArray:
		for _, item := range d.Items {
			c.binding(item.Binding)
			if item.DefaultValueOrNil.Data != nil {
				c.expr(item.DefaultValueOrNil)
			}
		}
	case *js_ast.BObject:
		for _, p := range d.Properties {
			if p.IsComputed {
				c.expr(p.Key)
			}
			c.binding(p.Value)
			if p.DefaultValueOrNil.Data != nil {
				c.expr(p.DefaultValueOrNil)
			}
		}
	}
}

// fn visits a function-like body. ownName, if non-empty, is declared in a
// wrapper scope around the parameter scope so a named function expression
// can reference itself without leaking that name to the caller.
func (c *collector) fn(fn js_ast.Fn, ownName *string) {
	if ownName != nil {
		c.pushScope()
		c.declare(*ownName)
	}
	c.pushScope()
	for _, arg := range fn.Args {
		if arg.DefaultOrNil.Data != nil {
			c.expr(arg.DefaultOrNil)
		}
		c.binding(arg.Binding)
		for _, dec := range arg.Decorators {
			c.expr(dec.Value)
		}
	}
	c.stmtList(fn.Body.Block.Stmts)
	c.popScope()
	if ownName != nil {
		c.popScope()
	}
}

func (c *collector) arrow(e *js_ast.EArrow) {
	c.pushScope()
	for _, arg := range e.Args {
		if arg.DefaultOrNil.Data != nil {
			c.expr(arg.DefaultOrNil)
		}
		c.binding(arg.Binding)
	}
	c.stmtList(e.Body.Block.Stmts)
	c.popScope()
}

func (c *collector) class(class js_ast.Class) {
	if class.ExtendsOrNil.Data != nil {
		c.expr(class.ExtendsOrNil)
	}
	for _, dec := range class.Decorators {
		c.expr(dec.Value)
	}
	var ownName *string
	if class.Name != nil {
		name := c.a.nameOf(class.Name.Ref)
		ownName = &name
		c.declare(name)
	}
	if ownName != nil {
		c.pushScope()
		c.declare(*ownName)
	}
	for _, p := range class.Properties {
		c.property(p)
	}
	if ownName != nil {
		c.popScope()
	}
}

func (c *collector) property(p js_ast.Property) {
	if p.Kind == js_ast.PropertyClassStaticBlock {
		if p.ClassStaticBlock != nil {
			c.pushScope()
			c.stmtList(p.ClassStaticBlock.Block.Stmts)
			c.popScope()
		}
		return
	}
	if p.Flags.Has(js_ast.PropertyIsComputed) && p.Key.Data != nil {
		c.expr(p.Key)
	}
	for _, dec := range p.Decorators {
		c.expr(dec.Value)
	}
	if p.ValueOrNil.Data != nil {
		c.expr(p.ValueOrNil)
	}
	if p.InitializerOrNil.Data != nil {
		c.expr(p.InitializerOrNil)
	}
}

func (c *collector) exprList(exprs []js_ast.Expr) {
	for _, e := range exprs {
		c.expr(e)
	}
}

func (c *collector) expr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		c.reference(c.a.nameOf(e.Ref))
	case *js_ast.EImportIdentifier:
		c.reference(c.a.nameOf(e.Ref))
	case *js_ast.EArray:
		c.exprList(e.Items)
	case *js_ast.EUnary:
		c.expr(e.Value)
	case *js_ast.EBinary:
		c.expr(e.Left)
		c.expr(e.Right)
	case *js_ast.ENew:
		c.expr(e.Target)
		c.exprList(e.Args)
	case *js_ast.ECall:
		c.expr(e.Target)
		c.exprList(e.Args)
	case *js_ast.EDot:
		c.expr(e.Target)
	case *js_ast.EIndex:
		c.expr(e.Target)
		c.expr(e.Index)
	case *js_ast.EArrow:
		c.arrow(e)
	case *js_ast.EFunction:
		var ownName *string
		if e.Fn.Name != nil {
			name := c.a.nameOf(e.Fn.Name.Ref)
			ownName = &name
		}
		c.fn(e.Fn, ownName)
	case *js_ast.EClass:
		c.class(e.Class)
	case *js_ast.EJSXElement:
		if e.TagOrNil.Data != nil {
			c.expr(e.TagOrNil)
		}
		for _, p := range e.Properties {
			c.property(p)
		}
		c.exprList(e.Children)
	case *js_ast.EJSXText:
		// raw text, no references
	case *js_ast.EObject:
		for _, p := range e.Properties {
			c.property(p)
		}
	case *js_ast.ESpread:
		c.expr(e.Value)
	case *js_ast.EAnnotation:
		c.expr(e.Value)
	case *js_ast.ETemplate:
		if e.TagOrNil.Data != nil {
			c.expr(e.TagOrNil)
		}
		for _, part := range e.Parts {
			c.expr(part.Value)
		}
	case *js_ast.EInlinedEnum:
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
	case *js_ast.EImportCall:
		c.expr(e.Expr)
		if e.OptionsOrNil.Data != nil {
			c.expr(e.OptionsOrNil)
		}

	case *js_ast.EBoolean, *js_ast.EMissing, *js_ast.ESuper, *js_ast.ENull,
		*js_ast.EUndefined, *js_ast.EThis, *js_ast.ENewTarget, *js_ast.EImportMeta,
		*js_ast.EPrivateIdentifier, *js_ast.ENameOfSymbol, *js_ast.ENumber,
		*js_ast.EBigInt, *js_ast.EString, *js_ast.ERegExp,
		*js_ast.ERequireString, *js_ast.ERequireResolveString, *js_ast.EImportString:
		// No sub-expressions that can reference an outer-scope name.
	}
}
