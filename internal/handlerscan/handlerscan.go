// Package handlerscan walks an entire module looking for every block-bodied
// arrow function or function expression/declaration whose first statement
// is the `"use client"` directive prologue.
package handlerscan

import (
	"github.com/nullstack-dev/useclient-transform/internal/helpers"
	"github.com/nullstack-dev/useclient-transform/internal/js_ast"
)

// Form records the syntactic context a handler was found in, which decides
// how the replacement planner (internal/replace) rewrites it.
type Form uint8

const (
	// An arrow or function expression sitting in an arbitrary expression
	// position (an argument, a variable initializer, an object value, ...).
	FormExpression Form = iota
	// A bare top-level function declaration.
	FormDeclTopLevel
	// A top-level function declaration prefixed with `export`.
	FormDeclExported
	// `export default function Name() { ... }`.
	FormExportDefaultNamed
	// `export default function () { ... }`.
	FormExportDefaultAnonymous
)

// Handler is one qualifying function, normalized to a common shape whether
// it came from an arrow function or from a `function` expression/declaration.
type Handler struct {
	Form Form

	Args       []js_ast.Arg
	Body       js_ast.FnBody
	IsAsync    bool
	HasRestArg bool
	IsArrow    bool

	// Name is the declared function name, if any. Empty for arrows and for
	// anonymous function expressions/default exports.
	Name string
	// NameRef is the symbol reference backing Name, valid only when HasName
	// is true. Kept alongside Name so the synthesizer can reproduce a named
	// function expression that can still refer to itself recursively.
	NameRef js_ast.Ref
	HasName bool

	// RangeStart/RangeEnd bound the source text this handler occupies,
	// before the paren-widening and trailing-trim adjustments of
	// internal/spanutil are applied.
	RangeStart int32
	RangeEnd   int32

	// CallableStart is the start of the function/arrow literal itself,
	// which for a top-level `function` declaration sits after RangeStart
	// (RangeStart covers the whole statement, including any "export" or
	// "export default" prefix the replacement planner needs but a
	// synthesized chunk doesn't). Equal to RangeStart for every other
	// form, where the handler is already an expression.
	CallableStart int32
}

// Scan finds every handler reachable from stmts, in source order.
func Scan(symbols []js_ast.Symbol, stmts []js_ast.Stmt) []Handler {
	s := &scanner{symbols: symbols, seen: make(map[*js_ast.Fn]bool)}
	for _, stmt := range stmts {
		s.stmt(stmt)
	}
	return s.out
}

type scanner struct {
	symbols []js_ast.Symbol
	out     []Handler
	seen    map[*js_ast.Fn]bool
}

func (s *scanner) nameOf(ref js_ast.Ref) string {
	if int(ref.InnerIndex) < len(s.symbols) {
		return s.symbols[ref.InnerIndex].OriginalName
	}
	return ""
}

func isDirectivePrologue(body js_ast.FnBody, directive string) bool {
	if len(body.Block.Stmts) == 0 {
		return false
	}
	switch first := body.Block.Stmts[0].Data.(type) {
	case *js_ast.SDirective:
		// The parser recognizes a leading string-literal statement as a
		// directive prologue itself.
		return helpers.UTF16EqualsString(first.Value, directive)
	case *js_ast.SExpr:
		if str, ok := first.Value.Data.(*js_ast.EString); ok {
			return helpers.UTF16EqualsString(str.Value, directive)
		}
	}
	return false
}

func (s *scanner) stmt(stmt js_ast.Stmt) {
	switch st := stmt.Data.(type) {
	case *js_ast.SFunction:
		if s.seen[&st.Fn] {
			return
		}
		s.seen[&st.Fn] = true
		if isDirectivePrologue(st.Fn.Body, "use client") {
			form := FormDeclTopLevel
			if st.IsExport {
				form = FormDeclExported
			}
			name := ""
			var nameRef js_ast.Ref
			hasName := false
			if st.Fn.Name != nil {
				name = s.nameOf(st.Fn.Name.Ref)
				nameRef = st.Fn.Name.Ref
				hasName = true
			}
			s.emit(Handler{
				Form: form, Args: st.Fn.Args, Body: st.Fn.Body, IsAsync: st.Fn.IsAsync,
				HasRestArg: st.Fn.HasRestArg, Name: name, NameRef: nameRef, HasName: hasName,
				RangeStart: stmt.Loc.Start, RangeEnd: bodyEnd(st.Fn.Body),
				CallableStart: st.Fn.KeywordLoc.Start,
			})
		} else {
			s.walkFn(st.Fn)
		}

	case *js_ast.SExportDefault:
		if fn, ok := st.Value.Data.(*js_ast.SFunction); ok {
			if isDirectivePrologue(fn.Fn.Body, "use client") {
				form := FormExportDefaultAnonymous
				name := ""
				var nameRef js_ast.Ref
				hasName := false
				if fn.Fn.Name != nil {
					form = FormExportDefaultNamed
					name = s.nameOf(fn.Fn.Name.Ref)
					nameRef = fn.Fn.Name.Ref
					hasName = true
				}
				s.emit(Handler{
					Form: form, Args: fn.Fn.Args, Body: fn.Fn.Body, IsAsync: fn.Fn.IsAsync,
					HasRestArg: fn.Fn.HasRestArg, Name: name, NameRef: nameRef, HasName: hasName,
					RangeStart: stmt.Loc.Start, RangeEnd: bodyEnd(fn.Fn.Body),
					CallableStart: fn.Fn.KeywordLoc.Start,
				})
				return
			}
			s.walkFn(fn.Fn)
			return
		}
		s.stmt(st.Value)

	case *js_ast.SBlock:
		for _, child := range st.Stmts {
			s.stmt(child)
		}
	case *js_ast.SExpr:
		s.expr(st.Value)
	case *js_ast.SLocal:
		for _, d := range s.declValues(st.Decls) {
			s.expr(d)
		}
	case *js_ast.SClass:
		s.classExprLike(st.Class)
	case *js_ast.SIf:
		s.expr(st.Test)
		s.stmt(st.Yes)
		if st.NoOrNil.Data != nil {
			s.stmt(st.NoOrNil)
		}
	case *js_ast.SFor:
		if st.InitOrNil.Data != nil {
			s.stmt(st.InitOrNil)
		}
		if st.TestOrNil.Data != nil {
			s.expr(st.TestOrNil)
		}
		if st.UpdateOrNil.Data != nil {
			s.expr(st.UpdateOrNil)
		}
		s.stmt(st.Body)
	case *js_ast.SForIn:
		s.expr(st.Value)
		s.stmt(st.Init)
		s.stmt(st.Body)
	case *js_ast.SForOf:
		s.expr(st.Value)
		s.stmt(st.Init)
		s.stmt(st.Body)
	case *js_ast.SDoWhile:
		s.stmt(st.Body)
		s.expr(st.Test)
	case *js_ast.SWhile:
		s.expr(st.Test)
		s.stmt(st.Body)
	case *js_ast.SWith:
		s.expr(st.Value)
		s.stmt(st.Body)
	case *js_ast.STry:
		for _, child := range st.Block.Stmts {
			s.stmt(child)
		}
		if st.Catch != nil {
			for _, child := range st.Catch.Block.Stmts {
				s.stmt(child)
			}
		}
		if st.Finally != nil {
			for _, child := range st.Finally.Block.Stmts {
				s.stmt(child)
			}
		}
	case *js_ast.SSwitch:
		s.expr(st.Test)
		for _, c := range st.Cases {
			if c.ValueOrNil.Data != nil {
				s.expr(c.ValueOrNil)
			}
			for _, child := range c.Body {
				s.stmt(child)
			}
		}
	case *js_ast.SReturn:
		if st.ValueOrNil.Data != nil {
			s.expr(st.ValueOrNil)
		}
	case *js_ast.SThrow:
		s.expr(st.Value)
	case *js_ast.SLabel:
		s.stmt(st.Stmt)
	}
}

func (s *scanner) declValues(decls []js_ast.Decl) []js_ast.Expr {
	var out []js_ast.Expr
	for _, d := range decls {
		if d.ValueOrNil.Data != nil {
			out = append(out, d.ValueOrNil)
		}
	}
	return out
}

// walkFn descends into a function body that did not itself qualify, looking
// for handlers nested inside it.
func (s *scanner) walkFn(fn js_ast.Fn) {
	for _, arg := range fn.Args {
		if arg.DefaultOrNil.Data != nil {
			s.expr(arg.DefaultOrNil)
		}
	}
	for _, child := range fn.Body.Block.Stmts {
		s.stmt(child)
	}
}

func (s *scanner) classExprLike(class js_ast.Class) {
	if class.ExtendsOrNil.Data != nil {
		s.expr(class.ExtendsOrNil)
	}
	for _, p := range class.Properties {
		if p.Kind == js_ast.PropertyClassStaticBlock {
			if p.ClassStaticBlock != nil {
				for _, child := range p.ClassStaticBlock.Block.Stmts {
					s.stmt(child)
				}
			}
			continue
		}
		if p.Flags.Has(js_ast.PropertyIsComputed) && p.Key.Data != nil {
			s.expr(p.Key)
		}
		if p.ValueOrNil.Data != nil {
			s.expr(p.ValueOrNil)
		}
		if p.InitializerOrNil.Data != nil {
			s.expr(p.InitializerOrNil)
		}
	}
}

func (s *scanner) expr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EArrow:
		if isDirectivePrologue(e.Body, "use client") {
			s.emit(Handler{
				Form: FormExpression, Args: e.Args, Body: e.Body, IsAsync: e.IsAsync,
				HasRestArg: e.HasRestArg, IsArrow: true,
				RangeStart: expr.Loc.Start, RangeEnd: bodyEnd(e.Body),
				CallableStart: expr.Loc.Start,
			})
			return
		}
		for _, arg := range e.Args {
			if arg.DefaultOrNil.Data != nil {
				s.expr(arg.DefaultOrNil)
			}
		}
		for _, child := range e.Body.Block.Stmts {
			s.stmt(child)
		}

	case *js_ast.EFunction:
		if s.seen[&e.Fn] {
			return
		}
		s.seen[&e.Fn] = true
		if isDirectivePrologue(e.Fn.Body, "use client") {
			name := ""
			var nameRef js_ast.Ref
			hasName := false
			if e.Fn.Name != nil {
				name = s.nameOf(e.Fn.Name.Ref)
				nameRef = e.Fn.Name.Ref
				hasName = true
			}
			s.emit(Handler{
				Form: FormExpression, Args: e.Fn.Args, Body: e.Fn.Body, IsAsync: e.Fn.IsAsync,
				HasRestArg: e.Fn.HasRestArg, Name: name, NameRef: nameRef, HasName: hasName,
				RangeStart: expr.Loc.Start, RangeEnd: bodyEnd(e.Fn.Body),
				CallableStart: expr.Loc.Start,
			})
			return
		}
		s.walkFn(e.Fn)

	case *js_ast.EClass:
		s.classExprLike(e.Class)
	case *js_ast.EArray:
		for _, item := range e.Items {
			s.expr(item)
		}
	case *js_ast.EUnary:
		s.expr(e.Value)
	case *js_ast.EBinary:
		s.expr(e.Left)
		s.expr(e.Right)
	case *js_ast.ENew:
		s.expr(e.Target)
		for _, a := range e.Args {
			s.expr(a)
		}
	case *js_ast.ECall:
		s.expr(e.Target)
		for _, a := range e.Args {
			s.expr(a)
		}
	case *js_ast.EDot:
		s.expr(e.Target)
	case *js_ast.EIndex:
		s.expr(e.Target)
		s.expr(e.Index)
	case *js_ast.EJSXElement:
		if e.TagOrNil.Data != nil {
			s.expr(e.TagOrNil)
		}
		for _, p := range e.Properties {
			if p.ValueOrNil.Data != nil {
				s.expr(p.ValueOrNil)
			}
		}
		for _, child := range e.Children {
			s.expr(child)
		}
	case *js_ast.EObject:
		for _, p := range e.Properties {
			if p.ValueOrNil.Data != nil {
				s.expr(p.ValueOrNil)
			}
			if p.InitializerOrNil.Data != nil {
				s.expr(p.InitializerOrNil)
			}
		}
	case *js_ast.ESpread:
		s.expr(e.Value)
	case *js_ast.EAnnotation:
		s.expr(e.Value)
	case *js_ast.ETemplate:
		for _, part := range e.Parts {
			s.expr(part.Value)
		}
	case *js_ast.EAwait:
		s.expr(e.Value)
	case *js_ast.EYield:
		if e.ValueOrNil.Data != nil {
			s.expr(e.ValueOrNil)
		}
	case *js_ast.EIf:
		s.expr(e.Test)
		s.expr(e.Yes)
		s.expr(e.No)
	case *js_ast.EImportCall:
		s.expr(e.Expr)
		if e.OptionsOrNil.Data != nil {
			s.expr(e.OptionsOrNil)
		}
	}
}

func (s *scanner) emit(h Handler) {
	s.out = append(s.out, h)
}

// bodyEnd returns the byte offset just past a function/arrow body's closing
// brace, which is also the end of the whole function/arrow expression for
// any block-bodied callable.
func bodyEnd(body js_ast.FnBody) int32 {
	return body.Block.CloseBraceLoc.Start + 1
}
