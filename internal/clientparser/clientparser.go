// Package clientparser is a thin wrapper over the kept js_parser that turns
// a parse failure into a typed error instead of routing it through
// js_parser's usual logger.Log channel, the way the rest of this transform
// reports its own failures (see the root package's error types).
package clientparser

import (
	"fmt"

	"github.com/nullstack-dev/useclient-transform/internal/config"
	"github.com/nullstack-dev/useclient-transform/internal/js_ast"
	"github.com/nullstack-dev/useclient-transform/internal/js_parser"
	"github.com/nullstack-dev/useclient-transform/internal/logger"
)

// ParseFailed is returned when the source text could not be parsed as
// TypeScript+JSX. It carries the underlying parser diagnostics so a caller
// can report them verbatim.
type ParseFailed struct {
	AbsPath string
	Msgs    []logger.Msg
}

func (e *ParseFailed) Error() string {
	if len(e.Msgs) == 0 {
		return fmt.Sprintf("%s: failed to parse", e.AbsPath)
	}
	return fmt.Sprintf("%s: %s", e.AbsPath, e.Msgs[0].Data.Text)
}

// Parse parses source (the contents of the file at absPath) as a TypeScript
// module with JSX enabled, targeting a modern ES version. It never lowers
// syntax: config.Options.UnsupportedJSFeatures is left at its zero value, so
// every feature the parser understands is treated as natively supported,
// matching this package's "never transform the language, only the module
// graph" scope.
func Parse(absPath string, source string) (js_ast.AST, logger.Source, error) {
	log := logger.NewDeferLog(logger.DeferLogNoVerboseOrDebug, nil)

	logSource := logger.Source{
		KeyPath:    logger.Path{Text: absPath},
		PrettyPath: absPath,
		Contents:   source,
	}

	options := js_parser.OptionsFromConfig(&config.Options{
		TS: config.TSOptions{
			Parse: true,
		},
		JSX: config.JSXOptions{
			Parse: true,
		},
		Mode: config.ModePassThrough,
	})

	tree, ok := js_parser.Parse(log, logSource, options)
	msgs := log.Done()
	if !ok {
		return js_ast.AST{}, logSource, &ParseFailed{AbsPath: absPath, Msgs: msgs}
	}
	return tree, logSource, nil
}

// TopLevelStmts flattens an AST's parts back into the single ordered
// statement list the rest of this transform operates on. The parser splits
// a module into parts for tree-shaking purposes, but part boundaries never
// reorder statements relative to the source, so concatenating every part's
// statements in part order reconstructs the original top-level statement
// sequence exactly.
func TopLevelStmts(tree js_ast.AST) []js_ast.Stmt {
	var stmts []js_ast.Stmt
	for _, part := range tree.Parts {
		stmts = append(stmts, part.Stmts...)
	}
	return stmts
}
