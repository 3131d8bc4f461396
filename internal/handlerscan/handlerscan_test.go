package handlerscan

import (
	"testing"

	"github.com/nullstack-dev/useclient-transform/internal/clientparser"
)

func scan(t *testing.T, source string) []Handler {
	t.Helper()
	tree, _, err := clientparser.Parse("/a/b.tsx", source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Scan(tree.Symbols, clientparser.TopLevelStmts(tree))
}

func TestScanArrowExpression(t *testing.T) {
	handlers := scan(t, `export const h = () => { "use client"; return 1; };`)
	if len(handlers) != 1 {
		t.Fatalf("expected 1 handler, got %d", len(handlers))
	}
	if handlers[0].Form != FormExpression {
		t.Fatalf("expected FormExpression, got %v", handlers[0].Form)
	}
}

func TestScanTopLevelFunctionDeclaration(t *testing.T) {
	handlers := scan(t, "function h() {\n  \"use client\";\n  return 1;\n}\n")
	if len(handlers) != 1 || handlers[0].Form != FormDeclTopLevel {
		t.Fatalf("expected a single FormDeclTopLevel handler, got %+v", handlers)
	}
	if handlers[0].Name != "h" {
		t.Fatalf("expected name 'h', got %q", handlers[0].Name)
	}
}

func TestScanExportedFunctionDeclaration(t *testing.T) {
	handlers := scan(t, "export function h() {\n  \"use client\";\n  return 1;\n}\n")
	if len(handlers) != 1 || handlers[0].Form != FormDeclExported {
		t.Fatalf("expected a single FormDeclExported handler, got %+v", handlers)
	}
}

func TestScanExportDefaultNamed(t *testing.T) {
	handlers := scan(t, "export default function h() {\n  \"use client\";\n  return 1;\n}\n")
	if len(handlers) != 1 || handlers[0].Form != FormExportDefaultNamed || handlers[0].Name != "h" {
		t.Fatalf("expected a single FormExportDefaultNamed handler named h, got %+v", handlers)
	}
}

func TestScanExportDefaultAnonymous(t *testing.T) {
	handlers := scan(t, "export default function () {\n  \"use client\";\n  return 1;\n}\n")
	if len(handlers) != 1 || handlers[0].Form != FormExportDefaultAnonymous {
		t.Fatalf("expected a single FormExportDefaultAnonymous handler, got %+v", handlers)
	}
}

func TestScanIgnoresNonDirectiveFunctions(t *testing.T) {
	handlers := scan(t, "function plain() { return 1; }\nconst x = () => { return 2; };\n")
	if len(handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(handlers))
	}
}

func TestScanDirectiveMustBeFirstStatement(t *testing.T) {
	handlers := scan(t, `const h = () => { const x = 1; "use client"; return x; };`)
	if len(handlers) != 0 {
		t.Fatalf("expected no handlers when directive is not the first statement, got %d", len(handlers))
	}
}

func TestScanNestedHandlerInsideNonHandlerFunction(t *testing.T) {
	handlers := scan(t, `
		function outer() {
			const inner = () => { "use client"; return 1; };
			return inner;
		}
	`)
	if len(handlers) != 1 {
		t.Fatalf("expected to find the nested handler, got %d", len(handlers))
	}
}
