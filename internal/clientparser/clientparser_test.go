package clientparser

import "testing"

func TestParseValidModule(t *testing.T) {
	tree, _, err := Parse("/a/b.tsx", `export const x: number = 1;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmts := TopLevelStmts(tree)
	if len(stmts) == 0 {
		t.Fatal("expected at least one top-level statement")
	}
}

func TestParseFailureIsTyped(t *testing.T) {
	_, _, err := Parse("/a/b.tsx", `const x = @@@;`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var parseFailed *ParseFailed
	if pf, ok := err.(*ParseFailed); ok {
		parseFailed = pf
	} else {
		t.Fatalf("expected *ParseFailed, got %T", err)
	}
	if parseFailed.AbsPath != "/a/b.tsx" {
		t.Fatalf("AbsPath = %q", parseFailed.AbsPath)
	}
}

func TestTopLevelStmtsPreservesOrder(t *testing.T) {
	tree, _, err := Parse("/a/b.tsx", "const a = 1;\nconst b = 2;\nconst c = 3;\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmts := TopLevelStmts(tree)
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	for i := 1; i < len(stmts); i++ {
		if stmts[i].Loc.Start <= stmts[i-1].Loc.Start {
			t.Fatalf("statement %d is not after statement %d in source order", i, i-1)
		}
	}
}
