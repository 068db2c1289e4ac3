package lint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/lint"
	"github.com/sandrolain/ecmatool/pkg/span"
)

func newImport(source string) *ast.ImportDeclaration {
	return &ast.ImportDeclaration{Source: source}
}

func TestNoIrregularWhitespaceReportsEverySpan(t *testing.T) {
	spans := []span.Span{span.New(4, 5), span.New(20, 21)}
	ctx := lint.NewLintContext(&ast.Program{}, "var x = 1;", spans, nil)

	lint.NoIrregularWhitespace{}.Run(ctx)

	got := ctx.Sink.All()
	if len(got) != len(spans) {
		t.Fatalf("expected %d findings, got %d: %v", len(spans), len(got), got)
	}
	wantSpans := []span.Span{spans[0], spans[1]}
	var gotSpans []span.Span
	for _, d := range got {
		gotSpans = append(gotSpans, d.PrimarySpan)
	}
	if diff := cmp.Diff(wantSpans, gotSpans, cmpopts.EquateComparable(span.Span{})); diff != "" {
		t.Fatalf("reported spans mismatch (-want +got):\n%s", diff)
	}
}

func TestImportOrderFlagsOutOfOrderImports(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Statement{
			newImport("zeta"),
			newImport("alpha"),
		},
	}
	ctx := lint.NewLintContext(program, "", nil, nil)

	lint.ImportOrder{}.Run(ctx)

	got := ctx.Sink.All()
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(got), got)
	}
	if got[0].Severity != diagnostic.SeverityWarning {
		t.Fatalf("expected a warning, got %v", got[0].Severity)
	}
}

func TestImportOrderAcceptsSortedImports(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Statement{
			newImport("alpha"),
			newImport("zeta"),
		},
	}
	ctx := lint.NewLintContext(program, "", nil, nil)

	lint.ImportOrder{}.Run(ctx)

	if ctx.Sink.Len() != 0 {
		t.Fatalf("expected no findings, got %v", ctx.Sink.All())
	}
}

func TestRuleRegistryRunsEveryRegisteredRule(t *testing.T) {
	reg := lint.NewRuleRegistry()
	reg.Register(lint.NoIrregularWhitespace{})
	reg.Register(lint.ImportOrder{})
	if len(reg.Rules()) != 2 {
		t.Fatalf("expected 2 registered rules, got %d", len(reg.Rules()))
	}

	program := &ast.Program{
		Body: []ast.Statement{newImport("b"), newImport("a")},
	}
	ctx := lint.NewLintContext(program, "", []span.Span{span.New(5, 6)}, nil)
	reg.RunAll(ctx)

	if ctx.Sink.Len() != 2 {
		t.Fatalf("expected both rules to report, got %d findings: %v", ctx.Sink.Len(), ctx.Sink.All())
	}
}
