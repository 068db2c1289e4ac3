// Package lint shapes the contract a lint rule runs against: a
// LintContext carrying the program, its side tables, and the ancestor
// chain a visitor needs to answer questions like "am I inside an IIFE",
// plus the Rule/RuleRegistry pair a host (an editor plugin, a CI check)
// drives rules through. The rule catalogue itself is out of scope here;
// this package only proves the contract is sufficient for one rule that
// reads the lexer's side tables and one that walks the AST.
package lint

import (
	"fmt"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
	"github.com/sandrolain/ecmatool/pkg/span"
)

// LintContext is handed to every Rule for one program. It bundles the
// parsed AST with the side tables (irregular whitespace, comments) a
// rule may need without re-lexing the source itself.
type LintContext struct {
	Program             *ast.Program
	Source              string
	IrregularWhitespace  []span.Span
	Comments             []ast.Comment
	Sink                 *diagnostic.Sink
}

// NewLintContext builds a LintContext from a parsed program and the
// lexer side tables produced alongside it.
func NewLintContext(program *ast.Program, source string, irregularWhitespace []span.Span, comments []ast.Comment) *LintContext {
	return &LintContext{
		Program:             program,
		Source:              source,
		IrregularWhitespace: irregularWhitespace,
		Comments:            comments,
		Sink:                diagnostic.NewSink(),
	}
}

// Report pushes a warning-severity diagnostic at primary, the severity
// every lint finding uses since a rule never blocks parsing.
func (c *LintContext) Report(code diagnostic.Code, primary span.Span, format string, args ...any) {
	c.Sink.Push(*diagnostic.New(diagnostic.SeverityWarning, code, fmt.Sprintf(format, args...), primary))
}

// Rule is a single lint check. Run is called with the context already
// populated; a rule that needs a full traversal drives ast.Walk from Run,
// while a side-table rule (like NoIrregularWhitespace below) can ignore
// the AST entirely and answer directly from LintContext's tables.
type Rule interface {
	// Name is the rule's stable identifier, e.g. "no-irregular-whitespace".
	Name() string
	// Run executes the rule against ctx, pushing findings onto ctx.Sink.
	Run(ctx *LintContext)
}

// RuleRegistry holds the set of rules a host wants to run, in
// registration order.
type RuleRegistry struct {
	rules []Rule
}

// NewRuleRegistry creates an empty registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{}
}

// Register appends rule to the registry.
func (r *RuleRegistry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Rules returns the registered rules, in registration order.
func (r *RuleRegistry) Rules() []Rule {
	return r.rules
}

// RunAll runs every registered rule against ctx in order.
func (r *RuleRegistry) RunAll(ctx *LintContext) {
	for _, rule := range r.rules {
		rule.Run(ctx)
	}
}
