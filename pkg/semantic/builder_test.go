package semantic_test

import (
	"testing"

	"github.com/sandrolain/ecmatool/pkg/parser"
	"github.com/sandrolain/ecmatool/pkg/semantic"
)

func buildFrom(t *testing.T, source string, opts parser.SourceType) *semantic.Semantic {
	t.Helper()
	result := parser.Parse(source, opts)
	if len(result.Errors) != 0 {
		t.Fatalf("Parse(%q) reported errors: %v", source, result.Errors)
	}
	return semantic.Build(result.Program, opts.Module)
}

func symbolNamed(t *testing.T, sem *semantic.Semantic, scope semantic.ScopeID, name string) *semantic.Symbol {
	t.Helper()
	id, ok := sem.Scopes.GetBinding(scope, name)
	if !ok {
		t.Fatalf("no binding named %q in scope %v", name, scope)
	}
	return sem.Symbols.Get(id)
}

// TestVarHoistsPastBlockScope feeds a genuinely parsed program through
// the builder and checks the hoisting rule that matters most: a `var`
// declared inside an `if` block is bound at the enclosing function
// scope, not the block it textually appears in.
func TestVarHoistsPastBlockScope(t *testing.T) {
	source := `function f() {
  if (true) {
    var x = 1;
  }
  return x;
}`
	sem := buildFrom(t, source, parser.ScriptSourceType())

	programScope := semantic.ScopeID(0)
	if sem.Scopes.HasBinding(programScope, "x") {
		t.Fatal("'x' bound at program scope, want it hoisted no further than the function scope")
	}

	var fnScope semantic.ScopeID
	for _, child := range sem.Scopes.Children(programScope) {
		if sem.Scopes.Flags(child).IsVarScope() {
			fnScope = child
		}
	}
	if fnScope == 0 {
		t.Fatal("no function scope found under the program scope")
	}
	sym := symbolNamed(t, sem, fnScope, "x")
	if sym.Flags&semantic.SymbolFunctionScopedVariable == 0 {
		t.Errorf("x's Flags = %v, want SymbolFunctionScopedVariable set", sym.Flags)
	}
}

// TestLetRedeclarationInSameBlockIsDiagnosed confirms the builder
// actually raises a redeclaration diagnostic rather than silently
// overwriting the first binding.
func TestLetRedeclarationInSameBlockIsDiagnosed(t *testing.T) {
	source := `let x = 1;
let x = 2;`
	result := parser.Parse(source, parser.ScriptSourceType())
	if len(result.Errors) != 0 {
		t.Fatalf("Parse reported errors: %v", result.Errors)
	}
	sem := semantic.Build(result.Program, false)
	if !sem.Diagnostics.HasErrors() {
		t.Fatal("expected a redeclaration diagnostic for two 'let x' in the same scope")
	}
}

// TestVarRedeclarationIsAllowed confirms `var` can coexist with another
// `var` of the same name in the same scope, unlike let/const.
func TestVarRedeclarationIsAllowed(t *testing.T) {
	source := `var x = 1;
var x = 2;`
	sem := buildFrom(t, source, parser.ScriptSourceType())
	if sem.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics for two 'var x' in the same scope: %v", sem.Diagnostics.All())
	}
}

// TestCatchParameterIsFunctionScoped exercises the catch-clause special
// case (spec rule 4.6.4): a simple catch parameter is both a
// CatchVariable and a FunctionScopedVariable, so a `var` of the same
// name inside the catch block is allowed.
func TestCatchParameterIsFunctionScoped(t *testing.T) {
	source := `try {
} catch (e) {
  var e = 1;
}`
	sem := buildFrom(t, source, parser.ScriptSourceType())
	if sem.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics for var-shadowing a simple catch parameter: %v", sem.Diagnostics.All())
	}
}

// TestBlockScopedBindingResolvesAcrossNesting checks a reference inside a
// nested block resolves up to a let/const declared in an enclosing
// function scope, rather than being left unresolved.
func TestBlockScopedBindingResolvesAcrossNesting(t *testing.T) {
	source := `function outer() {
  let total = 0;
  {
    total = total + 1;
  }
}`
	sem := buildFrom(t, source, parser.ScriptSourceType())
	if len(sem.References.Unresolved()) != 0 {
		t.Errorf("Unresolved() = %v, want every reference to 'total' resolved", sem.References.Unresolved())
	}
}

// TestUndeclaredReferenceIsUnresolved checks a reference to a name never
// bound anywhere in the program is reported, not silently dropped.
func TestUndeclaredReferenceIsUnresolved(t *testing.T) {
	sem := buildFrom(t, "console.log(missingName);", parser.ScriptSourceType())
	unresolved := sem.References.Unresolved()
	if _, ok := unresolved["missingName"]; !ok {
		t.Errorf("Unresolved() = %v, want an entry for 'missingName'", unresolved)
	}
}

// TestClassDeclarationBindsNameAndOwnScope confirms a class declaration
// both binds its own name in the enclosing scope and opens a distinct
// (strict-mode) scope for its body.
func TestClassDeclarationBindsNameAndOwnScope(t *testing.T) {
	source := `class Box {
  constructor() {
    this.value = 0;
  }
}`
	sem := buildFrom(t, source, parser.ScriptSourceType())
	programScope := semantic.ScopeID(0)
	sym := symbolNamed(t, sem, programScope, "Box")
	if sym.Flags&semantic.SymbolClass == 0 {
		t.Errorf("Box's Flags = %v, want SymbolClass set", sym.Flags)
	}
	var classScope semantic.ScopeID
	for _, child := range sem.Scopes.Children(programScope) {
		if sem.Scopes.Flags(child)&semantic.ScopeClass != 0 {
			classScope = child
		}
	}
	if classScope == 0 {
		t.Fatal("no class scope found under the program scope")
	}
	if !sem.Scopes.Flags(classScope).IsStrict() {
		t.Error("class body scope is not marked strict")
	}
}
