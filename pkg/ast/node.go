// Package ast defines the closed set of ECMAScript/TypeScript/JSX node
// types, the Span-plus-NodeID identity every structural node carries, and
// the visitor protocol that walks them. Node shapes follow the same
// "small struct with a Span field, embedded in a sum-type interface"
// approach gosonata's pkg/types/ast.go used for the JSONata AST, scaled
// up to the much larger ECMAScript grammar.
package ast

import "github.com/sandrolain/ecmatool/pkg/span"

// NodeID uniquely identifies a structural AST node within one Program's
// arena.
type NodeID uint32

// NoNodeID marks a node that has not yet been registered in a NodeTable
// (e.g. during parsing, before the semantic pass assigns ids).
const NoNodeID NodeID = 0

// Kind tags a node with its concrete grammar production, letting a
// generic Node reference be promoted to a concrete type via a type
// switch without reflection.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Program & modules.
	KindProgram
	KindImportDeclaration
	KindExportNamedDeclaration
	KindExportDefaultDeclaration
	KindExportAllDeclaration

	// Statements.
	KindBlockStatement
	KindExpressionStatement
	KindEmptyStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindSwitchStatement
	KindSwitchCase
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindLabeledStatement
	KindDebuggerStatement
	KindWithStatement

	// Declarations.
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindStaticBlock
	KindTSInterfaceDeclaration
	KindTSTypeAliasDeclaration
	KindTSEnumDeclaration
	KindTSModuleDeclaration

	// Expressions.
	KindIdentifier
	KindPrivateIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegExpLiteral
	KindBigIntLiteral
	KindTemplateLiteral
	KindTaggedTemplateExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindSequenceExpression
	KindSpreadElement
	KindYieldExpression
	KindAwaitExpression
	KindThisExpression
	KindSuperExpression
	KindParenthesizedExpression
	KindTSAsExpression
	KindTSSatisfiesExpression
	KindTSNonNullExpression
	KindTSTypeAssertion

	// Patterns.
	KindArrayPattern
	KindObjectPattern
	KindAssignmentPattern
	KindRestElement

	// JSX.
	KindJSXElement
	KindJSXFragment
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXExpressionContainer
	KindJSXText
	KindJSXIdentifier
	KindJSXMemberExpression

	// TypeScript type annotations.
	KindTSTypeAnnotation
	KindTSTypeReference
	KindTSUnionType
	KindTSIntersectionType
	KindTSFunctionType
	KindTSArrayType
	KindTSTupleType
	KindTSLiteralType
	KindTSTypeParameter
	KindTSTypeParameterDeclaration

	// Error recovery.
	KindErrorExpression
	KindErrorStatement
)

// Node is implemented by every structural AST node. Span returns the
// node's half-open byte range; Kind returns its grammar tag.
type Node interface {
	Span() span.Span
	Kind() Kind
}

// base is embedded by every concrete node to provide Span()/Kind() and a
// NodeID slot, mirroring gosonata's embedded-struct approach to shared
// node fields.
type base struct {
	span span.Span
	id   NodeID
}

func (b *base) Span() span.Span      { return b.span }
func (b *base) ID() NodeID           { return b.id }
func (b *base) SetID(id NodeID)      { b.id = id }
func (b *base) SetSpan(sp span.Span) { b.span = sp }

// Expression is any node valid in expression position.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node valid in statement position.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a statement that introduces one or more bindings.
type Declaration interface {
	Statement
	declarationNode()
}

// Pattern is any node valid in binding position (destructuring targets,
// parameter lists, catch clause parameters).
type Pattern interface {
	Node
	patternNode()
}

// JSXChild is any node valid as a child of a JSXElement or JSXFragment.
type JSXChild interface {
	Node
	jsxChildNode()
}

// TypeAnnotation is any node in TypeScript type position.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// --- Program -----------------------------------------------------------

type SourceKind uint8

const (
	SourceScript SourceKind = iota
	SourceModule
)

// Program is the root of an AST: every parse produces exactly one.
type Program struct {
	base
	Kind_      SourceKind
	Body       []Statement
	Directives []string // "use strict" and similar prologue directives
}

func (n *Program) Kind() Kind { return KindProgram }

// --- Statements ----------------------------------------------------------

type BlockStatement struct {
	base
	Body []Statement
}

func (n *BlockStatement) Kind() Kind       { return KindBlockStatement }
func (n *BlockStatement) statementNode()   {}

type ExpressionStatement struct {
	base
	Expr Expression
}

func (n *ExpressionStatement) Kind() Kind     { return KindExpressionStatement }
func (n *ExpressionStatement) statementNode() {}

type EmptyStatement struct{ base }

func (n *EmptyStatement) Kind() Kind     { return KindEmptyStatement }
func (n *EmptyStatement) statementNode() {}

type IfStatement struct {
	base
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else-branch
}

func (n *IfStatement) Kind() Kind     { return KindIfStatement }
func (n *IfStatement) statementNode() {}

type ForStatement struct {
	base
	Init   Node // VariableDeclaration or Expression, nil if absent
	Test   Expression
	Update Expression
	Body   Statement
}

func (n *ForStatement) Kind() Kind     { return KindForStatement }
func (n *ForStatement) statementNode() {}

type ForInStatement struct {
	base
	Left  Node // VariableDeclaration or Pattern
	Right Expression
	Body  Statement
}

func (n *ForInStatement) Kind() Kind     { return KindForInStatement }
func (n *ForInStatement) statementNode() {}

type ForOfStatement struct {
	base
	Left  Node
	Right Expression
	Body  Statement
	Await bool
}

func (n *ForOfStatement) Kind() Kind     { return KindForOfStatement }
func (n *ForOfStatement) statementNode() {}

type WhileStatement struct {
	base
	Test Expression
	Body Statement
}

func (n *WhileStatement) Kind() Kind     { return KindWhileStatement }
func (n *WhileStatement) statementNode() {}

type DoWhileStatement struct {
	base
	Body Statement
	Test Expression
}

func (n *DoWhileStatement) Kind() Kind     { return KindDoWhileStatement }
func (n *DoWhileStatement) statementNode() {}

type SwitchCase struct {
	base
	Test       Expression // nil for default
	Consequent []Statement
}

func (n *SwitchCase) Kind() Kind { return KindSwitchCase }

type SwitchStatement struct {
	base
	Discriminant Expression
	Cases        []*SwitchCase
}

func (n *SwitchStatement) Kind() Kind     { return KindSwitchStatement }
func (n *SwitchStatement) statementNode() {}

type ReturnStatement struct {
	base
	Argument Expression // nil for bare `return;`
}

func (n *ReturnStatement) Kind() Kind     { return KindReturnStatement }
func (n *ReturnStatement) statementNode() {}

type BreakStatement struct {
	base
	Label string
}

func (n *BreakStatement) Kind() Kind     { return KindBreakStatement }
func (n *BreakStatement) statementNode() {}

type ContinueStatement struct {
	base
	Label string
}

func (n *ContinueStatement) Kind() Kind     { return KindContinueStatement }
func (n *ContinueStatement) statementNode() {}

type ThrowStatement struct {
	base
	Argument Expression
}

func (n *ThrowStatement) Kind() Kind     { return KindThrowStatement }
func (n *ThrowStatement) statementNode() {}

type CatchClause struct {
	base
	Param Pattern // nil for parameterless catch
	Body  *BlockStatement
}

func (n *CatchClause) Kind() Kind { return KindCatchClause }

type TryStatement struct {
	base
	Block     *BlockStatement
	Handler   *CatchClause // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (n *TryStatement) Kind() Kind     { return KindTryStatement }
func (n *TryStatement) statementNode() {}

type LabeledStatement struct {
	base
	Label string
	Body  Statement
}

func (n *LabeledStatement) Kind() Kind     { return KindLabeledStatement }
func (n *LabeledStatement) statementNode() {}

type DebuggerStatement struct{ base }

func (n *DebuggerStatement) Kind() Kind     { return KindDebuggerStatement }
func (n *DebuggerStatement) statementNode() {}

type WithStatement struct {
	base
	Object Expression
	Body   Statement
}

func (n *WithStatement) Kind() Kind     { return KindWithStatement }
func (n *WithStatement) statementNode() {}

// ErrorStatement is a placeholder node for a statement that failed to
// parse. pkg/parser never constructs one; its recovery produces
// ErrorExpression nodes instead.
type ErrorStatement struct{ base }

func (n *ErrorStatement) Kind() Kind     { return KindErrorStatement }
func (n *ErrorStatement) statementNode() {}

// --- Declarations --------------------------------------------------------

type VariableKind uint8

const (
	VarVar VariableKind = iota
	VarLet
	VarConst
	VarUsing
)

type VariableDeclarator struct {
	base
	ID   Pattern
	Init Expression // nil if uninitialized
}

func (n *VariableDeclarator) Kind() Kind { return KindVariableDeclarator }

type VariableDeclaration struct {
	base
	VarKind      VariableKind
	Declarations []*VariableDeclarator
}

func (n *VariableDeclaration) Kind() Kind      { return KindVariableDeclaration }
func (n *VariableDeclaration) statementNode()  {}
func (n *VariableDeclaration) declarationNode() {}

type Function struct {
	base
	ID        *Identifier // nil for anonymous function expressions
	Params    []Pattern
	Body      *BlockStatement // nil for TS ambient declarations
	Generator bool
	Async     bool
	TypeParams *TSTypeParameterDeclaration
	ReturnType TypeAnnotation
}

func (n *Function) Kind() Kind      { return KindFunctionDeclaration }
func (n *Function) statementNode()  {}
func (n *Function) declarationNode() {}
func (n *Function) expressionNode() {} // also used as a FunctionExpression value

type PropertyKind uint8

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
	PropertyMethod
)

type MethodDefinition struct {
	base
	Key      Expression
	Value    *Function
	Kind_    PropertyKind
	Static   bool
	Computed bool
}

func (n *MethodDefinition) Kind() Kind { return KindMethodDefinition }

type PropertyDefinition struct {
	base
	Key      Expression
	Value    Expression // nil for declare-only fields
	Static   bool
	Computed bool
	Readonly bool
}

func (n *PropertyDefinition) Kind() Kind { return KindPropertyDefinition }

type StaticBlock struct {
	base
	Body []Statement
}

func (n *StaticBlock) Kind() Kind { return KindStaticBlock }

type ClassBody struct {
	base
	Body []Node // *MethodDefinition | *PropertyDefinition | *StaticBlock
}

func (n *ClassBody) Kind() Kind { return KindClassBody }

type Class struct {
	base
	ID         *Identifier // nil for anonymous class expressions
	SuperClass Expression
	Body       *ClassBody
	TypeParams *TSTypeParameterDeclaration
}

func (n *Class) Kind() Kind       { return KindClassDeclaration }
func (n *Class) statementNode()   {}
func (n *Class) declarationNode() {}
func (n *Class) expressionNode()  {}

// --- Modules ---------------------------------------------------------------

type ImportSpecifier struct {
	Imported string
	Local    string
	TypeOnly bool
}

type ImportDeclaration struct {
	base
	Specifiers     []ImportSpecifier
	Source         string
	DefaultLocal   string // "" if no default import
	NamespaceLocal string // "" if no `* as ns` import
	TypeOnly       bool
}

func (n *ImportDeclaration) Kind() Kind       { return KindImportDeclaration }
func (n *ImportDeclaration) statementNode()   {}
func (n *ImportDeclaration) declarationNode() {}

type ExportSpecifier struct {
	Local    string
	Exported string
}

type ExportNamedDeclaration struct {
	base
	Declaration Declaration // nil when exporting a specifier list
	Specifiers  []ExportSpecifier
	Source      string // "" unless this is a re-export
	TypeOnly    bool
}

func (n *ExportNamedDeclaration) Kind() Kind     { return KindExportNamedDeclaration }
func (n *ExportNamedDeclaration) statementNode() {}

type ExportDefaultDeclaration struct {
	base
	Declaration Node // Declaration or Expression
}

func (n *ExportDefaultDeclaration) Kind() Kind     { return KindExportDefaultDeclaration }
func (n *ExportDefaultDeclaration) statementNode() {}

type ExportAllDeclaration struct {
	base
	Source  string
	Exported string // "" for `export * from`, set for `export * as ns from`
}

func (n *ExportAllDeclaration) Kind() Kind     { return KindExportAllDeclaration }
func (n *ExportAllDeclaration) statementNode() {}

// --- Expressions -----------------------------------------------------------

type Identifier struct {
	base
	Name string
}

func (n *Identifier) Kind() Kind      { return KindIdentifier }
func (n *Identifier) expressionNode() {}
func (n *Identifier) patternNode()    {}

type PrivateIdentifier struct {
	base
	Name string
}

func (n *PrivateIdentifier) Kind() Kind      { return KindPrivateIdentifier }
func (n *PrivateIdentifier) expressionNode() {}

type StringLiteral struct {
	base
	Value string
}

func (n *StringLiteral) Kind() Kind      { return KindStringLiteral }
func (n *StringLiteral) expressionNode() {}

type NumericLiteral struct {
	base
	Value float64
	Raw   string
}

func (n *NumericLiteral) Kind() Kind      { return KindNumericLiteral }
func (n *NumericLiteral) expressionNode() {}

type BigIntLiteral struct {
	base
	Raw string // digits without trailing 'n'
}

func (n *BigIntLiteral) Kind() Kind      { return KindBigIntLiteral }
func (n *BigIntLiteral) expressionNode() {}

type BooleanLiteral struct {
	base
	Value bool
}

func (n *BooleanLiteral) Kind() Kind      { return KindBooleanLiteral }
func (n *BooleanLiteral) expressionNode() {}

type NullLiteral struct{ base }

func (n *NullLiteral) Kind() Kind      { return KindNullLiteral }
func (n *NullLiteral) expressionNode() {}

type RegExpLiteral struct {
	base
	Pattern string
	Flags   string
}

func (n *RegExpLiteral) Kind() Kind      { return KindRegExpLiteral }
func (n *RegExpLiteral) expressionNode() {}

// TemplateElement is one literal chunk of a template literal (cooked and
// raw forms, per ECMA-262 §13.2.8).
type TemplateElement struct {
	Cooked string
	Raw    string
	Tail   bool
}

type TemplateLiteral struct {
	base
	Quasis      []TemplateElement
	Expressions []Expression
}

func (n *TemplateLiteral) Kind() Kind      { return KindTemplateLiteral }
func (n *TemplateLiteral) expressionNode() {}

type TaggedTemplateExpression struct {
	base
	Tag     Expression
	Literal *TemplateLiteral
}

func (n *TaggedTemplateExpression) Kind() Kind      { return KindTaggedTemplateExpression }
func (n *TaggedTemplateExpression) expressionNode() {}

type SpreadElement struct {
	base
	Argument Expression
}

func (n *SpreadElement) Kind() Kind      { return KindSpreadElement }
func (n *SpreadElement) expressionNode() {}

type ArrayExpression struct {
	base
	Elements []Expression // nil entries represent elisions
}

func (n *ArrayExpression) Kind() Kind      { return KindArrayExpression }
func (n *ArrayExpression) expressionNode() {}

type Property struct {
	base
	Key      Expression
	Value    Expression
	Kind_    PropertyKind
	Computed bool
	Shorthand bool
}

func (n *Property) Kind() Kind { return KindProperty }

type ObjectExpression struct {
	base
	Properties []Node // *Property | *SpreadElement
}

func (n *ObjectExpression) Kind() Kind      { return KindObjectExpression }
func (n *ObjectExpression) expressionNode() {}

type ArrowFunctionExpression struct {
	base
	Params       []Pattern
	Body         Node // *BlockStatement or Expression (concise body)
	Async        bool
	ExpressionBody bool
	ReturnType   TypeAnnotation
}

func (n *ArrowFunctionExpression) Kind() Kind      { return KindArrowFunctionExpression }
func (n *ArrowFunctionExpression) expressionNode() {}

type UnaryOperator string

type UnaryExpression struct {
	base
	Operator UnaryOperator
	Argument Expression
}

func (n *UnaryExpression) Kind() Kind      { return KindUnaryExpression }
func (n *UnaryExpression) expressionNode() {}

type UpdateExpression struct {
	base
	Operator string // "++" | "--"
	Argument Expression
	Prefix   bool
}

func (n *UpdateExpression) Kind() Kind      { return KindUpdateExpression }
func (n *UpdateExpression) expressionNode() {}

type BinaryExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpression) Kind() Kind      { return KindBinaryExpression }
func (n *BinaryExpression) expressionNode() {}

type LogicalExpression struct {
	base
	Operator string // "&&" | "||" | "??"
	Left     Expression
	Right    Expression
}

func (n *LogicalExpression) Kind() Kind      { return KindLogicalExpression }
func (n *LogicalExpression) expressionNode() {}

type AssignmentExpression struct {
	base
	Operator string
	Left     Node // Pattern or Expression (member expression target)
	Right    Expression
}

func (n *AssignmentExpression) Kind() Kind      { return KindAssignmentExpression }
func (n *AssignmentExpression) expressionNode() {}

type ConditionalExpression struct {
	base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (n *ConditionalExpression) Kind() Kind      { return KindConditionalExpression }
func (n *ConditionalExpression) expressionNode() {}

type Argument interface {
	Expression
}

type CallExpression struct {
	base
	Callee   Expression
	Args     []Expression // elements may be *SpreadElement
	Optional bool         // true for `?.()`
}

func (n *CallExpression) Kind() Kind      { return KindCallExpression }
func (n *CallExpression) expressionNode() {}

type NewExpression struct {
	base
	Callee Expression
	Args   []Expression
}

func (n *NewExpression) Kind() Kind      { return KindNewExpression }
func (n *NewExpression) expressionNode() {}

type MemberExpression struct {
	base
	Object   Expression
	Property Expression // Identifier for `.x`, arbitrary Expression for `[x]`
	Computed bool
	Optional bool // true for `?.`
}

func (n *MemberExpression) Kind() Kind      { return KindMemberExpression }
func (n *MemberExpression) expressionNode() {}

type SequenceExpression struct {
	base
	Expressions []Expression
}

func (n *SequenceExpression) Kind() Kind      { return KindSequenceExpression }
func (n *SequenceExpression) expressionNode() {}

type YieldExpression struct {
	base
	Argument Expression // nil for bare `yield`
	Delegate bool       // true for `yield*`
}

func (n *YieldExpression) Kind() Kind      { return KindYieldExpression }
func (n *YieldExpression) expressionNode() {}

type AwaitExpression struct {
	base
	Argument Expression
}

func (n *AwaitExpression) Kind() Kind      { return KindAwaitExpression }
func (n *AwaitExpression) expressionNode() {}

type ThisExpression struct{ base }

func (n *ThisExpression) Kind() Kind      { return KindThisExpression }
func (n *ThisExpression) expressionNode() {}

type SuperExpression struct{ base }

func (n *SuperExpression) Kind() Kind      { return KindSuperExpression }
func (n *SuperExpression) expressionNode() {}

type ParenthesizedExpression struct {
	base
	Expr Expression
}

func (n *ParenthesizedExpression) Kind() Kind      { return KindParenthesizedExpression }
func (n *ParenthesizedExpression) expressionNode() {}

// ErrorExpression is the "best-effort" placeholder the parser emits when
// expression parsing fails and recovers.
type ErrorExpression struct{ base }

func (n *ErrorExpression) Kind() Kind      { return KindErrorExpression }
func (n *ErrorExpression) expressionNode() {}

// --- TypeScript expression forms --------------------------------------

type TSAsExpression struct {
	base
	Expr       Expression
	TypeAnnot  TypeAnnotation
}

func (n *TSAsExpression) Kind() Kind      { return KindTSAsExpression }
func (n *TSAsExpression) expressionNode() {}

type TSSatisfiesExpression struct {
	base
	Expr      Expression
	TypeAnnot TypeAnnotation
}

func (n *TSSatisfiesExpression) Kind() Kind      { return KindTSSatisfiesExpression }
func (n *TSSatisfiesExpression) expressionNode() {}

type TSNonNullExpression struct {
	base
	Expr Expression
}

func (n *TSNonNullExpression) Kind() Kind      { return KindTSNonNullExpression }
func (n *TSNonNullExpression) expressionNode() {}

// --- Patterns --------------------------------------------------------------

type ArrayPattern struct {
	base
	Elements []Pattern // nil entries represent elisions
}

func (n *ArrayPattern) Kind() Kind   { return KindArrayPattern }
func (n *ArrayPattern) patternNode() {}

type ObjectPatternProperty struct {
	Key       Expression
	Value     Pattern
	Computed  bool
	Shorthand bool
}

type ObjectPattern struct {
	base
	Properties []ObjectPatternProperty
	Rest       *RestElement // nil if no rest
}

func (n *ObjectPattern) Kind() Kind   { return KindObjectPattern }
func (n *ObjectPattern) patternNode() {}

type AssignmentPattern struct {
	base
	Left  Pattern
	Right Expression
}

func (n *AssignmentPattern) Kind() Kind   { return KindAssignmentPattern }
func (n *AssignmentPattern) patternNode() {}

type RestElement struct {
	base
	Argument Pattern
}

func (n *RestElement) Kind() Kind   { return KindRestElement }
func (n *RestElement) patternNode() {}

// --- JSX ---------------------------------------------------------------

type JSXIdentifier struct {
	base
	Name string
}

func (n *JSXIdentifier) Kind() Kind      { return KindJSXIdentifier }
func (n *JSXIdentifier) expressionNode() {}
func (n *JSXIdentifier) jsxChildNode()   {}

type JSXMemberExpression struct {
	base
	Object   Node // *JSXIdentifier or *JSXMemberExpression
	Property *JSXIdentifier
}

func (n *JSXMemberExpression) Kind() Kind      { return KindJSXMemberExpression }
func (n *JSXMemberExpression) expressionNode() {}

type JSXAttribute struct {
	base
	Name  string
	Value Node // nil, StringLiteral, or *JSXExpressionContainer
}

func (n *JSXAttribute) Kind() Kind { return KindJSXAttribute }

type JSXSpreadAttribute struct {
	base
	Argument Expression
}

func (n *JSXSpreadAttribute) Kind() Kind { return KindJSXSpreadAttribute }

type JSXOpeningElement struct {
	base
	Name       Node // *JSXIdentifier or *JSXMemberExpression
	Attributes []Node // *JSXAttribute | *JSXSpreadAttribute
	SelfClosing bool
}

func (n *JSXOpeningElement) Kind() Kind { return KindJSXOpeningElement }

type JSXClosingElement struct {
	base
	Name Node
}

func (n *JSXClosingElement) Kind() Kind { return KindJSXClosingElement }

type JSXExpressionContainer struct {
	base
	Expression Expression // may be nil for an empty-expr JSX comment slot
}

func (n *JSXExpressionContainer) Kind() Kind      { return KindJSXExpressionContainer }
func (n *JSXExpressionContainer) jsxChildNode()   {}
func (n *JSXExpressionContainer) expressionNode() {}

type JSXText struct {
	base
	Value string
}

func (n *JSXText) Kind() Kind    { return KindJSXText }
func (n *JSXText) jsxChildNode() {}

type JSXElement struct {
	base
	Opening  *JSXOpeningElement
	Children []JSXChild
	Closing  *JSXClosingElement // nil if SelfClosing
}

func (n *JSXElement) Kind() Kind      { return KindJSXElement }
func (n *JSXElement) expressionNode() {}
func (n *JSXElement) jsxChildNode()   {}

type JSXFragment struct {
	base
	Children []JSXChild
}

func (n *JSXFragment) Kind() Kind      { return KindJSXFragment }
func (n *JSXFragment) expressionNode() {}
func (n *JSXFragment) jsxChildNode()   {}

// --- TypeScript type annotations ----------------------------------------

type TSTypeReference struct {
	base
	Name string
	Args []TypeAnnotation
}

func (n *TSTypeReference) Kind() Kind          { return KindTSTypeReference }
func (n *TSTypeReference) typeAnnotationNode() {}

type TSUnionType struct {
	base
	Types []TypeAnnotation
}

func (n *TSUnionType) Kind() Kind          { return KindTSUnionType }
func (n *TSUnionType) typeAnnotationNode() {}

type TSIntersectionType struct {
	base
	Types []TypeAnnotation
}

func (n *TSIntersectionType) Kind() Kind          { return KindTSIntersectionType }
func (n *TSIntersectionType) typeAnnotationNode() {}

type TSArrayType struct {
	base
	ElementType TypeAnnotation
}

func (n *TSArrayType) Kind() Kind          { return KindTSArrayType }
func (n *TSArrayType) typeAnnotationNode() {}

type TSTupleType struct {
	base
	ElementTypes []TypeAnnotation
}

func (n *TSTupleType) Kind() Kind          { return KindTSTupleType }
func (n *TSTupleType) typeAnnotationNode() {}

type TSFunctionType struct {
	base
	Params     []Pattern
	ReturnType TypeAnnotation
}

func (n *TSFunctionType) Kind() Kind          { return KindTSFunctionType }
func (n *TSFunctionType) typeAnnotationNode() {}

type TSLiteralType struct {
	base
	Literal Expression
}

func (n *TSLiteralType) Kind() Kind          { return KindTSLiteralType }
func (n *TSLiteralType) typeAnnotationNode() {}

type TSTypeParameter struct {
	base
	Name       string
	Constraint TypeAnnotation
	Default    TypeAnnotation
}

func (n *TSTypeParameter) Kind() Kind { return KindTSTypeParameter }

type TSTypeParameterDeclaration struct {
	base
	Params []*TSTypeParameter
}

func (n *TSTypeParameterDeclaration) Kind() Kind { return KindTSTypeParameterDeclaration }

type TSInterfaceDeclaration struct {
	base
	ID         *Identifier
	Extends    []TypeAnnotation
	Body       []Node // *MethodDefinition | *PropertyDefinition style members
	TypeParams *TSTypeParameterDeclaration
}

func (n *TSInterfaceDeclaration) Kind() Kind       { return KindTSInterfaceDeclaration }
func (n *TSInterfaceDeclaration) statementNode()   {}
func (n *TSInterfaceDeclaration) declarationNode() {}

type TSTypeAliasDeclaration struct {
	base
	ID         *Identifier
	TypeAnnot  TypeAnnotation
	TypeParams *TSTypeParameterDeclaration
}

func (n *TSTypeAliasDeclaration) Kind() Kind       { return KindTSTypeAliasDeclaration }
func (n *TSTypeAliasDeclaration) statementNode()   {}
func (n *TSTypeAliasDeclaration) declarationNode() {}

type TSEnumMember struct {
	Name string
	Init Expression // nil for auto-numbered members
}

type TSEnumDeclaration struct {
	base
	ID      *Identifier
	Members []TSEnumMember
	Const   bool
}

func (n *TSEnumDeclaration) Kind() Kind       { return KindTSEnumDeclaration }
func (n *TSEnumDeclaration) statementNode()   {}
func (n *TSEnumDeclaration) declarationNode() {}
