/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package ast

import "github.com/bennypowers/weslink/modpath"

// TranslationUnit is the root of a parsed module: its own import
// statements, directives, and declarations, in source order.
type TranslationUnit struct {
	Imports            []ImportStatement
	GlobalDirectives   []GlobalDirective
	GlobalDeclarations []GlobalDeclaration
}

// Attribute is a single `@name(...)` or `@name` attribute. Arguments are
// kept as opaque source text: the kernel never interprets attribute
// contents, only carries them through assembly unchanged.
type Attribute struct {
	Name string
	Args []string
}

// ImportStatement is a top-level `import path::content;` statement.
type ImportStatement struct {
	Attributes []Attribute
	Path       modpath.Path
	Content    ImportContent
}

// ImportContent is either a single imported item or a nested
// collection; exactly one of Item/Collection is set.
type ImportContent struct {
	Item       *ImportItem
	Collection []Import
}

// ImportItem names one imported identifier, with an optional local
// rename.
type ImportItem struct {
	Ident  *Ident
	Rename *Ident // nil if not renamed
}

// Import is the flattener's internal representation of one path segment
// of an import tree: the remaining path (relative to the statement's
// own ImportStatement.Path) plus its content.
type Import struct {
	Path    []string
	Content ImportContent
}

// GlobalDirective is one of `diagnostic(...)`, `enable ...`, or
// `requires ...`. Exactly one field is non-nil.
type GlobalDirective struct {
	Diagnostic *DiagnosticDirective
	Enable     *EnableDirective
	Requires   *RequiresDirective
}

// Equal reports whether two directives are textually identical, used by
// assembly's directive deduplication.
func (d GlobalDirective) Equal(other GlobalDirective) bool {
	switch {
	case d.Diagnostic != nil && other.Diagnostic != nil:
		return *d.Diagnostic == *other.Diagnostic
	case d.Enable != nil && other.Enable != nil:
		return equalStrings(d.Enable.Extensions, other.Enable.Extensions)
	case d.Requires != nil && other.Requires != nil:
		return equalStrings(d.Requires.Extensions, other.Requires.Extensions)
	default:
		return false
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DiagnosticSeverity is the severity level of a diagnostic directive or
// attribute.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

// DiagnosticDirective is `diagnostic(severity, rule_name);`.
type DiagnosticDirective struct {
	Severity DiagnosticSeverity
	RuleName string
}

// EnableDirective is `enable ext1, ext2;`.
type EnableDirective struct {
	Extensions []string
}

// RequiresDirective is `requires ext1, ext2;`.
type RequiresDirective struct {
	Extensions []string
}

// GlobalDeclaration is one top-level item. Exactly one field is
// non-nil, except the zero value, which represents an empty
// declaration (a stray `;`).
type GlobalDeclaration struct {
	Declaration *Declaration
	TypeAlias   *TypeAlias
	Struct      *Struct
	Function    *Function
	ConstAssert *ConstAssert
}

// Ident returns the identifier this declaration defines, or nil for a
// Void declaration or a ConstAssert (which defines nothing).
func (d GlobalDeclaration) Ident() *Ident {
	switch {
	case d.Declaration != nil:
		return d.Declaration.Ident
	case d.TypeAlias != nil:
		return d.TypeAlias.Ident
	case d.Struct != nil:
		return d.Struct.Ident
	case d.Function != nil:
		return d.Function.Ident
	default:
		return nil
	}
}

// IsConstAssert reports whether d is a ConstAssert, which assembly
// always keeps live regardless of tree-shaking liveness.
func (d GlobalDeclaration) IsConstAssert() bool {
	return d.ConstAssert != nil
}

// DeclarationKind distinguishes const/override/let/var bindings.
type DeclarationKind int

const (
	Const DeclarationKind = iota
	Override
	Let
	Var
)

// AddressSpace is the memory space of a Var declaration.
type AddressSpace int

const (
	NoAddressSpace AddressSpace = iota // handle space at module scope, function space otherwise
	FunctionSpace
	PrivateSpace
	WorkgroupSpace
	UniformSpace
	StorageSpace
	HandleSpace
)

// AccessMode qualifies a Storage address space.
type AccessMode int

const (
	NoAccessMode AccessMode = iota
	ReadAccess
	WriteAccess
	ReadWriteAccess
)

// Declaration is a const/override/let/var binding.
type Declaration struct {
	Attributes   []Attribute
	Kind         DeclarationKind
	AddressSpace AddressSpace
	AccessMode   AccessMode
	Ident        *Ident
	Type         *TypeExpression // nil if inferred
	Initializer  *Expression     // nil if absent
}

// TypeAlias is `alias Name = Type;`.
type TypeAlias struct {
	Attributes []Attribute
	Ident      *Ident
	Type       TypeExpression
}

// Struct is a `struct Name { ... }` declaration.
type Struct struct {
	Attributes []Attribute
	Ident      *Ident
	Members    []StructMember
}

// StructMember is one field of a Struct.
type StructMember struct {
	Attributes []Attribute
	Ident      *Ident
	Type       TypeExpression
}

// Function is a `fn name(...) -> Type { ... }` declaration.
type Function struct {
	Attributes        []Attribute
	Ident             *Ident
	Parameters        []FormalParameter
	ReturnAttributes  []Attribute
	ReturnType        *TypeExpression // nil for no return value
	Body              []Expression    // flattened type-expression occurrences in the body
}

// FormalParameter is one parameter of a Function.
type FormalParameter struct {
	Attributes []Attribute
	Ident      *Ident
	Type       TypeExpression
}

// ConstAssert is `const_assert(expr);`. ConstAsserts are always kept
// live by assembly: they can have side effects (compile errors) even
// though nothing references their declaration.
type ConstAssert struct {
	Attributes []Attribute
	Expression Expression
}

// TypeExpression is a reference to a named type or value: an optional
// module path, the referenced identifier, and optional generic/template
// arguments. This is the node the resolver kernel classifies and
// rewrites: see link.Resolutions.
type TypeExpression struct {
	Path         *modpath.Path // nil: a bare name, resolved via the import table or left as a builtin
	Ident        *Ident
	TemplateArgs []TypeExpression
}

// Expression is a value expression. Function bodies and const-assert
// expressions are modeled only as a bag of type-expression occurrences
// (identifier references and call targets) plus nested operands: full
// statement/expression grammar is outside the resolver kernel's
// concern, which only needs to discover every TypeExpression reachable
// from a declaration.
type Expression struct {
	Type      *TypeExpression // set when this expression occurrence is an identifier reference or call
	Operands  []Expression    // nested sub-expressions (call arguments, operands, parenthesized content)
}

// WalkTypeExpressions calls visit on every TypeExpression reachable
// from e, including e.Type itself and all of e.Type's TemplateArgs,
// recursively, and then recurses into every operand.
func (e *Expression) WalkTypeExpressions(visit func(*TypeExpression)) {
	if e == nil {
		return
	}
	if e.Type != nil {
		walkTypeExpression(e.Type, visit)
	}
	for i := range e.Operands {
		e.Operands[i].WalkTypeExpressions(visit)
	}
}

func walkTypeExpression(ty *TypeExpression, visit func(*TypeExpression)) {
	visit(ty)
	for i := range ty.TemplateArgs {
		walkTypeExpression(&ty.TemplateArgs[i], visit)
	}
}
