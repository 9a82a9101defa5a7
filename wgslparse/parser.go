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
package wgslparse

import (
	"fmt"
	"strings"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
)

// reserved holds surface keywords that parseBody/scanExpressionRefs must
// never mistake for an identifier reference.
var reserved = map[string]bool{
	"let": true, "var": true, "const": true, "if": true, "else": true,
	"for": true, "while": true, "loop": true, "break": true, "continue": true,
	"return": true, "discard": true, "switch": true, "case": true,
	"default": true, "true": true, "false": true, "fn": true,
}

type parser struct {
	toks []token
	pos  int
	src  string
	path modpath.Path
}

// Parse turns WGSL/WESL source text into a translation unit, running
// ast.RetargetIdents before returning so local references already share
// their declaration's Ident pointer, as providers are expected to hand
// the resolver kernel. It satisfies provider.ParseFunc.
func Parse(path modpath.Path, source string) (*ast.TranslationUnit, error) {
	toks, err := tokenize(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p := &parser{toks: toks, src: source, path: path}
	tu, err := p.parseTranslationUnit()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ast.RetargetIdents(tu)
	return tu, nil
}

func tokenize(src string) ([]token, error) {
	l := newLexer(src)
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}
func (p *parser) isIdent(s string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == s
}

func (p *parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		t := p.peek()
		return syntaxError(p.src, t.pos, "expected %q, got %q", s, t.text)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", syntaxError(p.src, t.pos, "expected identifier, got %q", t.text)
	}
	p.advance()
	return t.text, nil
}

func (p *parser) parseTranslationUnit() (*ast.TranslationUnit, error) {
	tu := &ast.TranslationUnit{}
	for !p.atEOF() {
		switch {
		case p.isIdent("import"):
			stmt, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			tu.Imports = append(tu.Imports, stmt)
		case p.isIdent("enable"):
			dir, err := p.parseEnable()
			if err != nil {
				return nil, err
			}
			tu.GlobalDirectives = append(tu.GlobalDirectives, dir)
		case p.isIdent("requires"):
			dir, err := p.parseRequires()
			if err != nil {
				return nil, err
			}
			tu.GlobalDirectives = append(tu.GlobalDirectives, dir)
		case p.isIdent("diagnostic"):
			dir, err := p.parseDiagnostic()
			if err != nil {
				return nil, err
			}
			tu.GlobalDirectives = append(tu.GlobalDirectives, dir)
		case p.isPunct(";"):
			p.advance()
		default:
			attrs, err := p.parseAttributes()
			if err != nil {
				return nil, err
			}
			decl, err := p.parseDeclaration(attrs)
			if err != nil {
				return nil, err
			}
			tu.GlobalDeclarations = append(tu.GlobalDeclarations, decl)
		}
	}
	return tu, nil
}

// --- imports ---

func (p *parser) parseImport() (ast.ImportStatement, error) {
	p.advance() // "import"
	var segments []string
	for {
		seg, err := p.expectIdent()
		if err != nil {
			return ast.ImportStatement{}, err
		}
		if !p.isPunct("::") {
			// seg is the single imported item's name; segments so far are its path.
			path, err := parsePathSegments(segments)
			if err != nil {
				return ast.ImportStatement{}, err
			}
			if err := p.expectPunct(";"); err != nil {
				return ast.ImportStatement{}, err
			}
			return ast.ImportStatement{
				Path:    path,
				Content: ast.ImportContent{Item: &ast.ImportItem{Ident: ast.NewIdent(seg)}},
			}, nil
		}
		p.advance() // "::"
		if p.isPunct("{") {
			p.advance()
			path, err := parsePathSegments(append(segments, seg))
			if err != nil {
				return ast.ImportStatement{}, err
			}
			content, err := p.parseImportList()
			if err != nil {
				return ast.ImportStatement{}, err
			}
			if err := p.expectPunct("}"); err != nil {
				return ast.ImportStatement{}, err
			}
			if err := p.expectPunct(";"); err != nil {
				return ast.ImportStatement{}, err
			}
			return ast.ImportStatement{Path: path, Content: content}, nil
		}
		segments = append(segments, seg)
	}
}

func parsePathSegments(segments []string) (modpath.Path, error) {
	if len(segments) == 0 {
		return modpath.Path{}, nil
	}
	return modpath.Parse(strings.Join(segments, "::"))
}

func (p *parser) parseImportList() (ast.ImportContent, error) {
	var collection []ast.Import
	for {
		if p.isPunct("}") {
			break
		}
		imp, err := p.parseImportElem()
		if err != nil {
			return ast.ImportContent{}, err
		}
		collection = append(collection, imp)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return ast.ImportContent{Collection: collection}, nil
}

func (p *parser) parseImportElem() (ast.Import, error) {
	var segs []string
	for {
		seg, err := p.expectIdent()
		if err != nil {
			return ast.Import{}, err
		}
		segs = append(segs, seg)
		if !p.isPunct("::") {
			break
		}
		p.advance()
		if p.isPunct("{") {
			p.advance()
			nested, err := p.parseImportList()
			if err != nil {
				return ast.Import{}, err
			}
			if err := p.expectPunct("}"); err != nil {
				return ast.Import{}, err
			}
			return ast.Import{Path: segs, Content: nested}, nil
		}
	}

	itemName := segs[len(segs)-1]
	prefix := segs[:len(segs)-1]
	var rename *ast.Ident
	if p.isIdent("as") {
		p.advance()
		renameName, err := p.expectIdent()
		if err != nil {
			return ast.Import{}, err
		}
		rename = ast.NewIdent(renameName)
	}
	leaf := ast.ImportContent{Item: &ast.ImportItem{Ident: ast.NewIdent(itemName), Rename: rename}}
	return ast.Import{Path: prefix, Content: leaf}, nil
}

// --- directives ---

func (p *parser) parseEnable() (ast.GlobalDirective, error) {
	p.advance() // "enable"
	exts, err := p.parseIdentListUntilSemicolon()
	if err != nil {
		return ast.GlobalDirective{}, err
	}
	return ast.GlobalDirective{Enable: &ast.EnableDirective{Extensions: exts}}, nil
}

func (p *parser) parseRequires() (ast.GlobalDirective, error) {
	p.advance() // "requires"
	exts, err := p.parseIdentListUntilSemicolon()
	if err != nil {
		return ast.GlobalDirective{}, err
	}
	return ast.GlobalDirective{Requires: &ast.RequiresDirective{Extensions: exts}}, nil
}

func (p *parser) parseIdentListUntilSemicolon() ([]string, error) {
	var out []string
	for {
		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseDiagnostic() (ast.GlobalDirective, error) {
	p.advance() // "diagnostic"
	if err := p.expectPunct("("); err != nil {
		return ast.GlobalDirective{}, err
	}
	sevName, err := p.expectIdent()
	if err != nil {
		return ast.GlobalDirective{}, err
	}
	if err := p.expectPunct(","); err != nil {
		return ast.GlobalDirective{}, err
	}
	rule, err := p.expectIdent()
	if err != nil {
		return ast.GlobalDirective{}, err
	}
	if err := p.expectPunct(")"); err != nil {
		return ast.GlobalDirective{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return ast.GlobalDirective{}, err
	}
	return ast.GlobalDirective{Diagnostic: &ast.DiagnosticDirective{
		Severity: severityFromName(sevName),
		RuleName: rule,
	}}, nil
}

func severityFromName(name string) ast.DiagnosticSeverity {
	switch name {
	case "warning":
		return ast.SeverityWarning
	case "info":
		return ast.SeverityInfo
	case "off":
		return ast.SeverityOff
	default:
		return ast.SeverityError
	}
}

// --- attributes ---

func (p *parser) parseAttributes() ([]ast.Attribute, error) {
	var attrs []ast.Attribute
	for p.isPunct("@") {
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		var args []string
		if p.isPunct("(") {
			p.advance()
			depth := 1
			var cur strings.Builder
			for depth > 0 {
				t := p.advance()
				if t.kind == tokEOF {
					return nil, syntaxError(p.src, t.pos, "unterminated attribute argument list")
				}
				if t.kind == tokPunct && t.text == "(" {
					depth++
				}
				if t.kind == tokPunct && t.text == ")" {
					depth--
					if depth == 0 {
						break
					}
				}
				if t.kind == tokPunct && t.text == "," && depth == 1 {
					args = append(args, strings.TrimSpace(cur.String()))
					cur.Reset()
					continue
				}
				if cur.Len() > 0 {
					cur.WriteString(" ")
				}
				cur.WriteString(t.text)
			}
			if cur.Len() > 0 {
				args = append(args, strings.TrimSpace(cur.String()))
			}
		}
		attrs = append(attrs, ast.Attribute{Name: name, Args: args})
	}
	return attrs, nil
}

// --- declarations ---

func (p *parser) parseDeclaration(attrs []ast.Attribute) (ast.GlobalDeclaration, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return ast.GlobalDeclaration{}, syntaxError(p.src, t.pos, "expected a declaration, got %q", t.text)
	}
	switch t.text {
	case "fn":
		fn, err := p.parseFunction(attrs)
		return ast.GlobalDeclaration{Function: fn}, err
	case "const", "override", "let", "var":
		decl, err := p.parseVarDecl(attrs)
		return ast.GlobalDeclaration{Declaration: decl}, err
	case "struct":
		st, err := p.parseStruct(attrs)
		return ast.GlobalDeclaration{Struct: st}, err
	case "alias":
		ta, err := p.parseTypeAlias(attrs)
		return ast.GlobalDeclaration{TypeAlias: ta}, err
	case "const_assert":
		ca, err := p.parseConstAssert(attrs)
		return ast.GlobalDeclaration{ConstAssert: ca}, err
	default:
		return ast.GlobalDeclaration{}, syntaxError(p.src, t.pos, "unexpected token %q at global scope", t.text)
	}
}

func (p *parser) parseVarDecl(attrs []ast.Attribute) (*ast.Declaration, error) {
	kw := p.advance().text
	kind := map[string]ast.DeclarationKind{
		"const": ast.Const, "override": ast.Override, "let": ast.Let, "var": ast.Var,
	}[kw]

	addressSpace := ast.NoAddressSpace
	accessMode := ast.NoAccessMode
	if kw == "var" && p.isPunct("<") {
		p.advance()
		space, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		addressSpace = addressSpaceFromName(space)
		if p.isPunct(",") {
			p.advance()
			am, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			accessMode = accessModeFromName(am)
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var typ *ast.TypeExpression
	if p.isPunct(":") {
		p.advance()
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	var initializer *ast.Expression
	if p.isPunct("=") {
		p.advance()
		expr, err := p.parseExprUntil(";")
		if err != nil {
			return nil, err
		}
		initializer = &expr
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.Declaration{
		Attributes:   attrs,
		Kind:         kind,
		AddressSpace: addressSpace,
		AccessMode:   accessMode,
		Ident:        ast.NewIdent(name),
		Type:         typ,
		Initializer:  initializer,
	}, nil
}

func addressSpaceFromName(name string) ast.AddressSpace {
	switch name {
	case "function":
		return ast.FunctionSpace
	case "private":
		return ast.PrivateSpace
	case "workgroup":
		return ast.WorkgroupSpace
	case "uniform":
		return ast.UniformSpace
	case "storage":
		return ast.StorageSpace
	case "handle":
		return ast.HandleSpace
	default:
		return ast.NoAddressSpace
	}
}

func accessModeFromName(name string) ast.AccessMode {
	switch name {
	case "read":
		return ast.ReadAccess
	case "write":
		return ast.WriteAccess
	case "read_write":
		return ast.ReadWriteAccess
	default:
		return ast.NoAccessMode
	}
}

func (p *parser) parseStruct(attrs []ast.Attribute) (*ast.Struct, error) {
	p.advance() // "struct"
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var members []ast.StructMember
	for !p.isPunct("}") {
		memberAttrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		memberName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		memberType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, ast.StructMember{Attributes: memberAttrs, Ident: ast.NewIdent(memberName), Type: *memberType})
		if p.isPunct(",") {
			p.advance()
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.Struct{Attributes: attrs, Ident: ast.NewIdent(name), Members: members}, nil
}

func (p *parser) parseTypeAlias(attrs []ast.Attribute) (*ast.TypeAlias, error) {
	p.advance() // "alias"
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.TypeAlias{Attributes: attrs, Ident: ast.NewIdent(name), Type: *typ}, nil
}

func (p *parser) parseConstAssert(attrs []ast.Attribute) (*ast.ConstAssert, error) {
	p.advance() // "const_assert"
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	operands, err := p.scanExpressionRefs(")")
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return &ast.ConstAssert{Attributes: attrs, Expression: ast.Expression{Operands: operands}}, nil
}

func (p *parser) parseFunction(attrs []ast.Attribute) (*ast.Function, error) {
	p.advance() // "fn"
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []ast.FormalParameter
	for !p.isPunct(")") {
		paramAttrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		paramName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.FormalParameter{Attributes: paramAttrs, Ident: ast.NewIdent(paramName), Type: *paramType})
		if p.isPunct(",") {
			p.advance()
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	var retAttrs []ast.Attribute
	var retType *ast.TypeExpression
	if p.isPunct("->") {
		p.advance()
		retAttrs, err = p.parseAttributes()
		if err != nil {
			return nil, err
		}
		retType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Attributes:       attrs,
		Ident:            ast.NewIdent(name),
		Parameters:       params,
		ReturnAttributes: retAttrs,
		ReturnType:       retType,
		Body:             body,
	}, nil
}

// --- types and expressions ---

// parseType parses a (possibly module-qualified, possibly generic) type
// reference starting at the current token.
func (p *parser) parseType() (*ast.TypeExpression, error) {
	first, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return p.parseQualifiedFrom(first)
}

func (p *parser) parseQualifiedFrom(first string) (*ast.TypeExpression, error) {
	segs := []string{first}
	for p.isPunct("::") {
		p.advance()
		seg, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	name := segs[len(segs)-1]
	var path *modpath.Path
	if len(segs) > 1 {
		parsed, err := parsePathSegments(segs[:len(segs)-1])
		if err != nil {
			return nil, err
		}
		path = &parsed
	}

	var templateArgs []ast.TypeExpression
	if p.isPunct("<") {
		p.advance()
		for {
			if p.peek().kind == tokNumber {
				p.advance() // array length etc.; not a type-expression occurrence
			} else {
				argIdent, err := p.expectIdent()
				if err != nil {
					return nil, err
				}
				arg, err := p.parseQualifiedFrom(argIdent)
				if err != nil {
					return nil, err
				}
				templateArgs = append(templateArgs, *arg)
			}
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}

	return &ast.TypeExpression{Path: path, Ident: ast.NewIdent(name), TemplateArgs: templateArgs}, nil
}

// parseExprUntil scans tokens up to (not including) a top-level occurrence
// of stop, returning a flat bag of every identifier reference found —
// the documented simplification of function-body/initializer expressions
// (see ast.Expression's doc comment).
func (p *parser) parseExprUntil(stop string) (ast.Expression, error) {
	operands, err := p.scanExpressionRefs(stop)
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{Operands: operands}, nil
}

func (p *parser) scanExpressionRefs(stop string) ([]ast.Expression, error) {
	var out []ast.Expression
	depth := 0
	prevWasDot := false
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return nil, syntaxError(p.src, t.pos, "unexpected end of input while scanning expression")
		}
		if depth == 0 && t.kind == tokPunct && t.text == stop {
			return out, nil
		}
		if t.kind == tokPunct && (t.text == "(" || t.text == "[") {
			depth++
			p.advance()
			continue
		}
		if t.kind == tokPunct && (t.text == ")" || t.text == "]") {
			depth--
			p.advance()
			continue
		}
		if t.kind == tokPunct && t.text == "." {
			prevWasDot = true
			p.advance()
			continue
		}
		if t.kind == tokIdent && !prevWasDot && !reserved[t.text] {
			name := p.advance().text
			te, err := p.parseQualifiedFrom(name)
			if err != nil {
				return nil, err
			}
			out = append(out, ast.Expression{Type: te})
			prevWasDot = false
			continue
		}
		prevWasDot = false
		p.advance()
	}
}

// parseBody scans a function body (the opening "{" already consumed) for
// every type-expression occurrence, flattening statements/control-flow
// into a bag of references, matching ast.Function.Body's documented
// simplification.
func (p *parser) parseBody() ([]ast.Expression, error) {
	var out []ast.Expression
	depth := 0
	prevWasDot := false
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return nil, syntaxError(p.src, t.pos, "unterminated function body")
		}
		if t.kind == tokPunct && (t.text == "{" || t.text == "(" || t.text == "[") {
			depth++
			p.advance()
			continue
		}
		if t.kind == tokPunct && (t.text == ")" || t.text == "]") {
			depth--
			p.advance()
			continue
		}
		if t.kind == tokPunct && t.text == "}" {
			if depth == 0 {
				p.advance()
				return out, nil
			}
			depth--
			p.advance()
			continue
		}
		if t.kind == tokPunct && t.text == "." {
			prevWasDot = true
			p.advance()
			continue
		}
		if t.kind == tokIdent && !prevWasDot && !reserved[t.text] {
			name := p.advance().text
			te, err := p.parseQualifiedFrom(name)
			if err != nil {
				return nil, err
			}
			out = append(out, ast.Expression{Type: te})
			prevWasDot = false
			continue
		}
		prevWasDot = false
		p.advance()
	}
}
