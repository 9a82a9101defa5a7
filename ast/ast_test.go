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
package ast_test

import (
	"testing"

	"github.com/bennypowers/weslink/ast"
)

func TestIdentEqualityIsPointerNotValue(t *testing.T) {
	a := ast.NewIdent("foo")
	b := ast.NewIdent("foo")

	if a == b {
		t.Fatal("distinct Idents with the same name must not compare equal")
	}

	c := a
	if a != c {
		t.Fatal("copies of the same pointer must compare equal")
	}

	a.Rename("bar")
	if c.Name() != "bar" {
		t.Fatalf("Rename must be visible through every holder of the pointer, got %q", c.Name())
	}
}

func TestRetargetIdentsUnifiesLocalReferences(t *testing.T) {
	structDecl := ast.Struct{Ident: ast.NewIdent("Point")}
	fn := ast.Function{
		Ident: ast.NewIdent("use_point"),
		Parameters: []ast.FormalParameter{
			{Ident: ast.NewIdent("p"), Type: ast.TypeExpression{Ident: ast.NewIdent("Point")}},
		},
	}
	tu := &ast.TranslationUnit{
		GlobalDeclarations: []ast.GlobalDeclaration{
			{Struct: &structDecl},
			{Function: &fn},
		},
	}

	ast.RetargetIdents(tu)

	if fn.Parameters[0].Type.Ident != structDecl.Ident {
		t.Fatal("RetargetIdents should unify the parameter type's Ident with the struct's defining Ident")
	}
}

func TestWalkTypeExpressionsVisitsTemplateArgsAndBody(t *testing.T) {
	inner := ast.TypeExpression{Ident: ast.NewIdent("u32")}
	fn := ast.GlobalDeclaration{Function: &ast.Function{
		Ident: ast.NewIdent("f"),
		Body: []ast.Expression{
			{Type: &ast.TypeExpression{
				Ident:        ast.NewIdent("array"),
				TemplateArgs: []ast.TypeExpression{inner},
			}},
		},
	}}

	var seen []string
	fn.WalkTypeExpressions(func(ty *ast.TypeExpression) {
		seen = append(seen, ty.Ident.Name())
	})

	if len(seen) != 2 || seen[0] != "array" || seen[1] != "u32" {
		t.Fatalf("expected [array u32], got %v", seen)
	}
}
