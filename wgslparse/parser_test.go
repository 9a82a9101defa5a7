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
	"testing"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
)

func TestParseImportSingleItem(t *testing.T) {
	tu, err := Parse(modpath.New("main"), `import self::lib::helper;`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tu.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(tu.Imports))
	}
	stmt := tu.Imports[0]
	if stmt.Content.Item == nil || stmt.Content.Item.Ident.Name() != "helper" {
		t.Fatalf("expected single item 'helper', got %+v", stmt.Content)
	}
	if !stmt.Path.IsRelative() || stmt.Path.Segments[0] != "lib" {
		t.Fatalf("unexpected import path: %+v", stmt.Path)
	}
}

func TestParseImportCollectionWithRename(t *testing.T) {
	tu, err := Parse(modpath.New("main"), `import lib::{a, b as bees, nested::{c}};`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	stmt := tu.Imports[0]
	if len(stmt.Content.Collection) != 3 {
		t.Fatalf("expected 3 collection entries, got %d", len(stmt.Content.Collection))
	}
	renamed := stmt.Content.Collection[1]
	if renamed.Content.Item.Rename == nil || renamed.Content.Item.Rename.Name() != "bees" {
		t.Fatalf("expected rename 'bees', got %+v", renamed.Content.Item)
	}
	nested := stmt.Content.Collection[2]
	if len(nested.Path) != 1 || nested.Path[0] != "nested" {
		t.Fatalf("expected nested path ['nested'], got %v", nested.Path)
	}
	if nested.Content.Collection[0].Content.Item.Ident.Name() != "c" {
		t.Fatalf("expected nested leaf 'c'")
	}
}

func TestParseFunctionDeclarationAndBodyReferences(t *testing.T) {
	src := `
		import lib::helper;

		fn main() -> vec4f {
			let x = helper(1.0);
			return vec4f(x, x, x, 1.0);
		}
	`
	tu, err := Parse(modpath.New("main"), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tu.GlobalDeclarations) != 1 || tu.GlobalDeclarations[0].Function == nil {
		t.Fatalf("expected a single function declaration")
	}
	fn := tu.GlobalDeclarations[0].Function
	if fn.Ident.Name() != "main" {
		t.Fatalf("expected function named main, got %s", fn.Ident.Name())
	}
	if fn.ReturnType == nil || fn.ReturnType.Ident.Name() != "vec4f" {
		t.Fatalf("expected return type vec4f, got %+v", fn.ReturnType)
	}

	var names []string
	tu.GlobalDeclarations[0].WalkTypeExpressions(func(te *ast.TypeExpression) {
		names = append(names, te.Ident.Name())
	})
	found := false
	for _, n := range names {
		if n == "helper" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected body to reference 'helper', got %v", names)
	}
}

func TestParseStructAndVarDecl(t *testing.T) {
	src := `
		struct Light {
			position: vec3f,
			intensity: f32,
		}

		var<storage, read_write> lights: array<Light, 4>;
	`
	tu, err := Parse(modpath.New("main"), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tu.GlobalDeclarations[0].Struct == nil || tu.GlobalDeclarations[0].Struct.Ident.Name() != "Light" {
		t.Fatalf("expected struct Light")
	}
	decl := tu.GlobalDeclarations[1].Declaration
	if decl == nil || decl.Ident.Name() != "lights" {
		t.Fatalf("expected var decl 'lights'")
	}
	if decl.Type.Ident.Name() != "array" || len(decl.Type.TemplateArgs) != 1 {
		t.Fatalf("expected array<Light, 4> type, got %+v", decl.Type)
	}
	if decl.Type.TemplateArgs[0].Ident.Name() != "Light" {
		t.Fatalf("expected array element type Light, got %+v", decl.Type.TemplateArgs[0])
	}
}

func TestParseConstAssertAndEnable(t *testing.T) {
	src := `
		enable f16, clip_distances;
		const_assert(has_feature);
	`
	tu, err := Parse(modpath.New("main"), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tu.GlobalDirectives) != 1 || tu.GlobalDirectives[0].Enable == nil {
		t.Fatalf("expected 1 enable directive")
	}
	if len(tu.GlobalDirectives[0].Enable.Extensions) != 2 {
		t.Fatalf("expected 2 extensions, got %v", tu.GlobalDirectives[0].Enable.Extensions)
	}
	if tu.GlobalDeclarations[0].ConstAssert == nil {
		t.Fatalf("expected a const_assert declaration")
	}
}
