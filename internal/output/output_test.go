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

package output

import (
	"strings"
	"testing"

	"github.com/bennypowers/weslink/ast"
)

func sampleUnit() *ast.TranslationUnit {
	f32 := ast.TypeExpression{Ident: ast.NewIdent("f32")}
	light := ast.TypeExpression{Ident: ast.NewIdent("Light")}
	helper := ast.NewIdent("helper")

	return &ast.TranslationUnit{
		GlobalDirectives: []ast.GlobalDirective{
			{Enable: &ast.EnableDirective{Extensions: []string{"f16"}}},
		},
		GlobalDeclarations: []ast.GlobalDeclaration{
			{Struct: &ast.Struct{
				Ident: ast.NewIdent("Light"),
				Members: []ast.StructMember{
					{Ident: ast.NewIdent("intensity"), Type: f32},
				},
			}},
			{Declaration: &ast.Declaration{
				Kind:  ast.Const,
				Ident: ast.NewIdent("MAX_LIGHTS"),
				Type:  &light,
			}},
			{Function: &ast.Function{
				Ident: ast.NewIdent("main"),
				Body: []ast.Expression{
					{Type: &ast.TypeExpression{Ident: helper}},
				},
			}},
		},
	}
}

func TestFormatRendersDeclarationsAndDirectives(t *testing.T) {
	out := Format(sampleUnit())

	for _, want := range []string{
		"enable f16",
		"struct Light {",
		"intensity: f32,",
		"const MAX_LIGHTS: Light;",
		"fn main()",
		"/* refs: helper */",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format output missing %q, got:\n%s", want, out)
		}
	}
}

func TestSummarizeListsDeclarationNamesAndDirectives(t *testing.T) {
	summary := summarize(sampleUnit())

	names, ok := summary["declarations"].([]string)
	if !ok {
		t.Fatalf("declarations: got %T, want []string", summary["declarations"])
	}
	want := map[string]bool{"Light": true, "MAX_LIGHTS": true, "main": true}
	if len(names) != len(want) {
		t.Fatalf("declarations: got %v, want keys of %v", names, want)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected declaration name %q", n)
		}
	}

	directives, ok := summary["directives"].([]string)
	if !ok || len(directives) != 1 || directives[0] != "enable f16" {
		t.Errorf("directives: got %v, want [\"enable f16\"]", summary["directives"])
	}
}
