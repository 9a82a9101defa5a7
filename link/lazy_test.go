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
package link

import (
	"context"
	"errors"
	"testing"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
)

func TestResolveLazyShakesOutUnreferencedDeclarations(t *testing.T) {
	rootPath, libPath, prov := mainLibFixture()

	res, err := ResolveLazy(context.Background(), prov, nil, rootPath, []string{"main"})
	if err != nil {
		t.Fatalf("ResolveLazy: %v", err)
	}

	rootMod, _ := res.ModuleAt(rootPath)
	mainID, _ := rootMod.declIdent("main")
	if !rootMod.treated[mainID] {
		t.Errorf("entry identifier main must be treated live")
	}

	libMod, ok := res.ModuleAt(libPath)
	if !ok {
		t.Fatalf("lib module should have been loaded to satisfy main's reference to helper")
	}
	helperID, _ := libMod.declIdent("helper")
	if !libMod.treated[helperID] {
		t.Errorf("helper is referenced from main and must be treated live")
	}
	unusedID, _ := libMod.declIdent("unused")
	if libMod.treated[unusedID] {
		t.Errorf("unused is never referenced and must not be treated live")
	}

	assembled := res.Assemble(true)
	names := map[string]bool{}
	constAsserts := 0
	for _, decl := range assembled.GlobalDeclarations {
		if decl.IsConstAssert() {
			constAsserts++
			continue
		}
		names[decl.Ident().Name()] = true
	}
	if !names["main"] || !names["helper"] {
		t.Errorf("assembled output missing live declarations: %v", names)
	}
	if names["unused"] {
		t.Errorf("assembled output must not keep dead declaration 'unused'")
	}
	if constAsserts != 1 {
		t.Errorf("const-asserts are always kept regardless of liveness, got %d", constAsserts)
	}
}

func TestResolveLazyMissingEntryIdent(t *testing.T) {
	rootPath, _, prov := mainLibFixture()

	_, err := ResolveLazy(context.Background(), prov, nil, rootPath, []string{"doesNotExist"})
	var missingErr *MissingDeclError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected *MissingDeclError for unknown entry identifier, got %T: %v", err, err)
	}
}

func TestResolveLazyMissingExternalDeclaration(t *testing.T) {
	prov := newFakeProvider()
	rootPath := modpath.New("main")
	libPath := modpath.New("lib")

	root := &ast.TranslationUnit{
		Imports: []ast.ImportStatement{
			{Path: libPath, Content: ast.ImportContent{Item: &ast.ImportItem{Ident: ast.NewIdent("ghost")}}},
		},
		GlobalDeclarations: []ast.GlobalDeclaration{
			{
				Function: &ast.Function{
					Ident: ast.NewIdent("main"),
					Body: []ast.Expression{
						{Type: &ast.TypeExpression{Ident: ast.NewIdent("ghost")}},
					},
				},
			},
		},
	}
	lib := &ast.TranslationUnit{}
	prov.add(rootPath, root)
	prov.add(libPath, lib)

	_, err := ResolveLazy(context.Background(), prov, nil, rootPath, []string{"main"})
	var missingErr *MissingDeclError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected *MissingDeclError, got %T: %v", err, err)
	}
}

func TestResolveLazyAlwaysKeepsRootConstAssertsEvenWithNoEntryIdents(t *testing.T) {
	prov := newFakeProvider()
	rootPath := modpath.New("main")
	root := &ast.TranslationUnit{
		GlobalDeclarations: []ast.GlobalDeclaration{
			{Function: &ast.Function{Ident: ast.NewIdent("main")}},
			{
				ConstAssert: &ast.ConstAssert{
					Expression: ast.Expression{
						Type: &ast.TypeExpression{Ident: ast.NewIdent("true")},
					},
				},
			},
		},
	}
	prov.add(rootPath, root)

	res, err := ResolveLazy(context.Background(), prov, nil, rootPath, nil)
	if err != nil {
		t.Fatalf("ResolveLazy: %v", err)
	}

	rootMod, _ := res.ModuleAt(rootPath)
	mainID, _ := rootMod.declIdent("main")
	if rootMod.treated[mainID] {
		t.Errorf("with no entry identifiers, main is never referenced and must stay dead")
	}

	assembled := res.Assemble(true)
	if len(assembled.GlobalDeclarations) != 1 || !assembled.GlobalDeclarations[0].IsConstAssert() {
		t.Errorf("expected only the root's own const-assert to survive tree-shaking, got %+v", assembled.GlobalDeclarations)
	}
}
