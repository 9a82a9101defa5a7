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
package importflat_test

import (
	"testing"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/importflat"
	"github.com/bennypowers/weslink/modpath"
)

func TestFlattenSimpleItem(t *testing.T) {
	shape := ast.NewIdent("Shape")
	stmt := ast.ImportStatement{
		Path:    modpath.NewPackage("lib"),
		Content: ast.ImportContent{Item: &ast.ImportItem{Ident: shape}},
	}

	table, err := importflat.Flatten([]ast.ImportStatement{stmt}, modpath.New())
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	target, ok := table[shape]
	if !ok {
		t.Fatal("expected an entry for the imported alias")
	}
	if target.Path.String() != "package::lib" || target.Ident != "Shape" {
		t.Errorf("got %+v", target)
	}
}

func TestFlattenRenamed(t *testing.T) {
	shape := ast.NewIdent("Shape")
	alias := ast.NewIdent("MyShape")
	stmt := ast.ImportStatement{
		Path:    modpath.NewPackage("lib"),
		Content: ast.ImportContent{Item: &ast.ImportItem{Ident: shape, Rename: alias}},
	}

	table, err := importflat.Flatten([]ast.ImportStatement{stmt}, modpath.New())
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	if _, ok := table[shape]; ok {
		t.Fatal("the un-renamed ident must not be a table key")
	}
	target, ok := table[alias]
	if !ok || target.Ident != "Shape" {
		t.Fatalf("got %+v, %v", target, ok)
	}
}

func TestFlattenCollectionDistributesParentPath(t *testing.T) {
	a := ast.NewIdent("a")
	b := ast.NewIdent("b")
	stmt := ast.ImportStatement{
		Path: modpath.NewPackage("lib"),
		Content: ast.ImportContent{Collection: []ast.Import{
			{Path: []string{"shapes"}, Content: ast.ImportContent{Item: &ast.ImportItem{Ident: a}}},
			{Path: []string{"colors"}, Content: ast.ImportContent{Item: &ast.ImportItem{Ident: b}}},
		}},
	}

	table, err := importflat.Flatten([]ast.ImportStatement{stmt}, modpath.New())
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	if table[a].Path.String() != "package::lib::shapes" {
		t.Errorf("a path = %s", table[a].Path)
	}
	if table[b].Path.String() != "package::lib::colors" {
		t.Errorf("b path = %s", table[b].Path)
	}
}

func TestFlattenDuplicateAliasErrors(t *testing.T) {
	a1 := ast.NewIdent("x")
	a2 := ast.NewIdent("x")
	stmt := ast.ImportStatement{
		Path: modpath.NewPackage("lib"),
		Content: ast.ImportContent{Collection: []ast.Import{
			{Content: ast.ImportContent{Item: &ast.ImportItem{Ident: a1}}},
			{Content: ast.ImportContent{Item: &ast.ImportItem{Ident: a2}}},
		}},
	}

	_, err := importflat.Flatten([]ast.ImportStatement{stmt}, modpath.New())
	var dupErr *importflat.DuplicateSymbolError
	if err == nil {
		t.Fatal("expected a duplicate symbol error")
	}
	if !asDuplicateSymbolError(err, &dupErr) {
		t.Fatalf("expected *importflat.DuplicateSymbolError, got %T: %v", err, err)
	}
}

func asDuplicateSymbolError(err error, target **importflat.DuplicateSymbolError) bool {
	if e, ok := err.(*importflat.DuplicateSymbolError); ok {
		*target = e
		return true
	}
	return false
}

func TestFlattenRelativeImportClimbsFromModulePath(t *testing.T) {
	sibling := ast.NewIdent("Sibling")
	stmt := ast.ImportStatement{
		Path:    modpath.Path{Origin: modpath.Relative, SuperCount: 1, Segments: []string{"sibling"}},
		Content: ast.ImportContent{Item: &ast.ImportItem{Ident: sibling}},
	}
	modulePath := modpath.Path{Origin: modpath.Relative, Segments: []string{"sub", "mod"}}

	table, err := importflat.Flatten([]ast.ImportStatement{stmt}, modulePath)
	if err != nil {
		t.Fatalf("Flatten error: %v", err)
	}
	if table[sibling].Path.String() != "self::sub::sibling" {
		t.Errorf("got %s", table[sibling].Path)
	}
}
