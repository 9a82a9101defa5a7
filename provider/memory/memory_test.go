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
package memory_test

import (
	"context"
	"testing"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider/memory"
)

func noopParse(_ modpath.Path, src string) (*ast.TranslationUnit, error) {
	return &ast.TranslationUnit{}, nil
}

func TestResolveSourceMissing(t *testing.T) {
	p := memory.New()
	if _, err := p.ResolveSource(context.Background(), modpath.New("missing")); err == nil {
		t.Fatal("expected an error for an unregistered path")
	}
}

func TestResolveSourceAndModule(t *testing.T) {
	p := memory.New()
	path := modpath.New("a", "b")
	p.AddModule(path, "fn f() {}")

	src, err := p.ResolveSource(context.Background(), path)
	if err != nil || src != "fn f() {}" {
		t.Fatalf("ResolveSource = %q, %v", src, err)
	}

	tu, err := p.ResolveModule(context.Background(), path, noopParse)
	if err != nil || tu == nil {
		t.Fatalf("ResolveModule = %v, %v", tu, err)
	}

	if name, ok := p.DisplayName(path); !ok || name != "a::b" {
		t.Errorf("DisplayName = %q, %v", name, ok)
	}
}
