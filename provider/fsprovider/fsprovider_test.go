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
package fsprovider_test

import (
	"context"
	"testing"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/internal/mapfs"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider/fsprovider"
)

func noopParse(_ modpath.Path, src string) (*ast.TranslationUnit, error) {
	return &ast.TranslationUnit{}, nil
}

func TestResolveSourcePrefersWeslExtension(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/src/a/b.wesl", "fn f() {}", 0644)
	mfs.AddFile("/src/a/b.wgsl", "// wrong one", 0644)

	p := fsprovider.New(mfs, "/src")
	src, err := p.ResolveSource(context.Background(), modpath.New("a", "b"))
	if err != nil {
		t.Fatalf("ResolveSource error: %v", err)
	}
	if src != "fn f() {}" {
		t.Errorf("expected the .wesl file to win, got %q", src)
	}
}

func TestResolveSourceFallsBackToWgsl(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/src/a/b.wgsl", "fn g() {}", 0644)

	p := fsprovider.New(mfs, "/src")
	src, err := p.ResolveSource(context.Background(), modpath.New("a", "b"))
	if err != nil {
		t.Fatalf("ResolveSource error: %v", err)
	}
	if src != "fn g() {}" {
		t.Errorf("expected fallback to .wgsl, got %q", src)
	}
}

func TestResolveSourceMissingFile(t *testing.T) {
	p := fsprovider.New(mapfs.New(), "/src")
	if _, err := p.ResolveSource(context.Background(), modpath.New("nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveSourceRejectsPackagePaths(t *testing.T) {
	p := fsprovider.New(mapfs.New(), "/src")
	if _, err := p.ResolveSource(context.Background(), modpath.NewPackage("a")); err == nil {
		t.Fatal("expected error for a package-rooted path")
	}
}
