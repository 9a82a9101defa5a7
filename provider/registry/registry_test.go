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
package registry_test

import (
	"context"
	"testing"

	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider/registry"
)

func tree() *registry.StaticModule {
	return &registry.StaticModule{
		ModuleName: "mylib",
		Src:        "// root",
		Children: []registry.PkgModule{
			&registry.StaticModule{
				ModuleName: "shapes",
				Src:        "struct Circle {}",
				Children: []registry.PkgModule{
					&registry.StaticModule{ModuleName: "tri", Src: "struct Triangle {}"},
				},
			},
		},
	}
}

func TestResolveSourceWalksSegments(t *testing.T) {
	r := registry.New(tree())
	src, err := r.ResolveSource(context.Background(), modpath.NewPackage("shapes", "tri"))
	if err != nil {
		t.Fatalf("ResolveSource error: %v", err)
	}
	if src != "struct Triangle {}" {
		t.Errorf("got %q", src)
	}
}

func TestResolveSourceRejectsNonPackagePaths(t *testing.T) {
	r := registry.New(tree())
	if _, err := r.ResolveSource(context.Background(), modpath.New("shapes")); err == nil {
		t.Fatal("expected error for a non-package path")
	}
}

func TestResolveSourceMissingSegment(t *testing.T) {
	r := registry.New(tree())
	if _, err := r.ResolveSource(context.Background(), modpath.NewPackage("nope")); err == nil {
		t.Fatal("expected error for a missing submodule")
	}
}
