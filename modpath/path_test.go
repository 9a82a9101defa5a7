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
package modpath_test

import (
	"testing"

	"github.com/bennypowers/weslink/modpath"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute", "a::b::c", "a::b::c"},
		{"package", "package::a::b", "package::a::b"},
		{"self-relative", "self::a", "self::a"},
		{"super-relative", "super::super::a::b", "super::super::a::b"},
		{"bare-super", "super::a", "super::a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := modpath.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := modpath.Parse(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestJoinClimbsAboveImporter(t *testing.T) {
	// importer has only one segment to give up: the first ".." pops it,
	// and since nothing is left to pop, the second ".." must increment
	// SuperCount instead of popping past an empty Segments slice.
	importer := modpath.Path{Origin: modpath.Relative, Segments: []string{"mod"}}
	got := importer.Join("..", "..", "sibling")
	want := modpath.Path{Origin: modpath.Relative, SuperCount: 1, Segments: []string{"sibling"}}
	if !got.Equal(want) {
		t.Errorf("Join climbed wrong: got %+v (%s), want %+v (%s)", got, got, want, want)
	}
}

func TestJoinWithinPackage(t *testing.T) {
	p := modpath.NewPackage("a", "b")
	got := p.Join("c")
	want := modpath.NewPackage("a", "b", "c")
	if !got.Equal(want) {
		t.Errorf("Join = %s, want %s", got, want)
	}
}

func TestPackageLocal(t *testing.T) {
	p := modpath.NewPackage("a", "b")
	local, ok := p.PackageLocal()
	if !ok {
		t.Fatal("expected PackageLocal to succeed")
	}
	if !local.IsAbsolute() || local.String() != "a::b" {
		t.Errorf("PackageLocal = %+v (%s), want absolute a::b", local, local)
	}

	if _, ok := modpath.New("a").PackageLocal(); ok {
		t.Error("PackageLocal should fail for a non-Package path")
	}
}

func TestFirstLastParent(t *testing.T) {
	p := modpath.New("a", "b", "c")
	if first, ok := p.First(); !ok || first != "a" {
		t.Errorf("First() = %q, %v", first, ok)
	}
	if last, ok := p.Last(); !ok || last != "c" {
		t.Errorf("Last() = %q, %v", last, ok)
	}
	parent, ok := p.Parent()
	if !ok || parent.String() != "a::b" {
		t.Errorf("Parent() = %s, %v", parent, ok)
	}

	if _, ok := modpath.New().First(); ok {
		t.Error("First() on empty path should report false")
	}
}
