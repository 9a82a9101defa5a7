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
package standard_test

import (
	"context"
	"testing"

	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider/memory"
	"github.com/bennypowers/weslink/provider/standard"
)

func TestDispatchesByOrigin(t *testing.T) {
	packages := memory.New()
	packages.AddModule(modpath.NewPackage("a"), "package source")
	files := memory.New()
	files.AddModule(modpath.New("b"), "file source")

	p := standard.New(packages, files)

	src, err := p.ResolveSource(context.Background(), modpath.NewPackage("a"))
	if err != nil || src != "package source" {
		t.Fatalf("package dispatch = %q, %v", src, err)
	}

	src, err = p.ResolveSource(context.Background(), modpath.New("b"))
	if err != nil || src != "file source" {
		t.Fatalf("file dispatch = %q, %v", src, err)
	}
}

func TestDispatchErrorsWhenNoSideConfigured(t *testing.T) {
	p := standard.New(memory.New(), nil)
	if _, err := p.ResolveSource(context.Background(), modpath.New("b")); err == nil {
		t.Fatal("expected an error with no file provider configured")
	}
}
