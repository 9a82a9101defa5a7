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

// Package registry resolves package-rooted module paths ("package::a::b")
// against a compile-time tree of named modules, grounded on the
// original wesl-rs PkgModule/PkgResolver, with the tree-walk-by-segment
// shape also informed by cdn.Registry's package-name lookups.
package registry

import (
	"context"
	"fmt"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// PkgModule is one node of a package's module tree: a name, its own
// source text, and its child modules.
type PkgModule interface {
	Name() string
	Source() string
	Submodules() []PkgModule
}

// StaticModule is a PkgModule built from literal Go values, the usual
// way a package embeds its own module tree (e.g. via go:embed-produced
// source strings).
type StaticModule struct {
	ModuleName string
	Src        string
	Children   []PkgModule
}

func (m *StaticModule) Name() string            { return m.ModuleName }
func (m *StaticModule) Source() string          { return m.Src }
func (m *StaticModule) Submodules() []PkgModule { return m.Children }

// Registry resolves a package-rooted Path by walking Root one segment
// at a time through Submodules().
type Registry struct {
	root PkgModule
}

// New creates a Registry rooted at root.
func New(root PkgModule) *Registry {
	return &Registry{root: root}
}

func (r *Registry) find(path modpath.Path) (PkgModule, error) {
	local, ok := path.PackageLocal()
	if !ok {
		return nil, fmt.Errorf("registry only resolves package-rooted paths, got %s", path)
	}

	cur := r.root
	for _, seg := range local.Segments {
		var next PkgModule
		for _, child := range cur.Submodules() {
			if child.Name() == seg {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("no submodule %q under %s", seg, path)
		}
		cur = next
	}
	return cur, nil
}

// ResolveSource implements provider.Provider.
func (r *Registry) ResolveSource(_ context.Context, path modpath.Path) (string, error) {
	mod, err := r.find(path)
	if err != nil {
		return "", &provider.ResolveError{Path: path, Err: err}
	}
	return mod.Source(), nil
}

// ResolveModule implements provider.Provider.
func (r *Registry) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	return provider.DefaultResolveModule(ctx, r, path, parse)
}

// DisplayName implements provider.Provider.
func (r *Registry) DisplayName(path modpath.Path) (string, bool) {
	if _, err := r.find(path); err != nil {
		return "", false
	}
	return path.String(), true
}
