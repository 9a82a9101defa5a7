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

// Package link is the resolver kernel: it loads every module
// transitively referenced by a root translation unit, rewrites
// namespaced identifier references to point at their owning
// declaration, and assembles the result into one flat translation
// unit. Grounded on the original wesl-rs import.rs (resolve_eager,
// resolve_lazy, Resolutions, mangle_decls, assemble) and, for the Go
// shape of the module table and cycle guard, on trace.Tracer's
// moduleCache/Traced pattern and resolve.DependencyGraph's
// mutex-protected maps.
package link

import (
	"fmt"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/importflat"
	"github.com/bennypowers/weslink/mangler"
	"github.com/bennypowers/weslink/modpath"
)

// Module is the runtime record for one loaded translation unit: its
// parsed declarations indexed by name, its flattened import table, and
// the set of declarations the kernel has proven live.
type Module struct {
	Path    modpath.Path
	Unit    *ast.TranslationUnit
	imports importflat.Table

	declByName   map[string]int     // declaration name -> index into Unit.GlobalDeclarations
	identIdx     map[*ast.Ident]int // defining Ident -> index into Unit.GlobalDeclarations
	constAsserts []int              // indices of ConstAssert declarations, always kept live

	treated map[*ast.Ident]bool // live declarations, by their defining Ident

	linking  bool // cycle-detection flag: set while this module's references are being resolved
	resolved bool // eager mode: true once every reference in this module has been rewritten
}

func newModule(path modpath.Path, unit *ast.TranslationUnit) (*Module, error) {
	imports, err := importflat.Flatten(unit.Imports, path)
	if err != nil {
		return nil, err
	}

	m := &Module{
		Path:       path,
		Unit:       unit,
		imports:    imports,
		declByName: make(map[string]int, len(unit.GlobalDeclarations)),
		identIdx:   make(map[*ast.Ident]int, len(unit.GlobalDeclarations)),
		treated:    make(map[*ast.Ident]bool),
	}
	for i, decl := range unit.GlobalDeclarations {
		if id := decl.Ident(); id != nil {
			m.declByName[id.Name()] = i
			m.identIdx[id] = i
		}
		if decl.IsConstAssert() {
			m.constAsserts = append(m.constAsserts, i)
		}
	}
	return m, nil
}

// identIndex returns the index of the declaration defined by ident.
func (m *Module) identIndex(ident *ast.Ident) (int, bool) {
	idx, ok := m.identIdx[ident]
	return idx, ok
}

// declIdent returns the defining Ident of the declaration named name,
// loading nothing: name must already exist in this module.
func (m *Module) declIdent(name string) (*ast.Ident, bool) {
	idx, ok := m.declByName[name]
	if !ok {
		return nil, false
	}
	return m.Unit.GlobalDeclarations[idx].Ident(), true
}

// isLocalIdent reports whether ident is (pointer-identical to) the
// defining Ident of a declaration in this module — the "already-local"
// reference classification.
func (m *Module) isLocalIdent(ident *ast.Ident) bool {
	_, ok := m.identIdx[ident]
	return ok
}

// Resolutions is the output of a resolver kernel run: every module that
// was loaded, in the order they were first reached from the root, plus
// the root module's own path.
type Resolutions struct {
	modules map[string]*Module
	order   []string
	root    string
}

func newResolutions(root modpath.Path) *Resolutions {
	return &Resolutions{
		modules: make(map[string]*Module),
		root:    root.String(),
	}
}

func (r *Resolutions) pushModule(m *Module) {
	key := m.Path.String()
	if _, exists := r.modules[key]; exists {
		return
	}
	r.modules[key] = m
	r.order = append(r.order, key)
}

// Root returns the root module this Resolutions was built from.
func (r *Resolutions) Root() *Module {
	return r.modules[r.root]
}

// Modules returns every loaded module, in first-reached order.
func (r *Resolutions) Modules() []*Module {
	out := make([]*Module, len(r.order))
	for i, key := range r.order {
		out[i] = r.modules[key]
	}
	return out
}

// ModuleAt returns the module loaded at path, if any.
func (r *Resolutions) ModuleAt(path modpath.Path) (*Module, bool) {
	m, ok := r.modules[path.String()]
	return m, ok
}

// Mangle renames every declaration outside the root module via m,
// leaving the root module's own declaration names untouched so its
// entry points keep their user-facing names.
func (r *Resolutions) Mangle(m mangler.Mangler) {
	for _, key := range r.order {
		if key == r.root {
			continue
		}
		mod := r.modules[key]
		for i := range mod.Unit.GlobalDeclarations {
			id := mod.Unit.GlobalDeclarations[i].Ident()
			if id == nil {
				continue
			}
			id.Rename(m.Mangle(mod.Path, id.Name()))
		}
	}
}

// Assemble concatenates every loaded module's declarations, in
// insertion order, into one flat translation unit. If strip is true,
// only declarations the kernel proved live (plus every const-assert,
// which can have side effects regardless of liveness) are kept —
// tree-shaking. Directives are concatenated and then
// consecutive-deduplicated, mirroring the original's conservative
// assemble() (see DESIGN.md's note on wesl-spec issue #71: full set
// deduplication is left for a later pass).
func (r *Resolutions) Assemble(strip bool) *ast.TranslationUnit {
	out := &ast.TranslationUnit{}
	for _, key := range r.order {
		mod := r.modules[key]
		out.GlobalDirectives = append(out.GlobalDirectives, mod.Unit.GlobalDirectives...)
		for _, decl := range mod.Unit.GlobalDeclarations {
			if !strip {
				out.GlobalDeclarations = append(out.GlobalDeclarations, decl)
				continue
			}
			keep := decl.IsConstAssert()
			if !keep {
				if id := decl.Ident(); id != nil {
					keep = mod.treated[id]
				}
			}
			if keep {
				out.GlobalDeclarations = append(out.GlobalDeclarations, decl)
			}
		}
	}
	out.GlobalDirectives = dedupDirectives(out.GlobalDirectives)
	return out
}

func dedupDirectives(directives []ast.GlobalDirective) []ast.GlobalDirective {
	if len(directives) == 0 {
		return directives
	}
	out := directives[:1]
	for _, d := range directives[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}

func (m *Module) String() string {
	return fmt.Sprintf("Module(%s)", m.Path)
}
