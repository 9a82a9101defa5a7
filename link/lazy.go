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

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// workItem is one declaration whose type-expressions still need
// walking: an index into Mod's declarations, so that const-asserts
// (which define no Ident) can be queued the same way as named
// declarations.
type workItem struct {
	Mod   *Module
	Index int
}

// ResolveLazy loads only the modules and declarations reachable from
// root's entryIdents (plus every module's own const-asserts, which are
// always live regardless of reachability), following the fixed-point
// worklist from the original's resolve_lazy: declarations are expanded
// breadth-first until no new reference is discovered.
func ResolveLazy(ctx context.Context, prov provider.Provider, parse provider.ParseFunc, root modpath.Path, entryIdents []string, opts ...Option) (*Resolutions, error) {
	k := newKernel(ctx, prov, parse, root, opts)

	rootMod, err := k.loadModule(root)
	if err != nil {
		return nil, err
	}

	seededConstAsserts := map[string]bool{}
	var queue []workItem
	queue = seedConstAsserts(rootMod, queue, seededConstAsserts)

	for _, name := range entryIdents {
		idx, ok := rootMod.declByName[name]
		if !ok {
			return nil, &MissingDeclError{Module: root, Name: name}
		}
		queue = append(queue, workItem{Mod: rootMod, Index: idx})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		decl := &item.Mod.Unit.GlobalDeclarations[item.Index]

		if id := decl.Ident(); id != nil {
			if item.Mod.treated[id] {
				continue
			}
			item.Mod.treated[id] = true
		}

		var walkErr error
		queue, walkErr = k.expand(item.Mod, decl, queue, seededConstAsserts)
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return k.res, nil
}

// expand walks decl's type expressions, enqueuing whatever new local or
// external liveness they reveal, and returns the (possibly grown)
// worklist.
func (k *kernel) expand(mod *Module, decl *ast.GlobalDeclaration, queue []workItem, seededConstAsserts map[string]bool) ([]workItem, error) {
	var walkErr error
	decl.WalkTypeExpressions(func(ty *ast.TypeExpression) {
		if walkErr != nil {
			return
		}
		kind, ref, err := classify(mod, ty)
		if err != nil {
			walkErr = err
			return
		}
		switch kind {
		case refLocal:
			if !mod.treated[ty.Ident] {
				if idx, ok := mod.identIndex(ty.Ident); ok {
					queue = append(queue, workItem{Mod: mod, Index: idx})
				}
			}
		case refBuiltin:
			// leave untouched
		case refExternal:
			extMod, err := k.loadModule(ref.Path)
			if err != nil {
				walkErr = err
				return
			}
			queue = seedConstAsserts(extMod, queue, seededConstAsserts)

			extID, ok := extMod.declIdent(ref.Name)
			if !ok {
				walkErr = &MissingDeclError{Module: ref.Path, Name: ref.Name}
				return
			}
			ty.Path = nil
			ty.Ident = extID
			if !extMod.treated[extID] {
				idx, _ := extMod.identIndex(extID)
				queue = append(queue, workItem{Mod: extMod, Index: idx})
			}
		}
	})
	return queue, walkErr
}

// seedConstAsserts enqueues mod's own const-asserts exactly once, the
// first time mod is reached — mirroring the original's load_module
// helper, which seeds const-assert indices into the worklist the
// moment a module is first loaded, since const-asserts are always kept
// regardless of reachability and so always need their own references
// expanded.
func seedConstAsserts(mod *Module, queue []workItem, seeded map[string]bool) []workItem {
	key := mod.Path.String()
	if seeded[key] {
		return queue
	}
	seeded[key] = true
	for _, idx := range mod.constAsserts {
		queue = append(queue, workItem{Mod: mod, Index: idx})
	}
	return queue
}
