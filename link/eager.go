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

// ResolveEager loads every module transitively imported by root,
// unconditionally, and rewrites every type-expression reference it
// finds to point at its owning declaration. Every declaration in every
// loaded module is kept: eager mode performs no tree-shaking.
func ResolveEager(ctx context.Context, prov provider.Provider, parse provider.ParseFunc, root modpath.Path, opts ...Option) (*Resolutions, error) {
	k := newKernel(ctx, prov, parse, root, opts)

	if _, err := k.resolveModuleEager(root); err != nil {
		return nil, err
	}

	for _, mod := range k.res.Modules() {
		for i := range mod.Unit.GlobalDeclarations {
			if id := mod.Unit.GlobalDeclarations[i].Ident(); id != nil {
				mod.treated[id] = true
			}
		}
	}
	return k.res, nil
}

// resolveModuleEager recurses into every module path imports before
// visiting path's own type expressions, matching the original's
// resolve_eager. The linking flag guards against a module's own
// resolution requiring itself to already be resolved — a real import
// cycle — while letting the same module be resolved-and-cached once
// and referenced from many importers harmlessly.
func (k *kernel) resolveModuleEager(path modpath.Path) (*Module, error) {
	mod, err := k.loadModule(path)
	if err != nil {
		return nil, err
	}
	if mod.resolved {
		return mod, nil
	}
	if mod.linking {
		return nil, &CircularDependencyError{Module: path}
	}
	mod.linking = true
	defer func() { mod.linking = false }()

	visitedImportModules := make(map[string]bool)
	for _, target := range mod.imports {
		key := target.Path.String()
		if visitedImportModules[key] {
			continue
		}
		visitedImportModules[key] = true
		if _, err := k.resolveModuleEager(target.Path); err != nil {
			return nil, err
		}
	}

	for i := range mod.Unit.GlobalDeclarations {
		var walkErr error
		mod.Unit.GlobalDeclarations[i].WalkTypeExpressions(func(ty *ast.TypeExpression) {
			if walkErr != nil {
				return
			}
			walkErr = k.rewriteEager(mod, ty)
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	mod.resolved = true
	return mod, nil
}

func (k *kernel) rewriteEager(mod *Module, ty *ast.TypeExpression) error {
	kind, ref, err := classify(mod, ty)
	if err != nil {
		return err
	}
	switch kind {
	case refLocal:
		return nil
	case refBuiltin:
		return nil
	default: // refExternal
		if _, err := k.resolveModuleEager(ref.Path); err != nil {
			return err
		}
		id, _, err := k.lookupExternal(ref)
		if err != nil {
			return err
		}
		ty.Path = nil
		ty.Ident = id
		return nil
	}
}
