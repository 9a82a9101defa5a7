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
	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/importflat"
	"github.com/bennypowers/weslink/modpath"
)

// refKind is the outcome of classifying one TypeExpression found inside
// mod, following the four cases the resolver kernel distinguishes (see
// SPEC_FULL.md §4.E).
type refKind int

const (
	refLocal refKind = iota
	refExternal
	refBuiltin
)

// externalRef names the module path and declaration name a reference
// resolves to once it leaves its own module.
type externalRef struct {
	Path modpath.Path
	Name string
}

// classify determines what kind of reference ty is within mod, and for
// refExternal, what it points at. It never loads another module: the
// caller decides how (and whether) to load the external module, which
// is what lets eager and lazy mode share this logic while differing in
// when loads happen. The one exception is the case an externally-
// qualified or aliased path's effective target turns out to be mod's
// own path — classify resolves that locally itself (rewriting ty in
// place, like case 1) rather than handing the caller an externalRef
// that points right back at the module still being resolved; see
// resolveOrLocal.
func classify(mod *Module, ty *ast.TypeExpression) (refKind, externalRef, error) {
	// Case 1: already local — ty.Ident is the defining Ident of one of
	// this module's own declarations (RetargetIdents already unified
	// same-name local references onto that single pointer).
	if ty.Path == nil && mod.isLocalIdent(ty.Ident) {
		return refLocal, externalRef{}, nil
	}

	if ty.Path != nil {
		// Case 2: qualified inline path whose first segment is a local
		// import alias — fold the alias's own target ident into its
		// external module path, along with whatever segments follow it,
		// the way the original's resolve_inline_resource pushes ext_ident
		// onto ext_res before appending path's remaining suffix. The name
		// actually being referenced is always ty.Ident — the qualifier
		// path never carries it — matching the fully-qualified fallback
		// below.
		if first, ok := ty.Path.First(); ok {
			if target, ok := resolveAliasByName(mod.imports, first); ok {
				rest := ty.Path.Segments[1:]
				extPath := target.Path.Join(append([]string{target.Ident}, rest...)...)
				return resolveOrLocal(mod, ty, externalRef{Path: extPath, Name: ty.Ident.Name()})
			}
		}
		// The path doesn't go through an alias: it's already a
		// fully-qualified module path, resolved against mod's own path
		// the same way an import statement's path would be.
		extPath := importflat.Absolute(*ty.Path, mod.Path)
		return resolveOrLocal(mod, ty, externalRef{Path: extPath, Name: ty.Ident.Name()})
	}

	// Case 3: bare alias — no path, but the bare name matches a local
	// import alias by spelling.
	if target, ok := resolveAliasByName(mod.imports, ty.Ident.Name()); ok {
		return resolveOrLocal(mod, ty, externalRef{Path: target.Path, Name: target.Ident})
	}

	// Case 4: neither local nor aliased — a builtin or otherwise
	// unresolved name, left untouched.
	return refBuiltin, externalRef{}, nil
}

// resolveOrLocal applies the short-circuit the original's
// resolve_inline_resource/resolve_ident_decl apply before ever loading
// another module: if ref's effective target is mod's own path, ref was
// never really external — it's a same-module reference spelled through
// a qualified path or an alias that happens to round-trip back to mod.
// Loading mod.Path here (as the caller would for a genuine refExternal)
// would hit the resolver kernel's own reentrancy guard while mod is
// still being resolved and misreport a circular dependency, so this is
// resolved directly against mod's own declarations instead.
func resolveOrLocal(mod *Module, ty *ast.TypeExpression, ref externalRef) (refKind, externalRef, error) {
	if !ref.Path.Equal(mod.Path) {
		return refExternal, ref, nil
	}
	localID, ok := mod.declIdent(ref.Name)
	if !ok {
		return refBuiltin, externalRef{}, &MissingDeclError{Module: mod.Path, Name: ref.Name}
	}
	ty.Path = nil
	ty.Ident = localID
	return refLocal, externalRef{}, nil
}

func resolveAliasByName(table importflat.Table, name string) (importflat.Target, bool) {
	for alias, target := range table {
		if alias.Name() == name {
			return target, true
		}
	}
	return importflat.Target{}, false
}
