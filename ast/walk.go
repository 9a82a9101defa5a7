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
package ast

// WalkTypeExpressions calls visit on every TypeExpression that appears
// anywhere within d: its own Type/Initializer/ReturnType, its member or
// parameter types, and its function body, recursively through template
// arguments and nested sub-expressions.
func (d *GlobalDeclaration) WalkTypeExpressions(visit func(*TypeExpression)) {
	switch {
	case d.Declaration != nil:
		if d.Declaration.Type != nil {
			walkTypeExpression(d.Declaration.Type, visit)
		}
		d.Declaration.Initializer.WalkTypeExpressions(visit)
	case d.TypeAlias != nil:
		walkTypeExpression(&d.TypeAlias.Type, visit)
	case d.Struct != nil:
		for i := range d.Struct.Members {
			walkTypeExpression(&d.Struct.Members[i].Type, visit)
		}
	case d.Function != nil:
		fn := d.Function
		for i := range fn.Parameters {
			walkTypeExpression(&fn.Parameters[i].Type, visit)
		}
		if fn.ReturnType != nil {
			walkTypeExpression(fn.ReturnType, visit)
		}
		for i := range fn.Body {
			fn.Body[i].WalkTypeExpressions(visit)
		}
	case d.ConstAssert != nil:
		d.ConstAssert.Expression.WalkTypeExpressions(visit)
	}
}

// RetargetIdents rewrites every Ident pointer reachable from tu's
// declarations that textually matches a defining identifier's name so
// that it points at the very same *Ident cell as the definition,
// instead of a distinct Ident with the same spelling. A parser
// naturally allocates a fresh *Ident per occurrence; RetargetIdents is
// the local-scope unification pass that must run once, right after
// parsing, before a TranslationUnit is handed to the resolver kernel —
// the kernel relies on local references already sharing their
// declaration's Ident pointer (see the "already-local" case of the
// link package's classify).
func RetargetIdents(tu *TranslationUnit) {
	byName := make(map[string]*Ident, len(tu.GlobalDeclarations))
	for _, decl := range tu.GlobalDeclarations {
		if id := decl.Ident(); id != nil {
			byName[id.Name()] = id
		}
	}
	retarget := func(ty *TypeExpression) {
		if ty.Path != nil {
			return
		}
		if def, ok := byName[ty.Ident.Name()]; ok {
			ty.Ident = def
		}
	}
	for i := range tu.GlobalDeclarations {
		tu.GlobalDeclarations[i].WalkTypeExpressions(retarget)
	}
}
