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

// Package importflat flattens a module's nested import statements into
// a single local-alias table, grounded on the original wesl-rs
// imported_resources.
package importflat

import (
	"fmt"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
)

// Target is what a local alias refers to: an external module path and
// the identifier spelling it has there.
type Target struct {
	Path  modpath.Path
	Ident string
}

// Table maps each locally-defined import alias to its external target.
type Table map[*ast.Ident]Target

// DuplicateSymbolError is returned when two import items bind the same
// local alias.
type DuplicateSymbolError struct {
	Name string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate import alias %q", e.Name)
}

// Flatten builds a Table from modulePath's own import statements,
// joining each relative import path against modulePath and distributing
// a collection's parent path segments over its children.
func Flatten(imports []ast.ImportStatement, modulePath modpath.Path) (Table, error) {
	table := make(Table)
	seen := make(map[string]bool)

	for _, stmt := range imports {
		target := absolute(stmt.Path, modulePath)
		if err := flattenContent(stmt.Content, target, table, seen); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Absolute resolves a (possibly relative) import path against the
// importing module's own path, mirroring the original's
// absolute_resource: a Package or Absolute path is used as-is; a
// Relative path climbs/descends from modulePath. Exported for the
// resolver kernel, which applies the same rule to qualified
// type-expression paths that are not routed through an import alias.
func Absolute(path, modulePath modpath.Path) modpath.Path {
	return absolute(path, modulePath)
}

func absolute(path, modulePath modpath.Path) modpath.Path {
	if path.Origin != modpath.Relative {
		return path
	}
	// Climb exactly SuperCount segments off the importer's own path: a
	// "self" import climbs none and each "super" ("..") cancels one
	// previous Normal segment, not one plus an implicit "containing
	// directory" step (see spec §3).
	base := modulePath
	for i := 0; i < path.SuperCount; i++ {
		if parent, ok := base.Parent(); ok {
			base = parent
		}
	}
	return base.Join(path.Segments...)
}

func flattenContent(content ast.ImportContent, parent modpath.Path, table Table, seen map[string]bool) error {
	if content.Item != nil {
		item := content.Item
		alias := item.Ident
		aliasName := item.Ident.Name()
		if item.Rename != nil {
			alias = item.Rename
			aliasName = item.Rename.Name()
		}
		if seen[aliasName] {
			return &DuplicateSymbolError{Name: aliasName}
		}
		seen[aliasName] = true
		table[alias] = Target{Path: parent, Ident: item.Ident.Name()}
		return nil
	}

	for _, child := range content.Collection {
		childPath := parent.Join(child.Path...)
		if err := flattenContent(child.Content, childPath, table, seen); err != nil {
			return err
		}
	}
	return nil
}
