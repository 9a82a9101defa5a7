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
	"fmt"

	"github.com/bennypowers/weslink/modpath"
)

// MissingDeclError is returned when a reference names a declaration
// that does not exist in its target module.
type MissingDeclError struct {
	Module modpath.Path
	Name   string
}

func (e *MissingDeclError) Error() string {
	return fmt.Sprintf("%s has no declaration %q", e.Module, e.Name)
}

// CircularDependencyError is returned when loading a module requires
// (transitively) loading itself.
type CircularDependencyError struct {
	Module modpath.Path
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency while loading %s", e.Module)
}
