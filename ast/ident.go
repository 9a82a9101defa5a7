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

// Package ast is the shared syntax tree shared by providers, the import
// flattener, and the resolver kernel.
package ast

import "sync"

// Ident is a shared, mutable name cell. Two Idents are the same
// identifier iff they are the same pointer: equality and hashing (as a
// Go map key) is reference identity, never the string value. Renaming
// one Ident through Rename is visible to every holder of the pointer,
// which is how a single mangle pass updates a declaration's name and
// every external reference to it at once.
type Ident struct {
	mu   sync.RWMutex
	name string
}

// NewIdent creates a fresh identifier cell holding name.
func NewIdent(name string) *Ident {
	return &Ident{name: name}
}

// Name returns the identifier's current spelling.
func (id *Ident) Name() string {
	id.mu.RLock()
	defer id.mu.RUnlock()
	return id.name
}

// Rename changes the identifier's spelling in place.
func (id *Ident) Rename(name string) {
	id.mu.Lock()
	defer id.mu.Unlock()
	id.name = name
}

func (id *Ident) String() string {
	return id.Name()
}
