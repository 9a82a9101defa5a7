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

// Package mangler provides naming policies for the resolver kernel's
// assembly pass, which renames every non-root declaration to avoid
// collisions once all modules are flattened into one translation unit.
package mangler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/bennypowers/weslink/modpath"
)

// Mangler computes a new declaration name given the module path it
// lives in and its current name. Mangle must be a pure function of its
// arguments: the kernel may call it more than once for the same
// declaration across a resolution run.
type Mangler interface {
	Mangle(path modpath.Path, currentName string) string
}

// Template is a Mangler driven by a "{path}"/"{name}" placeholder
// string, the naming-policy analogue of resolve.Template's
// {package}/{version}/{path} URL templates.
type Template struct {
	pattern string
}

var templateVar = regexp.MustCompile(`\{(\w+)\}`)

// NewTemplate parses pattern, which may reference "{path}" (the
// declaration's module path segments joined with "_") and "{name}"
// (the declaration's current name). An unknown placeholder is an error.
func NewTemplate(pattern string) (*Template, error) {
	for _, m := range templateVar.FindAllStringSubmatch(pattern, -1) {
		if m[1] != "path" && m[1] != "name" {
			return nil, fmt.Errorf("unknown mangler template variable: {%s}", m[1])
		}
	}
	return &Template{pattern: pattern}, nil
}

// DefaultTemplate mangles "pkg::sub::Name" into "pkg_sub_Name".
const DefaultTemplate = "{path}_{name}"

// Mangle implements Mangler.
func (t *Template) Mangle(path modpath.Path, currentName string) string {
	flat := strings.Join(path.Segments, "_")
	result := strings.ReplaceAll(t.pattern, "{path}", flat)
	result = strings.ReplaceAll(result, "{name}", currentName)
	return result
}

// Hash is a Mangler that appends a short content-addressed suffix
// derived from the module path, guaranteeing collision-free flattening
// of same-named declarations originating in different modules without
// the verbosity of Template's full-path embedding.
type Hash struct{}

// Mangle implements Mangler.
func (Hash) Mangle(path modpath.Path, currentName string) string {
	sum := sha256.Sum256([]byte(path.String()))
	return currentName + "_" + hex.EncodeToString(sum[:])[:8]
}
