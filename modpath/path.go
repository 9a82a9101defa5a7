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

// Package modpath identifies importable modules by their module path:
// an origin (absolute, package-relative, or relative-to-importer) plus
// a sequence of namespace segments.
package modpath

import (
	"errors"
	"fmt"
	"strings"
)

// Origin distinguishes the three ways a Path can be anchored.
type Origin int

const (
	// Absolute paths are rooted at the resolution root and display with
	// no prefix, e.g. "a::b".
	Absolute Origin = iota
	// Relative paths are anchored at the importing module and display
	// with a run of "self"/"super" segments, e.g. "self::a" or
	// "super::super::a".
	Relative
	// Package paths are rooted at a named package and display with a
	// "package::" prefix, e.g. "package::a::b".
	Package
)

func (o Origin) String() string {
	switch o {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	case Package:
		return "package"
	default:
		return "unknown"
	}
}

// Path is a module path: an Origin plus the namespace segments under it.
// For Origin == Relative, SuperCount counts the leading "super"
// ("..") hops before Segments; SuperCount == 0 means the path is
// "self"-relative ("./...").
type Path struct {
	Origin     Origin
	SuperCount int
	Segments   []string
}

// ErrInvalidPath is returned when a textual module path cannot be parsed.
var ErrInvalidPath = errors.New("invalid module path")

// New builds an absolute Path from segments, cleaning "." and ".." the
// way Join does for relative paths.
func New(segments ...string) Path {
	return Path{Origin: Absolute}.Join(clean(segments)...)
}

// NewPackage builds a package-rooted Path.
func NewPackage(segments ...string) Path {
	return Path{Origin: Package, Segments: clean(segments)}
}

// clean removes empty segments but otherwise leaves ordering untouched;
// it does not resolve "." or ".." pseudo-segments (Join does, and New
// goes through Join).
func clean(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Parse reads a textual module path of the form "package::a::b",
// "self::a", "super::super::a::b", or "a::b" (bare, treated as
// Absolute), mirroring the "::"-separated surface syntax used in import
// statements.
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	parts := strings.Split(s, "::")

	switch parts[0] {
	case "package":
		return Path{Origin: Package, Segments: clean(parts[1:])}, nil
	case "self":
		return Path{Origin: Relative, SuperCount: 0, Segments: clean(parts[1:])}, nil
	case "super":
		i := 0
		for i < len(parts) && parts[i] == "super" {
			i++
		}
		return Path{Origin: Relative, SuperCount: i, Segments: clean(parts[i:])}, nil
	default:
		return Path{Origin: Absolute, Segments: clean(parts)}, nil
	}
}

// Join appends suffix segments onto p. A "." segment is dropped; a ".."
// segment pops p's last segment, or, when nothing is left to pop, adds
// a super hop to a Relative path and is dropped otherwise, matching
// clean_path's pop-or-keep rule for ".." components.
func (p Path) Join(suffix ...string) Path {
	segs := append([]string(nil), p.Segments...)
	super := p.SuperCount
	for _, s := range suffix {
		switch s {
		case ".":
			// no-op: "self" mid-path
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			} else if p.Origin == Relative {
				super++
			}
		default:
			segs = append(segs, s)
		}
	}
	return Path{Origin: p.Origin, SuperCount: super, Segments: segs}
}

// IsAbsolute reports whether p's Origin is Absolute.
func (p Path) IsAbsolute() bool { return p.Origin == Absolute }

// IsRelative reports whether p's Origin is Relative.
func (p Path) IsRelative() bool { return p.Origin == Relative }

// IsPackage reports whether p's Origin is Package.
func (p Path) IsPackage() bool { return p.Origin == Package }

// PackageLocal returns p with its Package origin stripped to Absolute,
// for resolvers that only care about the path within the package. It
// returns false if p is not Package-rooted.
func (p Path) PackageLocal() (Path, bool) {
	if p.Origin != Package {
		return Path{}, false
	}
	return Path{Origin: Absolute, Segments: p.Segments}, true
}

// First returns the first segment, if any.
func (p Path) First() (string, bool) {
	if len(p.Segments) == 0 {
		return "", false
	}
	return p.Segments[0], true
}

// Last returns the last segment, if any.
func (p Path) Last() (string, bool) {
	if len(p.Segments) == 0 {
		return "", false
	}
	return p.Segments[len(p.Segments)-1], true
}

// Parent returns p with its last segment removed, and false if p has no
// segments to remove.
func (p Path) Parent() (Path, bool) {
	if len(p.Segments) == 0 {
		return Path{}, false
	}
	segs := append([]string(nil), p.Segments[:len(p.Segments)-1]...)
	return Path{Origin: p.Origin, SuperCount: p.SuperCount, Segments: segs}, true
}

// Equal reports whether p and other denote the same module path.
func (p Path) Equal(other Path) bool {
	if p.Origin != other.Origin || p.SuperCount != other.SuperCount {
		return false
	}
	if len(p.Segments) != len(other.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i] != other.Segments[i] {
			return false
		}
	}
	return true
}

// String renders p in its canonical "::"-separated display form.
func (p Path) String() string {
	var b strings.Builder
	switch p.Origin {
	case Package:
		b.WriteString("package")
		for _, s := range p.Segments {
			b.WriteString("::")
			b.WriteString(s)
		}
		return b.String()
	case Relative:
		if p.SuperCount == 0 {
			b.WriteString("self")
		} else {
			for i := 0; i < p.SuperCount; i++ {
				if i > 0 {
					b.WriteString("::")
				}
				b.WriteString("super")
			}
		}
		for _, s := range p.Segments {
			b.WriteString("::")
			b.WriteString(s)
		}
		return b.String()
	default: // Absolute
		return strings.Join(p.Segments, "::")
	}
}
