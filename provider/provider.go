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

// Package provider defines the Provider interface that turns a module
// path into source text and a parsed module, plus the compositors
// (subpackages) that build complex resolution pipelines out of small
// providers.
package provider

import (
	"context"
	"fmt"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
)

// ResolveError wraps a failure to resolve a module path, carrying the
// path so a caller can render a useful diagnostic.
type ResolveError struct {
	Path modpath.Path
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Path, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// ParseFunc turns source text for a module path into a translation
// unit, performing local identifier retargeting. wgslparse.Parse
// satisfies this signature; providers depend on it only through this
// type, never on the wgslparse package, so the parser stays a
// replaceable collaborator.
type ParseFunc func(path modpath.Path, source string) (*ast.TranslationUnit, error)

// Provider turns a module path into source text and a parsed module.
// Implementations must be safe for concurrent use: a single resolution
// run calls ResolveSource/ResolveModule sequentially, but one provider
// may be shared by resolution runs on independent goroutines (see
// provider/memcache, whose purpose is precisely to memoize concurrent
// calls for the same path down to one underlying load).
type Provider interface {
	// ResolveSource returns the raw source text for path.
	ResolveSource(ctx context.Context, path modpath.Path) (string, error)
	// ResolveModule returns the parsed, locally-retargeted module for
	// path. Most providers implement this as DefaultResolveModule
	// applied to their own ResolveSource.
	ResolveModule(ctx context.Context, path modpath.Path, parse ParseFunc) (*ast.TranslationUnit, error)
	// DisplayName returns a human-readable name for path (e.g. a file
	// path), and false if this provider has no opinion on path.
	DisplayName(path modpath.Path) (string, bool)
}

// DefaultResolveModule is the default ResolveModule behaviour: resolve
// source text, then parse it. Embedding providers that have nothing
// special to do beyond parsing call this from their own ResolveModule
// rather than duplicating it — the Go equivalent of the Rust
// Resolver trait's default trait method, since Go interfaces carry no
// default implementations of their own.
func DefaultResolveModule(ctx context.Context, p Provider, path modpath.Path, parse ParseFunc) (*ast.TranslationUnit, error) {
	src, err := p.ResolveSource(ctx, path)
	if err != nil {
		return nil, err
	}
	tu, err := parse(path, src)
	if err != nil {
		return nil, err
	}
	return tu, nil
}
