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

// Package router dispatches a module path to one of several mounted
// providers by longest matching path prefix, grounded on the original
// wesl-rs Router.
package router

import (
	"context"
	"fmt"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

type mount struct {
	prefix   modpath.Path
	provider provider.Provider
}

// Router mounts providers at path prefixes and dispatches each
// ResolveSource/ResolveModule call to whichever mount has the longest
// matching prefix, falling back to Fallback if no mount matches.
type Router struct {
	mounts   []mount
	fallback provider.Provider
}

// New creates an empty Router.
func New() *Router {
	return &Router{}
}

// Mount registers p to handle paths under prefix.
func (r *Router) Mount(prefix modpath.Path, p provider.Provider) *Router {
	r.mounts = append(r.mounts, mount{prefix: prefix, provider: p})
	return r
}

// WithFallback sets the provider used when no mount prefix matches.
func (r *Router) WithFallback(p provider.Provider) *Router {
	r.fallback = p
	return r
}

// route finds the mount with the longest segment-prefix match, and the
// path with that prefix stripped.
func (r *Router) route(path modpath.Path) (provider.Provider, modpath.Path, bool) {
	var best *mount
	bestLen := -1
	for i := range r.mounts {
		m := &r.mounts[i]
		if isPrefix(m.prefix.Segments, path.Segments) && len(m.prefix.Segments) > bestLen {
			best = m
			bestLen = len(m.prefix.Segments)
		}
	}
	if best == nil {
		return r.fallback, path, r.fallback != nil
	}
	rest := modpath.Path{
		Origin:   path.Origin,
		Segments: append([]string(nil), path.Segments[bestLen:]...),
	}
	return best.provider, rest, true
}

func isPrefix(prefix, segs []string) bool {
	if len(prefix) > len(segs) {
		return false
	}
	for i, s := range prefix {
		if segs[i] != s {
			return false
		}
	}
	return true
}

// ResolveSource implements provider.Provider.
func (r *Router) ResolveSource(ctx context.Context, path modpath.Path) (string, error) {
	p, rest, ok := r.route(path)
	if !ok {
		return "", &provider.ResolveError{Path: path, Err: fmt.Errorf("no route matches")}
	}
	return p.ResolveSource(ctx, rest)
}

// ResolveModule implements provider.Provider.
func (r *Router) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	p, rest, ok := r.route(path)
	if !ok {
		return nil, &provider.ResolveError{Path: path, Err: fmt.Errorf("no route matches")}
	}
	return p.ResolveModule(ctx, rest, parse)
}

// DisplayName implements provider.Provider.
func (r *Router) DisplayName(path modpath.Path) (string, bool) {
	p, rest, ok := r.route(path)
	if !ok {
		return "", false
	}
	return p.DisplayName(rest)
}
