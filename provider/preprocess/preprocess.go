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

// Package preprocess wraps a Provider with a pure, deterministic
// transform applied to every module after parsing, grounded on the
// original wesl-rs Preprocessor.
package preprocess

import (
	"context"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// Transform mutates tu in place. Implementations must be pure and
// deterministic: the resolver kernel loads a path once per run, but
// separate runs over the same provider call ResolveModule for that path
// again (memcache memoizes source text, not parsed modules) and must see
// the same result each time.
type Transform func(tu *ast.TranslationUnit) error

// Provider wraps an inner Provider, applying its Transform to every module
// ResolveModule parses.
type Provider struct {
	inner provider.Provider
	apply Transform
}

// New wraps inner, applying apply to every parsed module.
func New(inner provider.Provider, apply Transform) *Provider {
	return &Provider{inner: inner, apply: apply}
}

// ResolveSource implements provider.Provider; source text passes
// through unmodified, since Transform only ever sees parsed units.
func (p *Provider) ResolveSource(ctx context.Context, path modpath.Path) (string, error) {
	return p.inner.ResolveSource(ctx, path)
}

// ResolveModule implements provider.Provider: resolves and parses via
// the inner provider, then applies the transform.
func (p *Provider) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	src, err := p.inner.ResolveSource(ctx, path)
	if err != nil {
		return nil, err
	}
	tu, err := parse(path, src)
	if err != nil {
		return nil, err
	}
	if err := p.apply(tu); err != nil {
		return nil, &provider.ResolveError{Path: path, Err: err}
	}
	return tu, nil
}

// DisplayName implements provider.Provider.
func (p *Provider) DisplayName(path modpath.Path) (string, bool) {
	return p.inner.DisplayName(path)
}
