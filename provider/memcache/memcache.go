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

// Package memcache wraps a Provider with a bounded cache over
// ResolveSource, so that concurrent lookups of the same module path
// collapse into a single underlying load. Eviction is insertion-order
// (oldest-inserted first), not recency-based: a hit never moves an
// entry, matching the teacher's cdn.PackageCache.
package memcache

import (
	"context"
	"sync"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

type entry struct {
	once sync.Once
	src  string
	err  error
}

// Provider memoizes an inner Provider's ResolveSource calls by module
// path, evicting the oldest-inserted entry once maxSize is exceeded.
type Provider struct {
	inner   provider.Provider
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
	maxSize int
}

// DefaultMaxSize is used when New is given a non-positive size.
const DefaultMaxSize = 256

// New wraps inner with a cache holding up to maxSize source entries.
func New(inner provider.Provider, maxSize int) *Provider {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Provider{
		inner:   inner,
		entries: make(map[string]*entry),
		maxSize: maxSize,
	}
}

// ResolveSource implements provider.Provider, memoizing by path.String().
func (p *Provider) ResolveSource(ctx context.Context, path modpath.Path) (string, error) {
	key := path.String()

	p.mu.Lock()
	e, ok := p.entries[key]
	if !ok {
		e = &entry{}
		p.entries[key] = e
		if len(p.entries) > p.maxSize {
			oldest := p.order[0]
			p.order = p.order[1:]
			delete(p.entries, oldest)
		}
		p.order = append(p.order, key)
	}
	p.mu.Unlock()

	e.once.Do(func() {
		e.src, e.err = p.inner.ResolveSource(ctx, path)
	})
	return e.src, e.err
}

// ResolveModule implements provider.Provider. It does not cache parsed
// units, only source text: re-parsing is cheap relative to the I/O
// ResolveSource guards against repeating.
func (p *Provider) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	return provider.DefaultResolveModule(ctx, p, path, parse)
}

// DisplayName implements provider.Provider.
func (p *Provider) DisplayName(path modpath.Path) (string, bool) {
	return p.inner.DisplayName(path)
}

// Size returns the number of cached entries.
func (p *Provider) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
