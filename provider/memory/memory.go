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

// Package memory provides a Provider backed entirely by an in-memory
// map of path to source text, grounded on the original wesl-rs
// VirtualResolver. It is the natural provider for tests and for
// embedding a handful of modules without touching a filesystem.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// Provider resolves module paths against an in-memory set of named
// source strings.
type Provider struct {
	mu      sync.RWMutex
	modules map[string]string
}

// New creates an empty in-memory provider.
func New() *Provider {
	return &Provider{modules: make(map[string]string)}
}

// AddModule registers source text for path.
func (p *Provider) AddModule(path modpath.Path, source string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modules[path.String()] = source
}

// Paths returns every path registered with this provider.
func (p *Provider) Paths() []modpath.Path {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]modpath.Path, 0, len(p.modules))
	for k := range p.modules {
		parsed, err := modpath.Parse(k)
		if err == nil {
			out = append(out, parsed)
		}
	}
	return out
}

// ResolveSource implements provider.Provider.
func (p *Provider) ResolveSource(_ context.Context, path modpath.Path) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	src, ok := p.modules[path.String()]
	if !ok {
		return "", &provider.ResolveError{Path: path, Err: fmt.Errorf("no module registered")}
	}
	return src, nil
}

// ResolveModule implements provider.Provider.
func (p *Provider) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	return provider.DefaultResolveModule(ctx, p, path, parse)
}

// DisplayName implements provider.Provider.
func (p *Provider) DisplayName(path modpath.Path) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.modules[path.String()]
	if !ok {
		return "", false
	}
	return path.String(), true
}
