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
	"context"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/internal/logging"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// kernel holds the collaborators a resolution run needs: the provider
// that supplies module source and the parser that turns it into a
// translation unit. It is the receiver for both ResolveEager and
// ResolveLazy's recursive helpers.
type kernel struct {
	ctx   context.Context
	prov  provider.Provider
	parse provider.ParseFunc
	res   *Resolutions
	log   logging.Logger
}

// Option configures a resolution run started by ResolveEager or
// ResolveLazy, the way cdn.Resolver.WithLogger configures the teacher's
// CDN resolver.
type Option func(*kernel)

// WithLogger reports provider-load diagnostics to logger instead of
// discarding them.
func WithLogger(logger logging.Logger) Option {
	return func(k *kernel) { k.log = logger }
}

func newKernel(ctx context.Context, prov provider.Provider, parse provider.ParseFunc, root modpath.Path, opts []Option) *kernel {
	k := &kernel{ctx: ctx, prov: prov, parse: parse, res: newResolutions(root), log: logging.Nop{}}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// loadModule returns the cached Module for path, loading and flattening
// it on first use. On-demand loading plus a resolutions-wide cache is
// exactly the pattern trace.Tracer.traceModule uses its moduleCache
// for, applied here to translation units instead of import graphs.
func (k *kernel) loadModule(path modpath.Path) (*Module, error) {
	if mod, ok := k.res.ModuleAt(path); ok {
		return mod, nil
	}

	unit, err := k.prov.ResolveModule(k.ctx, path, k.parse)
	if err != nil {
		k.log.Warning("provider failed to resolve module %s: %v", path, err)
		return nil, err
	}
	ast.RetargetIdents(unit)

	mod, err := newModule(path, unit)
	if err != nil {
		return nil, err
	}
	k.log.Debug("loaded module %s", path)
	k.res.pushModule(mod)
	return mod, nil
}

// lookupExternal loads the module at ref.Path and returns the defining
// Ident of the declaration named ref.Name within it.
func (k *kernel) lookupExternal(ref externalRef) (*ast.Ident, *Module, error) {
	mod, err := k.loadModule(ref.Path)
	if err != nil {
		return nil, nil, err
	}
	id, ok := mod.declIdent(ref.Name)
	if !ok {
		return nil, nil, &MissingDeclError{Module: ref.Path, Name: ref.Name}
	}
	return id, mod, nil
}
