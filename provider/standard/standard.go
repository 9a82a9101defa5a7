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

// Package standard composes a registry and a filesystem provider the
// way most callers want by default: package-rooted paths go to the
// registry, everything else goes to the filesystem, grounded on the
// original wesl-rs StandardResolver.
package standard

import (
	"context"
	"fmt"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// Provider dispatches package-rooted paths to Packages and all other
// paths to Files.
type Provider struct {
	Packages provider.Provider
	Files    provider.Provider
}

// New creates a standard provider from a registry-backed provider and a
// filesystem-backed provider.
func New(packages, files provider.Provider) *Provider {
	return &Provider{Packages: packages, Files: files}
}

func (p *Provider) dispatch(path modpath.Path) (provider.Provider, error) {
	if path.IsPackage() {
		if p.Packages == nil {
			return nil, fmt.Errorf("no package provider configured for %s", path)
		}
		return p.Packages, nil
	}
	if p.Files == nil {
		return nil, fmt.Errorf("no file provider configured for %s", path)
	}
	return p.Files, nil
}

// ResolveSource implements provider.Provider.
func (p *Provider) ResolveSource(ctx context.Context, path modpath.Path) (string, error) {
	target, err := p.dispatch(path)
	if err != nil {
		return "", &provider.ResolveError{Path: path, Err: err}
	}
	return target.ResolveSource(ctx, path)
}

// ResolveModule implements provider.Provider.
func (p *Provider) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	target, err := p.dispatch(path)
	if err != nil {
		return nil, &provider.ResolveError{Path: path, Err: err}
	}
	return target.ResolveModule(ctx, path, parse)
}

// DisplayName implements provider.Provider.
func (p *Provider) DisplayName(path modpath.Path) (string, bool) {
	target, err := p.dispatch(path)
	if err != nil {
		return "", false
	}
	return target.DisplayName(path)
}
