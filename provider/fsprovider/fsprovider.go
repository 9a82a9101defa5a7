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

// Package fsprovider maps module paths onto files under a base
// directory, trying the ".wesl" extension before falling back to
// ".wgsl", grounded on the original wesl-rs FileResolver.
package fsprovider

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bennypowers/weslink/ast"
	gofs "github.com/bennypowers/weslink/fs"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
)

// DefaultExtension is tried before the ".wgsl" fallback.
const DefaultExtension = "wesl"

// Provider resolves non-rooted module paths to files under BaseDir.
type Provider struct {
	fs        gofs.FileSystem
	baseDir   string
	extension string
}

// New creates a filesystem provider rooted at baseDir.
func New(fsys gofs.FileSystem, baseDir string) *Provider {
	return &Provider{fs: fsys, baseDir: baseDir, extension: DefaultExtension}
}

// WithExtension overrides the primary extension tried before ".wgsl".
func (p *Provider) WithExtension(ext string) *Provider {
	return &Provider{fs: p.fs, baseDir: p.baseDir, extension: ext}
}

func (p *Provider) filePath(path modpath.Path) (string, error) {
	if path.IsPackage() {
		return "", fmt.Errorf("fsprovider cannot resolve a package-rooted path %s", path)
	}
	segs := append([]string(nil), path.Segments...)
	rel := filepath.Join(segs...)
	return filepath.Join(p.baseDir, rel), nil
}

// ResolveSource implements provider.Provider.
func (p *Provider) ResolveSource(_ context.Context, path modpath.Path) (string, error) {
	base, err := p.filePath(path)
	if err != nil {
		return "", &provider.ResolveError{Path: path, Err: err}
	}

	candidates := []string{base + "." + p.extension}
	if p.extension != "wgsl" {
		candidates = append(candidates, base+".wgsl")
	}

	var lastErr error
	for _, candidate := range candidates {
		data, err := p.fs.ReadFile(candidate)
		if err == nil {
			return string(data), nil
		}
		lastErr = err
	}
	return "", &provider.ResolveError{Path: path, Err: fmt.Errorf("file not found, tried %s: %w", strings.Join(candidates, ", "), lastErr)}
}

// ResolveModule implements provider.Provider.
func (p *Provider) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	return provider.DefaultResolveModule(ctx, p, path, parse)
}

// DisplayName implements provider.Provider.
func (p *Provider) DisplayName(path modpath.Path) (string, bool) {
	fp, err := p.filePath(path)
	if err != nil {
		return "", false
	}
	return fp, true
}
