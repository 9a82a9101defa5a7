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

// Package graph provides the graph command for weslink: report the set
// of modules a root (or the inline "wgsl" script of an HTML file)
// transitively loads, and any bare references none of them define —
// mirroring the teacher's trace command's single-file vs.
// NDJSON-over-multiple-files report modes.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/fs"
	"github.com/bennypowers/weslink/internal/logging"
	weslink "github.com/bennypowers/weslink/link"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
	"github.com/bennypowers/weslink/provider/fsprovider"
	"github.com/bennypowers/weslink/provider/memory"
	"github.com/bennypowers/weslink/provider/router"
	"github.com/bennypowers/weslink/wgslparse"
)

// Cmd is the graph cobra command.
var Cmd = &cobra.Command{
	Use:   "graph <root-module-path|file.html...>",
	Short: "Report the modules a root transitively loads",
	Long: `Report which modules are reachable from a root module path, or from
the inline <script type="wgsl"> of an HTML file.

When the arguments and --glob matches together name a single target,
prints a human-readable report. For more than one target, prints one
NDJSON report object per line.`,
	Example: `  # Graph a root module under ./shaders
  weslink graph main --package ./shaders

  # Graph the inline wgsl script in a page
  weslink graph index.html

  # Graph many pages at once (NDJSON output)
  weslink graph --glob "_site/**/*.html"`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("glob", "", `Glob pattern matching HTML files (e.g. "_site/**/*.html")`)
}

// report is one argument's graph result, serialized as a line of NDJSON
// when more than one argument is processed.
type report struct {
	File       string   `json:"file"`
	Modules    []string `json:"modules"`
	Unresolved []string `json:"unresolved,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	absRoot, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	targets := append([]string(nil), args...)
	if globPattern, _ := cmd.Flags().GetString("glob"); globPattern != "" {
		matches, err := doublestar.FilepathGlob(globPattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
		targets = append(targets, matches...)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets to graph: provide a root module path, an HTML file, or --glob")
	}

	logger := logging.New(viper.GetBool("verbose"))
	reports := make([]report, 0, len(targets))
	for _, target := range targets {
		reports = append(reports, graphOne(cmd.Context(), osfs, absRoot, target, logger))
	}

	if len(reports) == 1 {
		return printHuman(reports[0])
	}
	for _, r := range reports {
		out, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling report for %s: %w", r.File, err)
		}
		fmt.Println(string(out))
	}
	return nil
}

func graphOne(ctx context.Context, osfs fs.FileSystem, absRoot, target string, logger logging.Logger) report {
	modules, unresolved, err := resolveTarget(ctx, osfs, absRoot, target, logger)
	if err != nil {
		return report{File: target, Error: err.Error()}
	}
	sort.Strings(modules)
	sort.Strings(unresolved)
	return report{File: target, Modules: modules, Unresolved: unresolved}
}

// resolveTarget resolves one argument into the set of module paths it
// loads and the bare references none of them define. HTML arguments
// contribute their inline <script type="wgsl"> as the root module,
// falling back to the filesystem provider for any module it imports;
// everything else is treated as a root module path directly.
func resolveTarget(ctx context.Context, osfs fs.FileSystem, absRoot, target string, logger logging.Logger) ([]string, []string, error) {
	fsProv := fsprovider.New(osfs, absRoot)

	if strings.HasSuffix(target, ".html") || strings.HasSuffix(target, ".htm") {
		data, err := osfs.ReadFile(target)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", target, err)
		}
		source, err := extractInlineModule(data)
		if err != nil {
			return nil, nil, fmt.Errorf("extracting <script type=\"wgsl\"> from %s: %w", target, err)
		}
		rootPath := modpath.New(strings.TrimSuffix(filepath.Base(target), filepath.Ext(target)))
		mem := memory.New()
		mem.AddModule(rootPath, source)
		routed := router.New().Mount(rootPath, mem).WithFallback(fsProv)
		return runResolution(ctx, routed, rootPath, logger)
	}

	rootPath, err := modpath.Parse(target)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid root module path %q: %w", target, err)
	}
	return runResolution(ctx, fsProv, rootPath, logger)
}

func runResolution(ctx context.Context, prov provider.Provider, rootPath modpath.Path, logger logging.Logger) ([]string, []string, error) {
	res, err := weslink.ResolveEager(ctx, prov, wgslparse.Parse, rootPath, weslink.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	declared := make(map[*ast.Ident]bool)
	modules := make([]string, 0, len(res.Modules()))
	for _, m := range res.Modules() {
		modules = append(modules, m.Path.String())
		for _, decl := range m.Unit.GlobalDeclarations {
			if id := decl.Ident(); id != nil {
				declared[id] = true
			}
		}
	}

	seen := make(map[string]bool)
	var unresolved []string
	for _, m := range res.Modules() {
		for _, decl := range m.Unit.GlobalDeclarations {
			decl.WalkTypeExpressions(func(t *ast.TypeExpression) {
				if t.Path != nil || declared[t.Ident] {
					return
				}
				name := t.Ident.Name()
				if !seen[name] {
					seen[name] = true
					unresolved = append(unresolved, name)
				}
			})
		}
	}
	return modules, unresolved, nil
}

func printHuman(r report) error {
	if r.Error != "" {
		return fmt.Errorf("%s", r.Error)
	}
	fmt.Printf("modules reachable from %s:\n", r.File)
	for _, m := range r.Modules {
		fmt.Printf("  %s\n", m)
	}
	if len(r.Unresolved) > 0 {
		fmt.Println("unresolved references (builtins or typos):")
		for _, u := range r.Unresolved {
			fmt.Printf("  %s\n", u)
		}
	}
	return nil
}

// extractInlineModule returns the text of the first <script
// type="wgsl"> element in content, adapting the teacher's
// trace/html.go ExtractScripts to target a single shader module
// instead of the ES module graph of <script type="module"> tags.
func extractInlineModule(content []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return "", err
	}
	var found string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if attr.Key == "type" && attr.Val == "wgsl" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					found = n.FirstChild.Data
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	if strings.TrimSpace(found) == "" {
		return "", fmt.Errorf(`no <script type="wgsl"> found`)
	}
	return found, nil
}
