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

// Package link provides the link command for weslink: resolve a root
// module's imports and assemble every module it (transitively) needs
// into one flat translation unit.
package link

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bennypowers/weslink/fs"
	"github.com/bennypowers/weslink/internal/logging"
	"github.com/bennypowers/weslink/internal/output"
	weslink "github.com/bennypowers/weslink/link"
	"github.com/bennypowers/weslink/mangler"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider/fsprovider"
	"github.com/bennypowers/weslink/wgslparse"
)

// Cmd is the link cobra command that resolves and assembles WESL modules.
var Cmd = &cobra.Command{
	Use:   "link <root-module-path>",
	Short: "Resolve and assemble WESL modules into a single translation unit",
	Long: `Resolve a root module's imports against the modules rooted at
--package, and assemble the result into one flat translation unit.

By default every transitively-imported module is kept (eager mode). Pass
--lazy with one or more --entry identifiers to tree-shake: only
declarations reachable from those entry points (plus every
const_assert, which is always kept) survive assembly.`,
	Example: `  # Eager link, root module "main" under ./shaders
  weslink link main --package ./shaders

  # Lazy link, keeping only what "fragmentMain" needs
  weslink link main --lazy --entry fragmentMain

  # Mangle non-root declaration names and write to a file
  weslink link main --mangle hash --output bundle.wgsl`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("lazy", false, "Tree-shake: keep only declarations reachable from --entry")
	Cmd.Flags().StringSlice("entry", nil, "Entry identifiers kept live in --lazy mode (repeatable)")
	Cmd.Flags().String("mangle", "", `Rename non-root declarations: "hash" or "template:PATTERN"`)
	Cmd.Flags().Bool("strip", false, "Drop unreached declarations (implied by --lazy)")
	Cmd.Flags().StringP("format", "f", "wgsl", "Output format (wgsl, json)")

	_ = viper.BindPFlag("lazy", Cmd.Flags().Lookup("lazy"))
	_ = viper.BindPFlag("entry", Cmd.Flags().Lookup("entry"))
	_ = viper.BindPFlag("mangle", Cmd.Flags().Lookup("mangle"))
	_ = viper.BindPFlag("strip", Cmd.Flags().Lookup("strip"))
	_ = viper.BindPFlag("format", Cmd.Flags().Lookup("format"))
}

func run(cmd *cobra.Command, args []string) error {
	rootPath, err := modpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid root module path %q: %w", args[0], err)
	}

	absRoot, err := filepath.Abs(viper.GetString("package"))
	if err != nil {
		return fmt.Errorf("invalid package directory: %w", err)
	}

	osfs := fs.NewOSFileSystem()
	prov := fsprovider.New(osfs, absRoot)
	logOpt := weslink.WithLogger(logging.New(viper.GetBool("verbose")))

	var res *weslink.Resolutions
	if viper.GetBool("lazy") {
		res, err = weslink.ResolveLazy(cmd.Context(), prov, wgslparse.Parse, rootPath, viper.GetStringSlice("entry"), logOpt)
	} else {
		res, err = weslink.ResolveEager(cmd.Context(), prov, wgslparse.Parse, rootPath, logOpt)
	}
	if err != nil {
		return fmt.Errorf("resolving %s: %w", rootPath, err)
	}

	if spec := viper.GetString("mangle"); spec != "" {
		m, err := buildMangler(spec)
		if err != nil {
			return err
		}
		res.Mangle(m)
	}

	strip := viper.GetBool("strip") || viper.GetBool("lazy")
	assembled := res.Assemble(strip)

	return output.Unit(osfs, assembled, viper.GetString("format"))
}

func buildMangler(spec string) (mangler.Mangler, error) {
	if spec == "hash" {
		return mangler.Hash{}, nil
	}
	if rest, ok := strings.CutPrefix(spec, "template:"); ok {
		return mangler.NewTemplate(rest)
	}
	return nil, fmt.Errorf("unknown --mangle scheme %q: expected \"hash\" or \"template:PATTERN\"", spec)
}
