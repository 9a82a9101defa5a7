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

// Package output provides shared output utilities for weslink CLI
// commands: formatting an assembled translation unit and writing it to
// stdout or a file, the same flag-driven shape as the teacher's
// internal/output.ImportMap.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/fs"
)

// Unit formats and writes an assembled translation unit to stdout, or to
// viper's "output" path if set.
func Unit(osfs fs.FileSystem, tu *ast.TranslationUnit, format string) error {
	var rendered string
	switch format {
	case "json":
		out, err := json.MarshalIndent(summarize(tu), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling assembled unit: %w", err)
		}
		rendered = string(out)
	default:
		rendered = Format(tu)
	}

	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, []byte(rendered+"\n"), 0644)
	}
	fmt.Println(rendered)
	return nil
}

// summarize reduces a translation unit to the declaration names and
// directive text useful for machine-readable --format json output,
// mirroring cmd/graph's NDJSON report shape.
func summarize(tu *ast.TranslationUnit) map[string]any {
	names := make([]string, 0, len(tu.GlobalDeclarations))
	for _, decl := range tu.GlobalDeclarations {
		if id := decl.Ident(); id != nil {
			names = append(names, id.Name())
		}
	}
	directives := make([]string, 0, len(tu.GlobalDirectives))
	for _, d := range tu.GlobalDirectives {
		directives = append(directives, formatDirective(d))
	}
	return map[string]any{
		"declarations": names,
		"directives":   directives,
	}
}

// Format renders tu back into WGSL-like surface syntax. Function bodies
// round-trip only as the flat set of identifiers they reference — ast's
// Expression model never kept full statement structure, so the printer
// can't either (see ast.Expression's doc comment).
func Format(tu *ast.TranslationUnit) string {
	var b strings.Builder
	for _, d := range tu.GlobalDirectives {
		b.WriteString(formatDirective(d))
		b.WriteString(";\n")
	}
	if len(tu.GlobalDirectives) > 0 {
		b.WriteString("\n")
	}
	for i, decl := range tu.GlobalDeclarations {
		if i > 0 {
			b.WriteString("\n")
		}
		formatDeclaration(&b, decl)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDirective(d ast.GlobalDirective) string {
	switch {
	case d.Enable != nil:
		return "enable " + strings.Join(d.Enable.Extensions, ", ")
	case d.Requires != nil:
		return "requires " + strings.Join(d.Requires.Extensions, ", ")
	case d.Diagnostic != nil:
		return fmt.Sprintf("diagnostic(%s, %s)", severityName(d.Diagnostic.Severity), d.Diagnostic.RuleName)
	default:
		return ""
	}
}

func severityName(s ast.DiagnosticSeverity) string {
	switch s {
	case ast.SeverityWarning:
		return "warning"
	case ast.SeverityInfo:
		return "info"
	case ast.SeverityOff:
		return "off"
	default:
		return "error"
	}
}

func formatDeclaration(b *strings.Builder, decl ast.GlobalDeclaration) {
	switch {
	case decl.Declaration != nil:
		formatVarDecl(b, decl.Declaration)
	case decl.TypeAlias != nil:
		fmt.Fprintf(b, "alias %s = %s;\n", decl.TypeAlias.Ident.Name(), formatType(&decl.TypeAlias.Type))
	case decl.Struct != nil:
		fmt.Fprintf(b, "struct %s {\n", decl.Struct.Ident.Name())
		for _, m := range decl.Struct.Members {
			fmt.Fprintf(b, "    %s: %s,\n", m.Ident.Name(), formatType(&m.Type))
		}
		b.WriteString("}\n")
	case decl.Function != nil:
		formatFunction(b, decl.Function)
	case decl.ConstAssert != nil:
		b.WriteString("const_assert(/* ")
		b.WriteString(strings.Join(referencedNames(decl.ConstAssert.Expression), ", "))
		b.WriteString(" */);\n")
	}
}

func formatVarDecl(b *strings.Builder, d *ast.Declaration) {
	kw := [...]string{"const", "override", "let", "var"}[d.Kind]
	b.WriteString(kw)
	if d.Kind == ast.Var && d.AddressSpace != ast.NoAddressSpace {
		fmt.Fprintf(b, "<%s", addressSpaceName(d.AddressSpace))
		if d.AccessMode != ast.NoAccessMode {
			fmt.Fprintf(b, ", %s", accessModeName(d.AccessMode))
		}
		b.WriteString(">")
	}
	fmt.Fprintf(b, " %s", d.Ident.Name())
	if d.Type != nil {
		fmt.Fprintf(b, ": %s", formatType(d.Type))
	}
	if d.Initializer != nil {
		refs := referencedNames(*d.Initializer)
		if len(refs) > 0 {
			fmt.Fprintf(b, " = /* %s */", strings.Join(refs, ", "))
		}
	}
	b.WriteString(";\n")
}

func formatFunction(b *strings.Builder, fn *ast.Function) {
	b.WriteString("fn ")
	b.WriteString(fn.Ident.Name())
	b.WriteString("(")
	for i, param := range fn.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %s", param.Ident.Name(), formatType(&param.Type))
	}
	b.WriteString(")")
	if fn.ReturnType != nil {
		fmt.Fprintf(b, " -> %s", formatType(fn.ReturnType))
	}
	b.WriteString(" {\n")
	var refs []string
	for _, e := range fn.Body {
		refs = append(refs, referencedNames(e)...)
	}
	if len(refs) > 0 {
		fmt.Fprintf(b, "    /* refs: %s */\n", strings.Join(refs, ", "))
	}
	b.WriteString("}\n")
}

func formatType(t *ast.TypeExpression) string {
	var b strings.Builder
	if t.Path != nil {
		b.WriteString(t.Path.String())
		b.WriteString("::")
	}
	b.WriteString(t.Ident.Name())
	if len(t.TemplateArgs) > 0 {
		b.WriteString("<")
		for i := range t.TemplateArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatType(&t.TemplateArgs[i]))
		}
		b.WriteString(">")
	}
	return b.String()
}

func addressSpaceName(a ast.AddressSpace) string {
	switch a {
	case ast.FunctionSpace:
		return "function"
	case ast.PrivateSpace:
		return "private"
	case ast.WorkgroupSpace:
		return "workgroup"
	case ast.UniformSpace:
		return "uniform"
	case ast.StorageSpace:
		return "storage"
	case ast.HandleSpace:
		return "handle"
	default:
		return ""
	}
}

func accessModeName(a ast.AccessMode) string {
	switch a {
	case ast.ReadAccess:
		return "read"
	case ast.WriteAccess:
		return "write"
	case ast.ReadWriteAccess:
		return "read_write"
	default:
		return ""
	}
}

func referencedNames(e ast.Expression) []string {
	var names []string
	e.WalkTypeExpressions(func(t *ast.TypeExpression) {
		names = append(names, t.Ident.Name())
	})
	return names
}
