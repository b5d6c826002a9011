// Package fixture loads declarative class/call fixtures from TOML and
// materialises them as ast.Modules. It is the repository's stand-in for a
// real parser front end: annotation types and literal expressions arrive
// already classified, the way a host checker's AST provider would deliver
// them.
package fixture

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"datacheck/internal/ast"
	"datacheck/internal/diag"
	"datacheck/internal/source"
	"datacheck/internal/types"
)

type memberDecl struct {
	Name    string `toml:"name"`
	Type    string `toml:"type"`    // annotation; empty means plain assignment
	Default string `toml:"default"` // literal text, optional
	Value   string `toml:"value"`   // literal text for plain assignments
}

type classDecl struct {
	Name    string       `toml:"name"`
	Members []memberDecl `toml:"member"`
}

type callDecl struct {
	Class  string            `toml:"class"`
	Args   []string          `toml:"args"`
	Kwargs map[string]string `toml:"kwargs"`
}

type document struct {
	Classes []classDecl `toml:"class"`
	Calls   []callDecl  `toml:"call"`
}

// LoadFile reads a fixture file into the FileSet and builds its module.
// Malformed literals and unknown type names become diagnostics, not errors;
// only unreadable or syntactically invalid TOML fails the load.
func LoadFile(fs *source.FileSet, path string, r diag.Reporter) (*ast.Module, error) {
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return decode(fs, fileID, r)
}

// LoadBytes builds a module from in-memory fixture content (tests, stdin).
func LoadBytes(fs *source.FileSet, name string, content []byte, r diag.Reporter) (*ast.Module, error) {
	fileID := fs.AddVirtual(name, content)
	return decode(fs, fileID, r)
}

// DecodeLoaded builds a module from a file already present in the FileSet.
// Batch drivers pre-load files once and decode them per worker.
func DecodeLoaded(fs *source.FileSet, fileID source.FileID, r diag.Reporter) (*ast.Module, error) {
	return decode(fs, fileID, r)
}

func decode(fs *source.FileSet, fileID source.FileID, r diag.Reporter) (*ast.Module, error) {
	file := fs.Get(fileID)

	var doc document
	if err := toml.Unmarshal(file.Content, &doc); err != nil {
		return nil, fmt.Errorf("fixture %s: failed to parse TOML: %w", file.Path, err)
	}

	mod := ast.NewModule(source.NewInterner(), types.NewInterner())
	sp := newSpanner(fileID, file.Content)

	for _, cd := range doc.Classes {
		loadClass(mod, sp, cd, r)
	}
	for _, cl := range doc.Calls {
		loadCall(mod, sp, cl, r)
	}
	return mod, nil
}

func loadClass(mod *ast.Module, sp *spanner, cd classDecl, r diag.Reporter) {
	classSpan := sp.locate(cd.Name)
	class := mod.AddClass(mod.Strings.Intern(cd.Name), classSpan)

	for _, md := range cd.Members {
		span := sp.locate(md.Name)
		name := mod.Strings.Intern(md.Name)

		if md.Type == "" {
			value := ast.NoExprID
			if md.Value != "" {
				value = literalExpr(mod, sp, md.Value, r)
			}
			mod.AddAssign(class, name, span, value)
			continue
		}

		annotation := ResolveType(mod, md.Type)
		if annotation == types.NoTypeID {
			diag.ReportError(r, diag.FixUnknownType, span,
				fmt.Sprintf("unknown type annotation %q", md.Type)).Emit()
			annotation = mod.Types.Builtins().Any
		}

		defaultExpr := ast.NoExprID
		if md.Default != "" {
			defaultExpr = literalExpr(mod, sp, md.Default, r)
		}
		mod.AddField(class, name, span, annotation, defaultExpr)
	}
}

func loadCall(mod *ast.Module, sp *spanner, cl callDecl, r diag.Reporter) {
	span := sp.locate(cl.Class)

	positional := make([]ast.ExprID, 0, len(cl.Args))
	for _, text := range cl.Args {
		positional = append(positional, literalExpr(mod, sp, text, r))
	}

	// TOML tables are unordered; sort keyword names so binding order and
	// diagnostics stay deterministic across runs.
	names := make([]string, 0, len(cl.Kwargs))
	for name := range cl.Kwargs {
		names = append(names, name)
	}
	sort.Strings(names)

	keywords := make([]ast.KeywordArg, 0, len(names))
	for _, name := range names {
		keywords = append(keywords, ast.KeywordArg{
			Name:     mod.Strings.Intern(name),
			NameSpan: sp.locate(name),
			Value:    literalExpr(mod, sp, cl.Kwargs[name], r),
		})
	}

	callSpan := span
	for _, id := range positional {
		callSpan = callSpan.Cover(mod.Expr(id).Span)
	}
	for _, kw := range keywords {
		callSpan = callSpan.Cover(mod.Expr(kw.Value).Span)
	}
	mod.AddCall(mod.Strings.Intern(cl.Class), callSpan, positional, keywords)
}

func literalExpr(mod *ast.Module, sp *spanner, text string, r diag.Reporter) ast.ExprID {
	span := sp.locate(text)
	ty, ok := classifyLiteral(mod.Types, text)
	if !ok {
		diag.ReportError(r, diag.FixBadLiteral, span,
			fmt.Sprintf("cannot classify literal %q", text)).Emit()
		ty = mod.Types.Builtins().Any
	}
	return mod.AddExpr(span, ty)
}
