// Command importcheck keeps the published contract packages lean.
//
// Non-test Go files under pkg/contracts/ are shipped to every API consumer.
// They may import the standard library and other contract packages only;
// tooling packages and third-party modules are violations.
//
// Usage:
//
//	go run ./tools/importcheck [-root <project-root>]
package main

import (
	"flag"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	modulePath   = "github.com/hagerehiwotlabs/contracts"
	contractsDir = "pkg/contracts"
)

// Violation is one forbidden import.
type Violation struct {
	File   string
	Line   int
	Import string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d imports %q", v.File, v.Line, v.Import)
}

func main() {
	root := flag.String("root", ".", "Project root directory")
	flag.Parse()
	os.Exit(run(*root, os.Stdout, os.Stderr))
}

func run(root string, stdout, stderr io.Writer) int {
	violations, err := check(root)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	for _, v := range violations {
		fmt.Fprintf(stdout, "IMPORT VIOLATION: %s\n", v)
	}
	if len(violations) > 0 {
		fmt.Fprintf(stdout, "\n❌ %d import violation(s) found\n", len(violations))
		return 1
	}
	fmt.Fprintln(stdout, "✅ Contract packages import only the standard library")
	return 0
}

// check walks root/pkg/contracts and reports every disallowed import.
func check(root string) ([]Violation, error) {
	dir := filepath.Join(root, filepath.FromSlash(contractsDir))
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	var violations []Violation
	fset := token.NewFileSet()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if allowed(importPath) {
				continue
			}
			rel, _ := filepath.Rel(root, path)
			violations = append(violations, Violation{
				File:   filepath.ToSlash(rel),
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		return violations[i].Line < violations[j].Line
	})
	return violations, nil
}

// allowed reports whether a contract package may import importPath.
// Standard library paths have no dot in their first element.
func allowed(importPath string) bool {
	own := modulePath + "/" + contractsDir
	if importPath == own || strings.HasPrefix(importPath, own+"/") {
		return true
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
