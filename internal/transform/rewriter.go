package transform

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedSuffix names the colocated file holding the companion
// declarations for a transformed source file.
const GeneratedSuffix = "_opdoc_gen.go"

const contractsImport = "github.com/opdoc-labs/opdoc/pkg/op"

// FileResult holds the full output for one transformed source file: the
// rewritten original plus the colocated generated file.
type FileResult struct {
	Path          string
	Source        []byte
	GeneratedPath string
	Generated     []byte
	Results       []*Result
}

// RewriteFile transforms every directive-marked function in src. It returns
// nil when the file contains no marked functions. Any failure aborts the
// whole file; partial output is never produced.
func RewriteFile(filename string, src []byte) (*FileResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	var results []*Result
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !HasDirective(fn.Doc) {
			continue
		}
		r, err := Transform(src, fset, fn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		return nil, nil
	}

	// Splice back-to-front so earlier offsets stay valid.
	rewritten := append([]byte(nil), src...)
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		var buf bytes.Buffer
		buf.Write(rewritten[:r.Start])
		buf.Write(r.Rewritten)
		buf.Write(rewritten[r.End:])
		rewritten = buf.Bytes()
	}
	if rewritten, err = format.Source(rewritten); err != nil {
		return nil, fmt.Errorf("format rewritten %s: %w", filename, err)
	}

	generated, err := renderGeneratedFile(file.Name.Name, results)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return &FileResult{
		Path:          filename,
		Source:        rewritten,
		GeneratedPath: strings.TrimSuffix(filename, ".go") + GeneratedSuffix,
		Generated:     generated,
		Results:       results,
	}, nil
}

func renderGeneratedFile(pkg string, results []*Result) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by opdoc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "import (\n\t\"net/http\"\n\n\t%q\n)\n", contractsImport)
	for _, r := range results {
		buf.WriteByte('\n')
		buf.Write(r.Generated)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return formatted, nil
}

// ProcessDirectory walks dir recursively and rewrites every Go file that
// contains directive-marked functions. Vendor, testdata, hidden and
// underscore-prefixed directories are skipped, as are test files and
// previously generated files. Nothing is written to disk; each FileResult
// carries the would-be contents.
func ProcessDirectory(dir string) ([]*FileResult, error) {
	var results []*FileResult
	err := filepath.WalkDir(dir, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			if skipDir(de.Name()) && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if skipFile(de.Name()) {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		res, err := RewriteFile(path, src)
		if err != nil {
			return err
		}
		if res != nil {
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func skipFile(name string) bool {
	return !strings.HasSuffix(name, ".go") ||
		strings.HasSuffix(name, "_test.go") ||
		strings.HasSuffix(name, GeneratedSuffix)
}
