// Package lintopdoc provides a linter for opdoc:operation annotations.
package lintopdoc

import (
	"go/ast"

	"github.com/opdoc-labs/opdoc/internal/transform"
	"golang.org/x/tools/go/analysis"
)

// Analyzer checks that opdoc:operation directives sit on declarations the
// transformer accepts and that the resulting operation metadata is useful.
var Analyzer = &analysis.Analyzer{
	Name: "lintopdoc",
	Doc:  "checks opdoc:operation annotated functions",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			checkFuncDecl(fn, pass)
		}
	}
	return nil, nil
}

func checkFuncDecl(fn *ast.FuncDecl, pass *analysis.Pass) {
	if !transform.HasDirective(fn.Doc) {
		return
	}

	if fn.Recv != nil {
		pass.Reportf(fn.Pos(), "%s cannot be applied to method %s", transform.Directive, fn.Name.Name)
		return
	}
	if fn.Body == nil {
		pass.Reportf(fn.Pos(), "%s requires a function body on %s", transform.Directive, fn.Name.Name)
		return
	}

	summary, _ := transform.SplitDoc(fn.Doc)
	if summary == "" {
		pass.Reportf(fn.Pos(), "%s on %s produces an empty operation summary", transform.Directive, fn.Name.Name)
	}
}
