package transform

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"text/template"
)

// CompanionSuffix is appended to the function name to form the companion type
// name. Go has no hygienic name synthesis, so the suffix is a documented
// reserved convention; a user identifier with the same name surfaces as an
// ordinary compile error. The companion inherits the function's visibility
// because its name starts with the function name.
const CompanionSuffix = "OperationDoc"

// Result is the outcome of transforming one annotated function declaration.
type Result struct {
	FuncName      string
	CompanionName string
	Summary       string
	Description   string

	// Rewritten replaces src[Start:End]: the doc comment minus directive
	// lines, followed by the declaration with the companion parameter
	// inserted at position 0.
	Rewritten []byte
	// Generated holds the companion type declaration and its two capability
	// implementations, destined for the colocated generated file.
	Generated []byte

	Start, End int
}

var companionTemplate = template.Must(template.New("companion").Parse(
	`// {{.CompanionName}} anchors the generated documentation and extraction
// capabilities for {{.FuncName}}. It has no fields; its zero value is the
// only value.
type {{.CompanionName}} struct{}

// DescribeOperation implements op.OperationDescriber with the text taken
// from the doc comment of {{.FuncName}}.
func ({{.CompanionName}}) DescribeOperation(operation *op.Operation) {
	operation.Summary = op.String({{printf "%q" .Summary}})
	operation.Description = op.String({{printf "%q" .Description}})
}

// ExtractRequest implements op.RequestExtractor. It always succeeds.
func ({{.CompanionName}}) ExtractRequest(*http.Request, *op.State) error {
	return nil
}
`))

// Transform rewrites one annotated function declaration. src must be the
// source that fset/fn were parsed from. The transform is all-or-nothing: any
// error means no output for the declaration.
func Transform(src []byte, fset *token.FileSet, fn *ast.FuncDecl) (*Result, error) {
	if fn.Recv != nil {
		return nil, fmt.Errorf("%s: %s cannot be applied to a method", fn.Name.Name, Directive)
	}
	if fn.Body == nil {
		return nil, fmt.Errorf("%s: %s requires a function body", fn.Name.Name, Directive)
	}

	summary, description := SplitDoc(fn.Doc)

	r := &Result{
		FuncName:      fn.Name.Name,
		CompanionName: fn.Name.Name + CompanionSuffix,
		Summary:       summary,
		Description:   description,
	}

	var err error
	if r.Rewritten, r.Start, r.End, err = rewriteDecl(src, fset, fn, r.CompanionName); err != nil {
		return nil, err
	}

	var gen bytes.Buffer
	if err := companionTemplate.Execute(&gen, r); err != nil {
		return nil, fmt.Errorf("render companion declarations for %s: %w", fn.Name.Name, err)
	}
	r.Generated = gen.Bytes()

	return r, nil
}

// rewriteDecl produces the replacement text for the declaration: the doc
// comment with directive lines removed, then the original declaration bytes
// with the companion parameter spliced in right after the parameter list's
// opening paren. The companion is bound as "_ <companion>" normally, or as a
// bare "<companion>" when the original parameters are unnamed, since Go
// forbids mixing named and unnamed parameters. Body, results, and parameter
// order are untouched.
func rewriteDecl(src []byte, fset *token.FileSet, fn *ast.FuncDecl, companion string) ([]byte, int, int, error) {
	declStart := fset.Position(fn.Pos()).Offset
	declEnd := fset.Position(fn.End()).Offset
	start := declStart
	if fn.Doc != nil {
		start = fset.Position(fn.Doc.Pos()).Offset
	}

	if fn.Type.Params == nil || !fn.Type.Params.Opening.IsValid() {
		return nil, 0, 0, fmt.Errorf("%s: declaration has no parameter list", fn.Name.Name)
	}
	insert := fset.Position(fn.Type.Params.Opening).Offset + 1
	if insert < declStart || insert > declEnd {
		return nil, 0, 0, fmt.Errorf("%s: parameter list lies outside the declaration", fn.Name.Name)
	}

	var buf bytes.Buffer
	if fn.Doc != nil {
		kept := make([]*ast.Comment, 0, len(fn.Doc.List))
		for _, c := range fn.Doc.List {
			if strings.HasPrefix(c.Text, "//") && isDirective(c.Text[2:]) {
				continue
			}
			kept = append(kept, c)
		}
		// Removing the directive can leave blank "//" lines dangling at the
		// end of the group; gofmt's doc comment normalization would strip
		// them anyway, so drop them here to keep the output stable.
		for len(kept) > 0 {
			last := kept[len(kept)-1]
			if !strings.HasPrefix(last.Text, "//") || strings.TrimSpace(last.Text[2:]) != "" {
				break
			}
			kept = kept[:len(kept)-1]
		}
		for _, c := range kept {
			buf.WriteString(c.Text)
			buf.WriteByte('\n')
		}
	}

	buf.Write(src[declStart:insert])
	switch {
	case fn.Type.Params.NumFields() == 0:
		buf.WriteString("_ " + companion)
	case unnamedParams(fn.Type.Params):
		buf.WriteString(companion + ", ")
	default:
		buf.WriteString("_ " + companion + ", ")
	}
	buf.Write(src[insert:declEnd])

	return buf.Bytes(), start, declEnd, nil
}

// unnamedParams reports whether the parameter list uses type-only parameters.
// Go requires a parameter list to be either fully named or fully unnamed, so
// inspecting any field is enough.
func unnamedParams(params *ast.FieldList) bool {
	for _, field := range params.List {
		if len(field.Names) == 0 {
			return true
		}
	}
	return false
}
