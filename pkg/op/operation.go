// Package op holds the runtime contracts that opdoc-generated code targets:
// the Operation description artifact, the OperationDescriber and
// RequestExtractor capabilities, and a small route registry that assembles
// registered operations into an OpenAPI 3.1 document.
package op

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// NOTE: These definitions intentionally keep only the fields the generated
// code and the registry actively populate. Additional fields can be added
// without breaking existing users.

// Operation describes a single API operation. Summary and Description are
// pointers so that an absent value and a present-but-empty value remain
// distinguishable in the emitted document.
type Operation struct {
	OperationID string   `json:"operationId,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

// PathItem holds the operations registered for a single path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Patch  *Operation `json:"patch,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

// Info holds document metadata.
type Info struct {
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// Document is the root of the assembled OpenAPI 3.1 document.
type Document struct {
	OpenAPI string               `json:"openapi"`
	Info    Info                 `json:"info"`
	Paths   map[string]*PathItem `json:"paths"`
}

// Write serializes the document to w in the requested format ("json" or
// "yaml").
func (d *Document) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml", "yml":
		data, err := yaml.Marshal(d)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// String returns a pointer to s. Generated DescribeOperation implementations
// use it to populate the optional Operation fields.
func String(s string) *string {
	return &s
}
