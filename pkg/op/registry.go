package op

import (
	"fmt"
	"net/http"
	"sync"
)

// Registry collects registered routes and assembles them into a Document.
// It is intentionally not shared globally so that multiple routers can be
// created in the same process without stepping on each other's toes.
//
// The registry is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu  sync.Mutex
	doc *Document
}

// NewRegistry creates an empty registry for the named API.
func NewRegistry(title, version string) *Registry {
	return &Registry{
		doc: &Document{
			OpenAPI: "3.1.0",
			Info:    Info{Title: title, Version: version},
			Paths:   make(map[string]*PathItem),
		},
	}
}

// Register records an operation for method and path and invokes each
// describer exactly once, in order, against the freshly created Operation.
// The returned Operation may be further customized by the caller.
func (r *Registry) Register(method, path string, describers ...OperationDescriber) (*Operation, error) {
	operation := &Operation{}
	for _, d := range describers {
		d.DescribeOperation(operation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.doc.Paths[path]
	if item == nil {
		item = &PathItem{}
		r.doc.Paths[path] = item
	}

	slot, err := item.slot(method)
	if err != nil {
		return nil, err
	}
	if *slot != nil {
		return nil, fmt.Errorf("route %s %s registered twice", method, path)
	}
	*slot = operation
	return operation, nil
}

// Document returns the assembled document. The registry retains ownership;
// callers should register all routes before serializing.
func (r *Registry) Document() *Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc
}

func (p *PathItem) slot(method string) (**Operation, error) {
	switch method {
	case http.MethodGet:
		return &p.Get, nil
	case http.MethodPost:
		return &p.Post, nil
	case http.MethodPut:
		return &p.Put, nil
	case http.MethodPatch:
		return &p.Patch, nil
	case http.MethodDelete:
		return &p.Delete, nil
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
}
