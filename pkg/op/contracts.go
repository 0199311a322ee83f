package op

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// OperationDescriber contributes documentation to an Operation. The registry
// invokes it exactly once per route registration. opdoc generates an
// implementation for every annotated handler, populated from its doc comment.
type OperationDescriber interface {
	DescribeOperation(operation *Operation)
}

// RequestExtractor constructs the receiver from an incoming request and the
// ambient server state. Generated implementations never fail and always
// return nil; hand-written extractors may report binding errors.
type RequestExtractor interface {
	ExtractRequest(r *http.Request, state *State) error
}

// State is the ambient server state handed to request extractors. It carries
// arbitrary keyed values plus a shared validator instance, and is safe for
// concurrent use.
type State struct {
	mu       sync.RWMutex
	values   map[string]interface{}
	validate *validator.Validate
}

// NewState allocates a State with a validator configured to report field
// names from JSON tags.
func NewState() *State {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &State{values: make(map[string]interface{}), validate: v}
}

// Set stores a value under key.
func (s *State) Set(key string, value interface{}) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// Get returns the value stored under key, if any.
func (s *State) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Validate runs struct validation against v using the shared validator.
func (s *State) Validate(v interface{}) error {
	return s.validate.Struct(v)
}

// Extract constructs a T from the request by running its RequestExtractor
// implementation. It is invoked once per incoming request for each extractor
// parameter a handler declares.
func Extract[T any, PT interface {
	*T
	RequestExtractor
}](r *http.Request, state *State) (T, error) {
	var v T
	if err := PT(&v).ExtractRequest(r, state); err != nil {
		var zero T
		return zero, fmt.Errorf("extract %T: %w", v, err)
	}
	return v, nil
}

// BindJSON decodes the request body into v and validates the result. It is
// the usual building block for hand-written extractors.
func BindJSON(r *http.Request, state *State, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return state.Validate(v)
}
