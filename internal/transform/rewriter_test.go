package transform

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rewriterFixture = `package handlers

import "context"

// ListUsers returns every known user.
//
// Results are ordered by creation time.
//
//opdoc:operation
func ListUsers(ctx context.Context) ([]string, error) { return nil, nil }

// helper is not annotated and must be left alone.
func helper() {}

// DeleteUser removes a user.
//
//opdoc:operation
func DeleteUser(ctx context.Context, id string) error { return nil }
`

func TestRewriteFile(t *testing.T) {
	res, err := RewriteFile("handlers.go", []byte(rewriterFixture))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "handlers.go", res.Path)
	assert.Equal(t, "handlers_opdoc_gen.go", res.GeneratedPath)
	require.Len(t, res.Results, 2)

	source := string(res.Source)
	assert.Contains(t, source, "func ListUsers(_ ListUsersOperationDoc, ctx context.Context) ([]string, error)")
	assert.Contains(t, source, "func DeleteUser(_ DeleteUserOperationDoc, ctx context.Context, id string) error")
	assert.Contains(t, source, "func helper() {}")
	assert.NotContains(t, source, "opdoc:operation")
	assert.Contains(t, source, "// Results are ordered by creation time.")

	generated := string(res.Generated)
	assert.Contains(t, generated, "// Code generated by opdoc. DO NOT EDIT.")
	assert.Contains(t, generated, "package handlers")
	assert.Contains(t, generated, `"github.com/opdoc-labs/opdoc/pkg/op"`)
	assert.Contains(t, generated, "type ListUsersOperationDoc struct{}")
	assert.Contains(t, generated, "type DeleteUserOperationDoc struct{}")
	assert.Contains(t, generated, `op.String("ListUsers returns every known user.")`)
	assert.Contains(t, generated, `op.String("Results are ordered by creation time.")`)

	// Both outputs must remain valid Go.
	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, res.Path, res.Source, parser.ParseComments)
	assert.NoError(t, err)
	_, err = parser.ParseFile(fset, res.GeneratedPath, res.Generated, parser.ParseComments)
	assert.NoError(t, err)
}

func TestRewriteFileUnnamedParameters(t *testing.T) {
	src := `package p

// Handler handles.
//
//opdoc:operation
func Handler(int, string) {}
`
	res, err := RewriteFile("handler.go", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, res)

	// The companion must go in type-only so the list stays legally unnamed.
	source := string(res.Source)
	assert.Contains(t, source, "func Handler(HandlerOperationDoc, int, string) {}")

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, res.Path, res.Source, parser.ParseComments)
	assert.NoError(t, err)
}

func TestRewriteFileNoTargets(t *testing.T) {
	src := "package p\n\n// Plain is plain.\nfunc Plain() {}\n"
	res, err := RewriteFile("plain.go", []byte(src))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRewriteFileAbortsWholeFileOnError(t *testing.T) {
	src := `package p

type T struct{}

// Good is fine on its own.
//
//opdoc:operation
func Good() {}

// Bad is a method.
//
//opdoc:operation
func (T) Bad() {}
`
	res, err := RewriteFile("mixed.go", []byte(src))
	require.Error(t, err)
	assert.Nil(t, res)
}

func TestRewriteFileParseError(t *testing.T) {
	_, err := RewriteFile("broken.go", []byte("package p\n\nfunc {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse broken.go")
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	annotated := "package h\n\n// Get gets.\n//\n//opdoc:operation\nfunc Get() {}\n"
	write("handlers/get.go", annotated)
	write("handlers/plain.go", "package h\n\nfunc plain() {}\n")
	write("handlers/get_test.go", annotated)
	write("handlers/old_opdoc_gen.go", "package h\n")
	write("vendor/dep/dep.go", annotated)
	write("testdata/fixture.go", annotated)

	results, err := ProcessDirectory(dir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "handlers", "get.go"), results[0].Path)
}

func TestProcessDirectoryPropagatesErrors(t *testing.T) {
	dir := t.TempDir()
	bad := "package h\n\ntype T struct{}\n\n//opdoc:operation\nfunc (T) M() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(bad), 0o644))

	_, err := ProcessDirectory(dir)
	require.Error(t, err)
}
