// Package transform implements the opdoc source transformation: it splits a
// function's doc comment into an OpenAPI summary and description, synthesizes
// a companion type implementing the op capability contracts, and rewrites the
// declaration to take the companion type as its first parameter.
package transform

import (
	"go/ast"
	"strings"
)

// Directive marks a function declaration for transformation. It must appear
// on its own line inside the function's doc comment group.
const Directive = "opdoc:operation"

// SplitDoc splits a doc comment group into a summary and a description.
//
// Each comment line is one fragment; directive lines are not doc text and are
// ignored. The summary is the leading run of non-blank lines concatenated
// with no separator (line comments keep the space following "//", which acts
// as the word break), trimmed. The description is everything after the first
// blank line, newline-joined and trimmed. A nil or empty group yields two
// empty strings; SplitDoc never fails.
func SplitDoc(doc *ast.CommentGroup) (summary, description string) {
	lines := docLines(doc)

	k := len(lines)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			k = i
			break
		}
	}

	summary = strings.TrimSpace(strings.Join(lines[:k], ""))
	description = strings.TrimSpace(strings.Join(lines[k:], "\n"))
	return summary, description
}

// HasDirective reports whether the comment group carries the opdoc directive.
func HasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, "//") {
			continue
		}
		body := c.Text[2:]
		if body == Directive || strings.HasPrefix(body, Directive+" ") {
			return true
		}
	}
	return false
}

// docLines flattens a comment group into raw text lines, one per source
// line, with comment markers stripped and directive lines dropped. The text
// after the marker is preserved verbatim, including leading whitespace.
func docLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var lines []string
	for _, c := range doc.List {
		switch {
		case strings.HasPrefix(c.Text, "//"):
			body := c.Text[2:]
			if isDirective(body) {
				continue
			}
			lines = append(lines, body)
		case strings.HasPrefix(c.Text, "/*"):
			body := strings.TrimSuffix(c.Text[2:], "*/")
			lines = append(lines, strings.Split(body, "\n")...)
		}
	}
	return lines
}

// isDirective reports whether the line comment body c is a tool directive
// such as "go:generate" or "opdoc:operation". Mirrors the go/ast rule: a
// lowercase alphanumeric prefix immediately followed by a colon, with no
// space after the comment marker.
func isDirective(c string) bool {
	if strings.HasPrefix(c, "line ") {
		return true
	}
	colon := strings.Index(c, ":")
	if colon <= 0 || colon+1 >= len(c) {
		return false
	}
	for i := 0; i < colon; i++ {
		b := c[i]
		if !('a' <= b && b <= 'z' || '0' <= b && b <= '9') {
			return false
		}
	}
	return true
}
