// Copyright (c) 2026 The NNAnalyzer Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package asthelper implements utility functions for AST, in particular around printing
// expressions for diagnostic messages and scanning doc comments for directives.
package asthelper

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// astExprToString converts an AST expression to source text using the `printer` package.
func astExprToString(e ast.Expr, pass *analysis.Pass) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, pass.Fset, e); err != nil {
		return fmt.Sprintf("<unprintable expr: %v>", err)
	}
	return buf.String()
}

// PrintExpr converts an AST expression to a string suitable for embedding in a diagnostic
// message, shortening long call/index arguments so messages stay readable
// (e.g., `s.Foo(longArgName, anotherLongArgName)` -> `s.Foo(...)`).
func PrintExpr(e ast.Expr, pass *analysis.Pass) string {
	s := strings.Builder{}
	printExprHelper(e, pass, &s)
	return s.String()
}

func printExprHelper(e ast.Expr, pass *analysis.Pass, s *strings.Builder) {
	// _shortenExprLen is the maximum length of a sub-expression printed in full.
	const _shortenExprLen = 3

	fullExpr := func(node ast.Node) (string, bool) {
		switch n := node.(type) {
		case *ast.Ident:
			if len(n.Name) <= _shortenExprLen {
				return n.Name, true
			}
		case *ast.BasicLit:
			if len(n.Value) <= _shortenExprLen {
				return n.Value, true
			}
		}
		return "", false
	}

	switch node := e.(type) {
	case *ast.Ident:
		s.WriteString(node.Name)

	case *ast.SelectorExpr:
		printExprHelper(node.X, pass, s)
		s.WriteString(".")
		s.WriteString(node.Sel.Name)

	case *ast.CallExpr:
		printExprHelper(node.Fun, pass, s)
		s.WriteString("(")
		if len(node.Args) > 0 {
			isShorten := true
			if len(node.Args) == 1 {
				if arg, ok := fullExpr(node.Args[0]); ok {
					s.WriteString(arg)
					isShorten = false
				}
			}
			if isShorten {
				s.WriteString("...")
			}
		}
		s.WriteString(")")

	case *ast.IndexExpr:
		printExprHelper(node.X, pass, s)
		s.WriteString("[")
		if v, ok := fullExpr(node.Index); ok {
			s.WriteString(v)
		} else {
			s.WriteString("...")
		}
		s.WriteString("]")

	default:
		s.WriteString(astExprToString(e, pass))
	}
}

// DocContains returns true if any comment in the group contains the substring s. A nil group
// never contains anything.
func DocContains(group *ast.CommentGroup, s string) bool {
	if group == nil {
		return false
	}
	for _, c := range group.List {
		if strings.Contains(c.Text, s) {
			return true
		}
	}
	return false
}

// CommentText joins every comment's text in the group, or returns "" for a nil group. Used to
// run a single regex pass over a declaration's whole doc comment instead of comment-by-comment.
func CommentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	var s strings.Builder
	for _, c := range group.List {
		s.WriteString(c.Text)
		s.WriteString("\n")
	}
	return s.String()
}
