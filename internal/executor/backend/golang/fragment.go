package golang

import (
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// harnessImports are the packages the generated main needs.
var harnessImports = []string{`"fmt"`, `"math"`, `"os"`, `"os/exec"`, `"reflect"`, `"strings"`, `"time"`}

// splitFragment separates the import specs of a fragment from the rest of its
// source so both can be merged into a single-file program. A fragment may
// carry its own package clause; it is dropped. When the import section does
// not parse, the fragment is passed through and the compiler reports it.
func splitFragment(fragment string) (imports []string, body string) {
	src := fragment
	clauseEnd := packageClauseEnd(fragment)
	if clauseEnd < 0 {
		src = "package main\n" + fragment
		clauseEnd = len("package main")
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fragment.go", src, parser.ImportsOnly)
	if err != nil {
		return nil, src[clauseEnd:]
	}
	tf := fset.File(file.Pos())

	end := tf.Offset(file.Name.End())
	for _, decl := range file.Decls {
		if off := tf.Offset(decl.End()); off > end {
			end = off
		}
	}
	for _, spec := range file.Imports {
		imports = append(imports, strings.TrimSpace(src[tf.Offset(spec.Pos()):tf.Offset(spec.End())]))
	}
	return imports, src[end:]
}

// packageClauseEnd returns the offset just past the fragment's package
// clause, or -1 when its first token (comments aside) is not "package".
func packageClauseEnd(src string) int {
	fset := token.NewFileSet()
	file := fset.AddFile("fragment.go", -1, len(src))
	var s scanner.Scanner
	s.Init(file, []byte(src), nil, 0)
	if _, tok, _ := s.Scan(); tok != token.PACKAGE {
		return -1
	}
	pos, tok, lit := s.Scan()
	if tok != token.IDENT {
		return -1
	}
	return file.Offset(pos) + len(lit)
}

// mergeImports appends the fragment's specs to the harness set, skipping
// exact duplicates.
func mergeImports(fragment []string) []string {
	seen := make(map[string]struct{}, len(harnessImports)+len(fragment))
	out := make([]string, 0, len(harnessImports)+len(fragment))
	for _, spec := range append(append([]string{}, harnessImports...), fragment...) {
		if _, ok := seen[spec]; ok {
			continue
		}
		seen[spec] = struct{}{}
		out = append(out, spec)
	}
	return out
}
