package main

import (
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// MathRandAnalyzer reports math/rand imports in non-test files.
var MathRandAnalyzer = &analysis.Analyzer{
	Name: "mathrandlint",
	Doc:  "reports math/rand imports outside tests; use crypto/rand",
	Run:  runMathRand,
}

func runMathRand(pass *analysis.Pass) (any, error) {
	for _, f := range pass.Files {
		if strings.HasSuffix(pass.Fset.File(f.Pos()).Name(), "_test.go") {
			continue
		}

		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			if path == "math/rand" || path == "math/rand/v2" {
				pass.Reportf(imp.Pos(), "import of %s: use crypto/rand", path)
			}
		}
	}

	return nil, nil
}
