package analyzer

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/jeeems/devbot/internal/models"
)

// analyzeGo is the one analyzer with a real parser behind it: the ast pass
// makes unused-import and unused-function detection exact instead of a
// regex guess.
func (a *CodeAnalyzer) analyzeGo(filename, content string) *models.FileAnalysis {
	analysis := &models.FileAnalysis{Language: "go"}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, content, parser.ParseComments)
	if err != nil {
		analysis.ParseError = err.Error()
		analysis.PotentialIssues = append(analysis.PotentialIssues, fmt.Sprintf("Parsing error: %v", err))
		return analysis
	}

	// Identifier usage across the whole file, import specs excluded.
	used := make(map[string]int)
	ast.Inspect(file, func(n ast.Node) bool {
		if _, ok := n.(*ast.ImportSpec); ok {
			return false
		}
		if ident, ok := n.(*ast.Ident); ok {
			used[ident.Name]++
		}
		return true
	})

	for _, imp := range file.Imports {
		name := importName(imp)
		if name == "_" || name == "." {
			continue
		}
		analysis.Imports = append(analysis.Imports, name)
		if used[name] == 0 {
			analysis.UnusedImports = append(analysis.UnusedImports, name)
		}
	}

	undocumentedExported := 0
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		analysis.Functions = append(analysis.Functions, fn.Name.Name)

		if fn.Name.IsExported() && fn.Doc == nil {
			undocumentedExported++
		}

		if fn.Recv != nil || fn.Name.IsExported() {
			continue
		}
		switch fn.Name.Name {
		case "main", "init":
			continue
		}
		// The declaration itself accounts for one identifier occurrence.
		if used[fn.Name.Name] <= 1 {
			analysis.UnusedFunctions = append(analysis.UnusedFunctions, fn.Name.Name)
		}
	}

	if used["fmt"] > 0 && strings.Contains(content, "fmt.Println") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"Debug fmt.Println statements found (use the project logger)")
	}
	if strings.Contains(content, "TODO") || strings.Contains(content, "FIXME") {
		analysis.PotentialIssues = append(analysis.PotentialIssues, "TODO/FIXME comments found")
	}
	if strings.Contains(content, "panic(") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"panic calls found (prefer returning errors)")
	}

	if undocumentedExported > 0 {
		analysis.Suggestions = append(analysis.Suggestions,
			fmt.Sprintf("%d exported function(s) without doc comments", undocumentedExported))
	}
	if hasLongLines(content, 120) {
		analysis.Suggestions = append(analysis.Suggestions, "Some lines are too long (>120 characters)")
	}

	return analysis
}

func importName(imp *ast.ImportSpec) string {
	if imp.Name != nil {
		return imp.Name.Name
	}
	p, err := strconv.Unquote(imp.Path.Value)
	if err != nil {
		return imp.Path.Value
	}
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		p = p[idx+1:]
	}
	return p
}
