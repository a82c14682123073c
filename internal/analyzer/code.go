package analyzer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jeeems/devbot/internal/models"
)

// SupportedExtensions maps source file extensions to language names.
var SupportedExtensions = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "javascript",
	".tsx":   "typescript",
	".java":  "java",
	".cpp":   "cpp",
	".c":     "c",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".php":   "php",
	".rb":    "ruby",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".sql":   "sql",
}

// LanguageFor returns the language for a filename, or "" when unsupported.
func LanguageFor(filename string) string {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// CodeAnalyzer runs cheap heuristic checks over a single source file. The
// deeper languages get dedicated passes; everything else gets a stub report.
type CodeAnalyzer struct{}

func NewCodeAnalyzer() *CodeAnalyzer {
	return &CodeAnalyzer{}
}

func (a *CodeAnalyzer) Analyze(filename, content string) *models.FileAnalysis {
	ext := strings.ToLower(filepath.Ext(filename))
	language := SupportedExtensions[ext]

	switch ext {
	case ".py":
		return a.analyzePython(content)
	case ".java":
		return a.analyzeJava(content)
	case ".js", ".ts", ".jsx", ".tsx":
		return a.analyzeJavaScript(content, language)
	case ".go":
		return a.analyzeGo(filename, content)
	default:
		return &models.FileAnalysis{
			Language: language,
			Info:     fmt.Sprintf("Basic analysis for %s", language),
		}
	}
}

var (
	pyImportRe     = regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)(?:\s+as\s+(\w+))?`)
	pyFromImportRe = regexp.MustCompile(`(?m)^\s*from\s+[\w.]+\s+import\s+(.+)$`)
	pyDefRe        = regexp.MustCompile(`(?m)^\s*def\s+(\w+)`)
	pyClassRe      = regexp.MustCompile(`(?m)^\s*class\s+(\w+)`)
)

func (a *CodeAnalyzer) analyzePython(content string) *models.FileAnalysis {
	analysis := &models.FileAnalysis{Language: "python"}

	for _, m := range pyImportRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if m[2] != "" {
			name = m[2] // alias
		} else if dot := strings.Index(name, "."); dot > 0 {
			name = name[:dot]
		}
		analysis.Imports = append(analysis.Imports, name)
	}
	for _, m := range pyFromImportRe.FindAllStringSubmatch(content, -1) {
		for _, part := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(part)
			if idx := strings.Index(name, " as "); idx >= 0 {
				name = strings.TrimSpace(name[idx+4:])
			}
			if name != "" && name != "*" {
				analysis.Imports = append(analysis.Imports, name)
			}
		}
	}

	for _, m := range pyDefRe.FindAllStringSubmatch(content, -1) {
		analysis.Functions = append(analysis.Functions, m[1])
	}
	for _, m := range pyClassRe.FindAllStringSubmatch(content, -1) {
		analysis.Classes = append(analysis.Classes, m[1])
	}

	classNames := make(map[string]bool, len(analysis.Classes))
	for _, c := range analysis.Classes {
		classNames[c] = true
	}

	// A name that only ever appears on its own definition line is unused.
	for _, imp := range analysis.Imports {
		if wordCount(content, imp) <= 1 {
			analysis.UnusedImports = append(analysis.UnusedImports, imp)
		}
	}
	for _, fn := range analysis.Functions {
		if strings.HasPrefix(fn, "__") || classNames[fn] {
			continue
		}
		if wordCount(content, fn) <= 1 {
			analysis.UnusedFunctions = append(analysis.UnusedFunctions, fn)
		}
	}

	if strings.Contains(content, "print(") {
		analysis.PotentialIssues = append(analysis.PotentialIssues, "Debug print statements found")
	}
	if strings.Contains(content, "TODO") || strings.Contains(content, "FIXME") {
		analysis.PotentialIssues = append(analysis.PotentialIssues, "TODO/FIXME comments found")
	}
	if strings.Contains(content, "except:") {
		analysis.PotentialIssues = append(analysis.PotentialIssues, "Bare except clauses found (use specific exceptions)")
	}

	if len(analysis.Functions) > 50 {
		analysis.Suggestions = append(analysis.Suggestions, "Consider splitting this file - it has many functions")
	}
	if hasLongLines(content, 100) {
		analysis.Suggestions = append(analysis.Suggestions, "Some lines are too long (>100 characters)")
	}

	return analysis
}

var (
	javaClassRe  = regexp.MustCompile(`(?:public|private|protected)\s+(?:static\s+)?(?:class|interface)\s+(\w+)`)
	javaMethodRe = regexp.MustCompile(`(?:public|private|protected)\s+(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{`)
	javaMainRe   = regexp.MustCompile(`public\s+static\s+void\s+main\s*\(String\[\]\s+args\)`)
)

func (a *CodeAnalyzer) analyzeJava(content string) *models.FileAnalysis {
	analysis := &models.FileAnalysis{Language: "java"}
	lines := strings.Split(content, "\n")

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") {
			imp := strings.TrimSuffix(strings.TrimPrefix(trimmed, "import "), ";")
			analysis.Imports = append(analysis.Imports, imp)
		}
	}

	for _, m := range javaClassRe.FindAllStringSubmatch(content, -1) {
		analysis.Classes = append(analysis.Classes, m[1])
	}
	for _, m := range javaMethodRe.FindAllStringSubmatch(content, -1) {
		analysis.Functions = append(analysis.Functions, m[1])
		if wordCount(content, m[1]) <= 1 {
			analysis.UnusedFunctions = append(analysis.UnusedFunctions, m[1])
		}
	}

	if strings.Contains(content, "System.out.println") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"System.out.println statements found (use logging framework like SLF4J)")
	}
	if strings.Contains(content, "catch (Exception e)") || strings.Contains(content, "catch (Throwable t)") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"Catching generic Exception/Throwable (use specific exceptions for better error handling)")
	}
	if strings.Contains(content, "// TODO") || strings.Contains(content, "// FIXME") {
		analysis.PotentialIssues = append(analysis.PotentialIssues, "TODO/FIXME comments found")
	}
	if strings.Contains(content, "new File(") && !strings.Contains(content, "try {") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"File operations without try-with-resources or explicit close (resource leak risk)")
	}

	if javaMainRe.MatchString(content) && len(analysis.Classes) > 1 {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider refactoring main method into a dedicated entry point class if project grows")
	}
	if len(analysis.Functions) > 20 {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider refactoring this class - it has many methods (High Cohesion, Low Coupling principle)")
	}
	if strings.Contains(content, "java.util.Date") {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider using java.time (JSR 310) for modern date/time API instead of java.util.Date")
	}

	// Naive unused-import check: only the trailing identifier is matched.
	usedImports := 0
	for _, imp := range analysis.Imports {
		segments := strings.Split(imp, ".")
		if wordCount(content, segments[len(segments)-1]) > 1 {
			usedImports++
		}
	}
	if usedImports < len(analysis.Imports) {
		analysis.UnusedImports = append(analysis.UnusedImports,
			"Some imports might be unused (manual verification recommended)")
	}

	return analysis
}

var jsFunctionRes = []*regexp.Regexp{
	regexp.MustCompile(`function\s+(\w+)\s*\(`),
	regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*(?:function|\(.*?\)\s*=>)`),
}

// hasLooseEquality reports whether content contains a bare == comparison.
// Runs of === and !== are skipped, so loose equality is flagged even in files
// that also use strict equality.
func hasLooseEquality(content string) bool {
	for i := 0; i+1 < len(content); i++ {
		if content[i] != '=' || content[i+1] != '=' {
			continue
		}
		if i > 0 && (content[i-1] == '=' || content[i-1] == '!') {
			continue
		}
		if i+2 < len(content) && content[i+2] == '=' {
			continue
		}
		return true
	}
	return false
}

func (a *CodeAnalyzer) analyzeJavaScript(content, language string) *models.FileAnalysis {
	analysis := &models.FileAnalysis{Language: language}

	for _, re := range jsFunctionRes {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			analysis.Functions = append(analysis.Functions, m[1])
			if wordCount(content, m[1]) <= 1 {
				analysis.UnusedFunctions = append(analysis.UnusedFunctions, m[1])
			}
		}
	}

	if strings.Contains(content, "console.log") || strings.Contains(content, "console.error") ||
		strings.Contains(content, "console.warn") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"Console.log/error/warn statements found (consider removing or using a proper logging library in production)")
	}
	if strings.Contains(content, "eval(") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"`eval()` usage found (potential security risk and performance implications)")
	}
	if strings.Contains(content, "subscribe(") && !strings.Contains(content, "unsubscribe") {
		analysis.PotentialIssues = append(analysis.PotentialIssues,
			"Observable subscriptions without explicit unsubscription (potential memory leak in Angular/RxJS contexts)")
	}

	if strings.Contains(content, "var ") {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider using 'let' or 'const' instead of 'var' for better block scoping")
	}
	if hasLooseEquality(content) {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider using strict equality (===) instead of (==) to avoid type coercion issues")
	}
	if language == "typescript" && wordCount(content, "any") > 0 {
		analysis.Suggestions = append(analysis.Suggestions,
			"Extensive use of 'any' type in TypeScript (consider more specific types for better type safety)")
	}
	if strings.Contains(content, "jQuery") || strings.Contains(content, "$(") {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider using modern JavaScript APIs or lighter alternatives instead of jQuery for new development")
	}
	if len(analysis.Functions) > 30 {
		analysis.Suggestions = append(analysis.Suggestions,
			"Consider refactoring this file - it has too many functions (violates Single Responsibility Principle)")
	}

	return analysis
}

// wordCount counts standalone occurrences of name in content. A name that
// appears exactly once only exists at its own definition.
func wordCount(content, name string) int {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return len(re.FindAllStringIndex(content, -1))
}

func hasLongLines(content string, limit int) bool {
	for _, line := range strings.Split(content, "\n") {
		if len(line) > limit {
			return true
		}
	}
	return false
}
