package models

// FileAnalysis is the result of a heuristic pass over a single source file.
// Slices are nil when the language analyzer has nothing to report.
type FileAnalysis struct {
	Language        string   `json:"language"`
	Imports         []string `json:"imports,omitempty"`
	Functions       []string `json:"functions,omitempty"`
	Classes         []string `json:"classes,omitempty"`
	UnusedImports   []string `json:"unused_imports,omitempty"`
	UnusedFunctions []string `json:"unused_functions,omitempty"`
	PotentialIssues []string `json:"potential_issues,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
	Info            string   `json:"info,omitempty"`
	ParseError      string   `json:"parse_error,omitempty"`
}

// IssueCount totals everything worth flagging to the user.
func (a *FileAnalysis) IssueCount() int {
	return len(a.PotentialIssues) + len(a.UnusedImports) + len(a.UnusedFunctions) + len(a.Suggestions)
}

// AnalyzedFile pairs a repository file with its analysis result.
type AnalyzedFile struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Language string        `json:"language"`
	Size     int           `json:"size"`
	Analysis *FileAnalysis `json:"analysis"`
}

// StructureReport describes the layout of a repository and what is missing
// from it relative to the detected framework's conventions.
type StructureReport struct {
	Framework       string   `json:"framework,omitempty"`
	Files           []string `json:"files"`
	Directories     []string `json:"directories"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}
