package analyzer

import (
	"testing"

	"github.com/jeeems/devbot/internal/models"
)

func file(p string) models.TreeEntry { return models.TreeEntry{Path: p, Type: "file"} }
func dir(p string) models.TreeEntry  { return models.TreeEntry{Path: p, Type: "dir"} }

func TestDetectFramework_React(t *testing.T) {
	entries := []models.TreeEntry{
		file("package.json"),
		dir("src"),
		file("src/App.js"),
		file("src/index.js"),
		dir("public"),
		file("public/index.html"),
	}

	s := NewStructureAnalyzer()
	if got := s.DetectFramework(entries); got != "React" {
		t.Errorf("Expected React, got %q", got)
	}
}

func TestDetectFramework_Django(t *testing.T) {
	entries := []models.TreeEntry{
		file("manage.py"),
		file("project/settings.py"),
		file("project/urls.py"),
	}

	s := NewStructureAnalyzer()
	if got := s.DetectFramework(entries); got != "Django" {
		t.Errorf("Expected Django, got %q", got)
	}
}

func TestDetectFramework_AngularNeedsAngularJSON(t *testing.T) {
	// main.ts and index.html alone also show up in Vite projects.
	entries := []models.TreeEntry{
		file("src/main.ts"),
		file("src/index.html"),
		dir("src/app"),
	}

	s := NewStructureAnalyzer()
	if got := s.DetectFramework(entries); got == "Angular" {
		t.Error("Expected Angular detection to require angular.json")
	}

	entries = append(entries, file("angular.json"))
	if got := s.DetectFramework(entries); got != "Angular" {
		t.Errorf("Expected Angular with angular.json present, got %q", got)
	}
}

func TestDetectFramework_NoMatch(t *testing.T) {
	entries := []models.TreeEntry{file("README.md"), file("main.c")}

	s := NewStructureAnalyzer()
	if got := s.DetectFramework(entries); got != "" {
		t.Errorf("Expected no framework, got %q", got)
	}
}

func TestAnalyzeStructure_MissingHygieneFiles(t *testing.T) {
	entries := []models.TreeEntry{file("main.go"), dir("internal")}

	report := NewStructureAnalyzer().Analyze(entries, "")

	if len(report.Files) != 1 || report.Files[0] != "main.go" {
		t.Errorf("Unexpected files list %v", report.Files)
	}
	if len(report.Directories) != 1 || report.Directories[0] != "internal" {
		t.Errorf("Unexpected directories list %v", report.Directories)
	}
	if !containsSubstring(report.Issues, "README.md") {
		t.Errorf("Expected missing README issue, got %v", report.Issues)
	}
	if !containsSubstring(report.Issues, ".gitignore") {
		t.Errorf("Expected missing .gitignore issue, got %v", report.Issues)
	}
}

func TestAnalyzeStructure_FrameworkRecommendations(t *testing.T) {
	entries := []models.TreeEntry{
		file("README.md"),
		file(".gitignore"),
		file("package.json"),
		dir("src"),
		file("src/App.js"),
		dir("src/components"),
	}

	report := NewStructureAnalyzer().Analyze(entries, "React")

	if len(report.Issues) != 0 {
		t.Errorf("Expected no hygiene issues, got %v", report.Issues)
	}
	if containsSubstring(report.Recommendations, "src/components/") {
		t.Errorf("Did not expect recommendation for existing directory, got %v", report.Recommendations)
	}
	if !containsSubstring(report.Recommendations, "src/hooks/") {
		t.Errorf("Expected src/hooks/ recommendation, got %v", report.Recommendations)
	}
}

func TestRecommendation(t *testing.T) {
	s := NewStructureAnalyzer()

	rec, ok := s.Recommendation("React")
	if !ok || rec.Description == "" {
		t.Fatal("Expected a React recommendation")
	}
	if _, ok := s.Recommendation("COBOL"); ok {
		t.Error("Expected no recommendation for unknown framework")
	}
}
