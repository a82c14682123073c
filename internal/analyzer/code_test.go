package analyzer

import (
	"strings"
	"testing"
)

func TestAnalyzePython(t *testing.T) {
	content := `import os
import json
from collections import OrderedDict

def used_helper():
    return os.getcwd()

def orphan():
    pass

print(used_helper())
`
	a := NewCodeAnalyzer().Analyze("script.py", content)

	if a.Language != "python" {
		t.Fatalf("Expected language python, got %q", a.Language)
	}
	if !contains(a.UnusedImports, "json") {
		t.Errorf("Expected json to be flagged unused, got %v", a.UnusedImports)
	}
	if !contains(a.UnusedImports, "OrderedDict") {
		t.Errorf("Expected OrderedDict to be flagged unused, got %v", a.UnusedImports)
	}
	if contains(a.UnusedImports, "os") {
		t.Errorf("Did not expect os to be flagged unused")
	}
	if !contains(a.UnusedFunctions, "orphan") {
		t.Errorf("Expected orphan to be flagged unused, got %v", a.UnusedFunctions)
	}
	if contains(a.UnusedFunctions, "used_helper") {
		t.Errorf("Did not expect used_helper to be flagged unused")
	}
	if !containsSubstring(a.PotentialIssues, "print statements") {
		t.Errorf("Expected debug print issue, got %v", a.PotentialIssues)
	}
}

func TestAnalyzePython_BareExcept(t *testing.T) {
	content := "try:\n    run()\nexcept:\n    pass\n"
	a := NewCodeAnalyzer().Analyze("bad.py", content)

	if !containsSubstring(a.PotentialIssues, "Bare except") {
		t.Errorf("Expected bare except issue, got %v", a.PotentialIssues)
	}
}

func TestAnalyzeJava(t *testing.T) {
	content := `import java.util.Date;
import java.util.List;

public class Report {
    public void render() {
        System.out.println("rendering");
    }
}
`
	a := NewCodeAnalyzer().Analyze("Report.java", content)

	if !contains(a.Classes, "Report") {
		t.Errorf("Expected class Report, got %v", a.Classes)
	}
	if !contains(a.Functions, "render") {
		t.Errorf("Expected method render, got %v", a.Functions)
	}
	if !containsSubstring(a.PotentialIssues, "System.out.println") {
		t.Errorf("Expected println issue, got %v", a.PotentialIssues)
	}
	if !containsSubstring(a.Suggestions, "java.time") {
		t.Errorf("Expected java.util.Date suggestion, got %v", a.Suggestions)
	}
}

func TestAnalyzeJavaScript(t *testing.T) {
	content := `var counter = 0;

function tick() {
  counter = counter + 1;
  console.log(counter);
}

tick();
`
	a := NewCodeAnalyzer().Analyze("app.js", content)

	if a.Language != "javascript" {
		t.Fatalf("Expected language javascript, got %q", a.Language)
	}
	if !contains(a.Functions, "tick") {
		t.Errorf("Expected function tick, got %v", a.Functions)
	}
	if !containsSubstring(a.PotentialIssues, "Console.log") {
		t.Errorf("Expected console.log issue, got %v", a.PotentialIssues)
	}
	if !containsSubstring(a.Suggestions, "'let' or 'const'") {
		t.Errorf("Expected var suggestion, got %v", a.Suggestions)
	}
}

func TestAnalyzeJavaScript_LooseEquality(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"loose only", `if (a == b) {}`, true},
		{"loose alongside strict", `if (a === b) {} if (c == d) {}`, true},
		{"strict only", `if (a === b) {}`, false},
		{"strict inequality only", `if (a !== b) {}`, false},
		{"assignment only", `const a = b;`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewCodeAnalyzer().Analyze("eq.js", tc.content)
			got := containsSubstring(a.Suggestions, "strict equality")
			if got != tc.want {
				t.Errorf("Expected strict-equality suggestion %v, got %v (suggestions %v)", tc.want, got, a.Suggestions)
			}
		})
	}
}

func TestAnalyzeGo(t *testing.T) {
	content := `package demo

import (
	"fmt"
	"os"
)

func Used() {
	fmt.Println(helper())
}

func helper() string { return "x" }

func orphan() string { return "y" }
`
	a := NewCodeAnalyzer().Analyze("demo.go", content)

	if a.Language != "go" {
		t.Fatalf("Expected language go, got %q", a.Language)
	}
	if !contains(a.UnusedImports, "os") {
		t.Errorf("Expected os to be flagged unused, got %v", a.UnusedImports)
	}
	if contains(a.UnusedImports, "fmt") {
		t.Errorf("Did not expect fmt to be flagged unused")
	}
	if !contains(a.UnusedFunctions, "orphan") {
		t.Errorf("Expected orphan to be flagged unused, got %v", a.UnusedFunctions)
	}
	if contains(a.UnusedFunctions, "helper") {
		t.Errorf("Did not expect helper to be flagged unused")
	}
	if !containsSubstring(a.PotentialIssues, "fmt.Println") {
		t.Errorf("Expected fmt.Println issue, got %v", a.PotentialIssues)
	}
}

func TestAnalyzeGo_ParseError(t *testing.T) {
	a := NewCodeAnalyzer().Analyze("broken.go", "package demo\n\nfunc {")

	if a.ParseError == "" {
		t.Fatal("Expected a parse error")
	}
	if !containsSubstring(a.PotentialIssues, "Parsing error") {
		t.Errorf("Expected parsing error issue, got %v", a.PotentialIssues)
	}
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	a := NewCodeAnalyzer().Analyze("schema.sql", "SELECT 1;")

	if a.Language != "sql" {
		t.Fatalf("Expected language sql, got %q", a.Language)
	}
	if a.Info == "" {
		t.Error("Expected a basic-analysis info note")
	}
	if a.IssueCount() != 0 {
		t.Errorf("Expected no issues for stub analysis, got %d", a.IssueCount())
	}
}

func TestLanguageFor(t *testing.T) {
	if got := LanguageFor("Main.JAVA"); got != "java" {
		t.Errorf("Expected case-insensitive lookup, got %q", got)
	}
	if got := LanguageFor("notes.txt"); got != "" {
		t.Errorf("Expected empty language for unsupported extension, got %q", got)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func containsSubstring(list []string, fragment string) bool {
	for _, s := range list {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
