package analyzer

import (
	"fmt"
	"path"
	"strings"

	"github.com/jeeems/devbot/internal/models"
)

// framework couples a name with the paths that betray its presence.
type framework struct {
	Name     string
	Patterns []string
}

// Detection order matters: the first framework with enough matches wins.
var frameworks = []framework{
	{"React", []string{"package.json", "src/App.js", "src/index.js", "public/index.html"}},
	{"Vue", []string{"package.json", "src/main.js", "src/App.vue"}},
	{"Angular", []string{"angular.json", "src/main.ts", "src/app/app.module.ts", "src/index.html", "src/app/"}},
	{"Django", []string{"manage.py", "settings.py", "urls.py", "wsgi.py"}},
	{"Flask", []string{"app.py", "requirements.txt", "templates/"}},
	{"Spring Boot", []string{"pom.xml", "src/main/java/", "application.properties"}},
	{"Express.js", []string{"package.json", "app.js", "server.js"}},
	{"Next.js", []string{"next.config.js", "pages/", "package.json"}},
	{"Laravel", []string{"composer.json", "artisan", "app/Http/Controllers/"}},
	{"Rails", []string{"Gemfile", "config/routes.rb", "app/controllers/"}},
	{"FastAPI", []string{"main.py", "requirements.txt", "app/"}},
	{"Nest.js", []string{"nest-cli.json", "src/main.ts", "src/app.module.ts"}},
}

// FrameworkRecommendation names the directories a framework project is
// expected to grow.
type FrameworkRecommendation struct {
	Recommended []string
	Description string
}

var recommendations = map[string]FrameworkRecommendation{
	"React": {
		Recommended: []string{"src/components/", "src/hooks/", "src/utils/", "src/services/", "src/assets/"},
		Description: "Component-based architecture with hooks and services",
	},
	"Django": {
		Recommended: []string{"apps/", "static/", "templates/", "media/", "requirements.txt"},
		Description: "Django apps structure with proper separation of concerns",
	},
	"Spring Boot": {
		Recommended: []string{"src/main/java/com/company/app/", "src/main/resources/", "src/test/"},
		Description: "Maven/Gradle structure with proper package organization",
	},
	"Express.js": {
		Recommended: []string{"routes/", "middleware/", "models/", "controllers/", "config/"},
		Description: "MVC pattern with proper middleware and routing",
	},
	"Angular": {
		Recommended: []string{"src/app/components/", "src/app/services/", "src/app/models/", "src/app/shared/", "src/environments/"},
		Description: "Modular Angular application structure with services, components, and shared modules",
	},
}

// StructureAnalyzer inspects a flattened repository tree for framework
// conventions and hygiene basics.
type StructureAnalyzer struct{}

func NewStructureAnalyzer() *StructureAnalyzer {
	return &StructureAnalyzer{}
}

// DetectFramework returns the name of the first framework with at least two
// matching path patterns, or "" when nothing matches.
func (s *StructureAnalyzer) DetectFramework(entries []models.TreeEntry) string {
	paths := pathSet(entries)

	for _, fw := range frameworks {
		matches := 0
		for _, pattern := range fw.Patterns {
			if matchesAny(paths, normalizePattern(pattern)) {
				matches++
			}
		}
		if matches < 2 {
			continue
		}
		// angular.json is the only reliable Angular signal; src/main.ts alone
		// also appears in Vite and Nest projects.
		if fw.Name == "Angular" && !paths["angular.json"] {
			continue
		}
		return fw.Name
	}
	return ""
}

// Analyze builds a structure report for the tree under the detected framework.
func (s *StructureAnalyzer) Analyze(entries []models.TreeEntry, frameworkName string) *models.StructureReport {
	report := &models.StructureReport{Framework: frameworkName}

	lowerPaths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type == "file" {
			report.Files = append(report.Files, e.Path)
		} else {
			report.Directories = append(report.Directories, e.Path)
		}
		lowerPaths = append(lowerPaths, strings.ToLower(e.Path))
	}

	if !containsExact(lowerPaths, "readme.md") {
		report.Issues = append(report.Issues, "Missing README.md file")
	}
	if !containsExact(lowerPaths, ".gitignore") {
		report.Issues = append(report.Issues, "Missing .gitignore file")
	}

	if rec, ok := recommendations[frameworkName]; ok {
		for _, recommended := range rec.Recommended {
			pattern := strings.ToLower(strings.Trim(recommended, "/"))
			found := false
			for _, p := range lowerPaths {
				if strings.Contains(p, pattern) {
					found = true
					break
				}
			}
			if !found {
				report.Recommendations = append(report.Recommendations,
					fmt.Sprintf("Consider adding %s for %s best practices.", recommended, frameworkName))
			}
		}
	}

	return report
}

// Recommendation exposes the best-practice blurb for a framework.
func (s *StructureAnalyzer) Recommendation(frameworkName string) (FrameworkRecommendation, bool) {
	rec, ok := recommendations[frameworkName]
	return rec, ok
}

func pathSet(entries []models.TreeEntry) map[string]bool {
	paths := make(map[string]bool, len(entries)*2)
	for _, e := range entries {
		p := strings.ToLower(e.Path)
		paths[p] = true
		if e.Type == "dir" {
			paths[p+"/"] = true
		}
	}
	return paths
}

func normalizePattern(pattern string) string {
	p := strings.ToLower(pattern)
	if !strings.HasSuffix(p, "/") && !strings.Contains(path.Base(p), ".") {
		p += "/"
	}
	return p
}

func matchesAny(paths map[string]bool, pattern string) bool {
	if paths[pattern] {
		return true
	}
	for p := range paths {
		if strings.Contains(p, pattern) {
			return true
		}
	}
	return false
}

func containsExact(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}
