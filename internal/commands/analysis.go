package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeeems/devbot/internal/analyzer"
	"github.com/jeeems/devbot/internal/githubapi"
	"github.com/jeeems/devbot/internal/llm"
	"github.com/jeeems/devbot/internal/models"
)

const (
	analyzeFileLimit  = 20 // files fetched for heuristic analysis
	detailedFileLimit = 8  // files detailed inside the summary embed
	maxUploadBytes    = 1024 * 1024
)

// AnalysisCommands groups every command that touches a repository or an
// uploaded file.
type AnalysisCommands struct {
	github     *githubapi.Client
	llm        *llm.Service // nil when no provider is configured
	code       *analyzer.CodeAnalyzer
	structure  *analyzer.StructureAnalyzer
	httpClient *http.Client
}

func NewAnalysisCommands(github *githubapi.Client, llmService *llm.Service) *AnalysisCommands {
	return &AnalysisCommands{
		github:     github,
		llm:        llmService,
		code:       analyzer.NewCodeAnalyzer(),
		structure:  analyzer.NewStructureAnalyzer(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AnalysisCommands) Register(r *Router) {
	r.Register(&Command{Name: "analyze", Usage: "analyze <repo_url> [branch]", MinArgs: 1, Cooldown: time.Minute, Run: c.analyze})
	r.Register(&Command{Name: "structure", Usage: "structure <repo_url> [branch]", MinArgs: 1, Cooldown: 30 * time.Second, Run: c.structureReport})
	r.Register(&Command{Name: "search", Usage: "search <repo_url> <filename> [branch]", MinArgs: 2, Cooldown: 30 * time.Second, Run: c.search})
	r.Register(&Command{Name: "ai-review", Usage: "ai-review <repo_url> <filename> [branch]", MinArgs: 2, Cooldown: 2 * time.Minute, Run: c.aiReview})
	r.Register(&Command{Name: "compare", Usage: "compare <repo_url> <file1> <file2> [branch]", MinArgs: 3, Cooldown: 2 * time.Minute, Run: c.compare})
	r.Register(&Command{Name: "upload", Usage: "upload (attach a file)", MinArgs: 0, Cooldown: time.Minute, Run: c.upload})
}

// resolve parses the URL and checks repository access, reporting failures to
// the channel. It returns the branch actually resolved (the default branch
// when the requested one does not exist); the bool reports whether the caller
// may continue.
func (c *AnalysisCommands) resolve(ctx context.Context, resp Responder, repoURL, branch string) (*models.Repo, string, bool) {
	owner, name, err := githubapi.ParseRepoURL(repoURL)
	if err != nil {
		resp.Send("❌ " + err.Error())
		return nil, "", false
	}

	repo, resolved, err := c.github.ResolveRepo(ctx, owner, name, branch)
	if err != nil {
		resp.Send("❌ " + err.Error())
		return nil, "", false
	}

	return repo, resolved, true
}

func branchArg(args []string, idx int) string {
	if len(args) > idx {
		return args[idx]
	}
	return "main"
}

func (c *AnalysisCommands) analyze(ctx context.Context, req *Request) error {
	repoURL := req.Args[0]
	branch := branchArg(req.Args, 1)

	req.Respond.Send("🔍 Starting repository analysis...")

	repo, branch, ok := c.resolve(ctx, req.Respond, repoURL, branch)
	if !ok {
		return nil
	}

	entries, err := c.github.ListTree(ctx, repo, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error accessing branch '%s' or its contents: %v", branch, err))
		return nil
	}

	frameworkName := c.structure.DetectFramework(entries)
	report := c.structure.Analyze(entries, frameworkName)

	analyzed, totalIssues := c.analyzeTreeFiles(ctx, req, repo, entries, branch)
	if len(analyzed) == 0 {
		req.Respond.Send("❌ No supported code files found in repository or too many files to analyze.")
		return nil
	}

	structureEmbed := newEmbed(
		fmt.Sprintf("📁 Project Structure Analysis: %s", repo.Name),
		fmt.Sprintf("**Framework:** %s\n**Branch:** %s", frameworkOrNotDetected(frameworkName), branch),
		colorGreen,
	)
	addField(structureEmbed, "⚠️ Structure Issues", strings.Join(report.Issues, "\n"), false)
	addField(structureEmbed, "💡 Recommendations", strings.Join(report.Recommendations, "\n"), false)
	if rec, ok := c.structure.Recommendation(frameworkName); ok {
		addField(structureEmbed, fmt.Sprintf("🏗️ %s Best Practices", frameworkName), rec.Description, false)
	}
	if err := req.Respond.SendEmbed(structureEmbed); err != nil {
		return err
	}

	color := colorGreen
	if totalIssues > 0 {
		color = colorOrange
	}
	summary := newEmbed(
		fmt.Sprintf("📊 Code Analysis Summary: %s", repo.Name),
		fmt.Sprintf("**Files analyzed:** %d\n**Total issues found:** %d", len(analyzed), totalIssues),
		color,
	)
	for _, f := range analyzed[:min(len(analyzed), detailedFileLimit)] {
		addField(summary, fmt.Sprintf("📄 %s (%s)", f.Name, f.Language), formatAnalysisDetails(f.Analysis, 3, 5, 5, 3), false)
	}
	if len(analyzed) > detailedFileLimit {
		addField(summary, "📝 Note",
			fmt.Sprintf("Showing details for first %d files. Total code files analyzed: %d", detailedFileLimit, len(analyzed)), false)
	}

	return req.Respond.SendEmbed(summary)
}

func (c *AnalysisCommands) analyzeTreeFiles(ctx context.Context, req *Request, repo *models.Repo, entries []models.TreeEntry, branch string) ([]models.AnalyzedFile, int) {
	var analyzed []models.AnalyzedFile
	totalIssues := 0

	for _, e := range entries {
		if len(analyzed) >= analyzeFileLimit {
			break
		}
		if e.Type != "file" || analyzer.LanguageFor(e.Path) == "" {
			continue
		}

		f, err := c.github.FetchFile(ctx, repo, e.Path, branch)
		if err != nil {
			log.Printf("[%s] error analyzing %s: %v", req.ID, e.Path, err)
			continue
		}

		a := c.code.Analyze(f.Name, f.Content)
		analyzed = append(analyzed, models.AnalyzedFile{
			Name:     f.Name,
			Path:     f.Path,
			Language: a.Language,
			Size:     len(f.Content),
			Analysis: a,
		})
		totalIssues += a.IssueCount()
	}

	return analyzed, totalIssues
}

func (c *AnalysisCommands) structureReport(ctx context.Context, req *Request) error {
	repoURL := req.Args[0]
	branch := branchArg(req.Args, 1)

	req.Respond.Send("🔍 Analyzing project structure...")

	repo, branch, ok := c.resolve(ctx, req.Respond, repoURL, branch)
	if !ok {
		return nil
	}

	entries, err := c.github.ListTree(ctx, repo, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error accessing branch '%s' or its contents: %v", branch, err))
		return nil
	}

	frameworkName := c.structure.DetectFramework(entries)
	report := c.structure.Analyze(entries, frameworkName)

	embed := newEmbed(
		fmt.Sprintf("📁 Project Structure: %s", repo.Name),
		fmt.Sprintf("**Framework:** %s\n**Branch:** %s", frameworkOrNotDetected(frameworkName), branch),
		colorBlue,
	)
	addField(embed, "📄 Files", formatPathList(report.Files, 20), true)
	addField(embed, "📁 Directories", formatPathList(report.Directories, 20), true)
	addField(embed, "⚠️ Issues", strings.Join(report.Issues, "\n"), false)
	addField(embed, "💡 Recommendations", strings.Join(report.Recommendations, "\n"), false)

	return req.Respond.SendEmbed(embed)
}

func (c *AnalysisCommands) search(ctx context.Context, req *Request) error {
	repoURL, filename := req.Args[0], req.Args[1]
	branch := branchArg(req.Args, 2)

	req.Respond.Send(fmt.Sprintf("🔍 Searching for '%s'...", filename))

	repo, branch, ok := c.resolve(ctx, req.Respond, repoURL, branch)
	if !ok {
		return nil
	}

	entries, err := c.github.ListTree(ctx, repo, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error accessing branch '%s' or its contents: %v", branch, err))
		return nil
	}

	filePath := githubapi.FindFile(entries, filename)
	if filePath == "" {
		req.Respond.Send(fmt.Sprintf("❌ File '%s' not found in repository", filename))
		return nil
	}

	f, err := c.github.FetchFile(ctx, repo, filePath, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error accessing file: %v", err))
		return nil
	}

	embed := newEmbed(
		fmt.Sprintf("📄 Found: %s", filename),
		fmt.Sprintf("**Path:** %s\n**Size:** %d bytes", f.Path, f.Size),
		colorGreen,
	)
	addField(embed, "🔗 GitHub URL",
		fmt.Sprintf("[View on GitHub](%s/blob/%s/%s)", repo.HTMLURL, branch, f.Path), false)

	return req.Respond.SendEmbed(embed)
}

func (c *AnalysisCommands) aiReview(ctx context.Context, req *Request) error {
	repoURL, filename := req.Args[0], req.Args[1]
	branch := branchArg(req.Args, 2)

	if c.llm == nil {
		req.Respond.Send(llmNotConfiguredMsg)
		return nil
	}

	req.Respond.Send("🤖 Starting AI code review...")

	repo, branch, ok := c.resolve(ctx, req.Respond, repoURL, branch)
	if !ok {
		return nil
	}

	entries, err := c.github.ListTree(ctx, repo, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error accessing branch '%s' or its contents: %v", branch, err))
		return nil
	}

	filePath := githubapi.FindFile(entries, filename)
	if filePath == "" {
		req.Respond.Send(fmt.Sprintf("❌ File '%s' not found in repository", filename))
		return nil
	}

	f, err := c.github.FetchFile(ctx, repo, filePath, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error reading file: %v", err))
		return nil
	}

	language := analyzer.LanguageFor(filename)
	if language == "" {
		language = "text"
	}

	reviewContext := fmt.Sprintf("Repository: %s\nBranch: %s\nFile path: %s", repo.Name, branch, filePath)

	req.Respond.Typing()
	review, err := c.llm.Complete(ctx, llm.Request{
		Prompt:      llm.ReviewPrompt(f.Content, language, filename, reviewContext),
		MaxTokens:   llm.ReviewMaxTokens,
		Temperature: llm.ReviewTemperature,
	})
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error during AI review: %v", err))
		return nil
	}

	return sendChunkedEmbeds(req.Respond, fmt.Sprintf("🤖 AI Code Review: %s", filename), review, colorGreen)
}

func (c *AnalysisCommands) compare(ctx context.Context, req *Request) error {
	repoURL, file1, file2 := req.Args[0], req.Args[1], req.Args[2]
	branch := branchArg(req.Args, 3)

	if c.llm == nil {
		req.Respond.Send(llmNotConfiguredMsg)
		return nil
	}

	req.Respond.Send(fmt.Sprintf("🔀 Comparing '%s' and '%s'...", file1, file2))

	repo, branch, ok := c.resolve(ctx, req.Respond, repoURL, branch)
	if !ok {
		return nil
	}

	entries, err := c.github.ListTree(ctx, repo, branch)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error accessing branch '%s' or its contents: %v", branch, err))
		return nil
	}

	var contents [2]*models.RepoFile
	for i, filename := range []string{file1, file2} {
		filePath := githubapi.FindFile(entries, filename)
		if filePath == "" {
			req.Respond.Send(fmt.Sprintf("❌ File '%s' not found in repository", filename))
			return nil
		}
		f, err := c.github.FetchFile(ctx, repo, filePath, branch)
		if err != nil {
			req.Respond.Send(fmt.Sprintf("❌ Error reading file '%s': %v", filename, err))
			return nil
		}
		contents[i] = f
	}

	language := analyzer.LanguageFor(file1)
	if language == "" {
		language = "text"
	}

	req.Respond.Typing()
	review, err := c.llm.Complete(ctx, llm.Request{
		Prompt:      llm.ComparePrompt(file1, contents[0].Content, file2, contents[1].Content, language),
		MaxTokens:   llm.ReviewMaxTokens,
		Temperature: llm.ReviewTemperature,
	})
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error during AI comparison: %v", err))
		return nil
	}

	return sendChunkedEmbeds(req.Respond,
		fmt.Sprintf("🔀 AI Comparison: %s vs %s", file1, file2), review, colorGreen)
}

func (c *AnalysisCommands) upload(ctx context.Context, req *Request) error {
	if len(req.Attachments) == 0 {
		req.Respond.Send("❌ Please attach a file to analyze")
		return nil
	}

	attachment := req.Attachments[0]

	if attachment.Size > maxUploadBytes {
		req.Respond.Send("❌ File too large (max 1MB)")
		return nil
	}

	if analyzer.LanguageFor(attachment.Filename) == "" {
		req.Respond.Send(fmt.Sprintf("❌ Unsupported file type: %s", strings.ToLower(filepath.Ext(attachment.Filename))))
		return nil
	}

	content, err := c.downloadAttachment(ctx, attachment.URL)
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error analyzing file: %v", err))
		return nil
	}

	a := c.code.Analyze(attachment.Filename, content)

	embed := newEmbed(
		fmt.Sprintf("📄 File Analysis: %s", attachment.Filename),
		fmt.Sprintf("**Language:** %s\n**Size:** %d bytes", a.Language, attachment.Size),
		colorGreen,
	)
	addField(embed, "Analysis Results", formatAnalysisDetails(a, 5, 10, 5, 5), false)

	return req.Respond.SendEmbed(embed)
}

func (c *AnalysisCommands) downloadAttachment(ctx context.Context, url string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("attachment download failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxUploadBytes {
		return "", fmt.Errorf("file too large (max 1MB)")
	}

	return string(body), nil
}

func frameworkOrNotDetected(name string) string {
	if name == "" {
		return "Not detected"
	}
	return name
}
