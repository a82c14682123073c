package llm

import "fmt"

// Default request parameters per command, matching how hard each task leans
// on the model.
const (
	ReviewMaxTokens   = 1500
	ReviewTemperature = 0.1

	ChatMaxTokens   = 1000
	ChatTemperature = 0.3
)

// ChatSystemPrompt is the persona used for free-form !chat conversations.
const ChatSystemPrompt = `You are DevBot, an expert AI assistant specialized in software development.
You help developers with code review, debugging, best practices, and project structure advice.
Provide helpful, accurate, and practical advice.`

// ReviewPrompt builds the structured code-review prompt for a single file.
func ReviewPrompt(code, language, filename, context string) string {
	return fmt.Sprintf(`As an expert %s developer, review this code from '%s' and provide:

1. **🐛 Potential Bugs**: Identify any bugs or logical errors
2. **🔧 Code Quality**: Assess code structure, readability, and maintainability
3. **⚡ Performance**: Suggest optimizations for better performance
4. **🛡️ Security**: Identify security vulnerabilities
5. **📏 Best Practices**: Recommend following language-specific best practices
6. **🧹 Code Cleanup**: Suggest unused code removal and improvements

%s

Code:
`+"```%s\n%s\n```"+`

Provide a detailed but concise review with specific examples and actionable suggestions.`,
		language, filename, context, language, code)
}

// ComparePrompt builds the prompt for a two-file comparison review.
func ComparePrompt(name1, code1, name2, code2, language string) string {
	return fmt.Sprintf(`As an expert %s developer, compare these two files from the same repository:

1. **🔍 Differences**: Summarize the meaningful differences in behavior and structure
2. **♻️ Duplication**: Point out logic duplicated between the files that should be shared
3. **🏆 Preference**: If the files solve the same problem, say which approach is better and why
4. **💡 Suggestions**: Concrete improvements for each file

File '%s':
`+"```%s\n%s\n```"+`

File '%s':
`+"```%s\n%s\n```"+`

Provide a detailed but concise comparison with actionable suggestions.`,
		language, name1, language, code1, name2, language, code2)
}
