package commands

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jeeems/devbot/internal/llm"
	"github.com/jeeems/devbot/internal/models"
)

const llmNotConfiguredMsg = "❌ AI provider is not configured. Set GROQ_API_KEY or GEMINI_API_KEY."

// chatHistoryLimit caps the messages remembered per user (5 exchanges).
const chatHistoryLimit = 10

// GeneralCommands groups the chat, status and help commands.
type GeneralCommands struct {
	session *discordgo.Session
	llm     *llm.Service // nil when no provider is configured
	prefix  string

	githubConfigured bool
	groqConfigured   bool
	geminiConfigured bool

	mu      sync.Mutex
	history map[string][]models.ChatMessage // userID -> recent chat turns
}

func NewGeneralCommands(session *discordgo.Session, llmService *llm.Service, prefix string,
	githubConfigured, groqConfigured, geminiConfigured bool) *GeneralCommands {
	return &GeneralCommands{
		session:          session,
		llm:              llmService,
		prefix:           prefix,
		githubConfigured: githubConfigured,
		groqConfigured:   groqConfigured,
		geminiConfigured: geminiConfigured,
		history:          make(map[string][]models.ChatMessage),
	}
}

func (c *GeneralCommands) Register(r *Router) {
	r.Register(&Command{Name: "chat", Usage: "chat <message>", MinArgs: 1, Cooldown: 30 * time.Second, Run: c.chat})
	r.Register(&Command{Name: "status", Usage: "status", Run: c.status})
	r.Register(&Command{Name: "help-dev", Usage: "help-dev", Run: c.helpDev})
}

func (c *GeneralCommands) chat(ctx context.Context, req *Request) error {
	message := req.RawArgs
	if strings.TrimSpace(message) == "" {
		req.Respond.Send("❌ Please provide a message to chat with the AI.")
		return nil
	}

	if c.llm == nil {
		req.Respond.Send(llmNotConfiguredMsg)
		return nil
	}

	req.Respond.Typing()
	reply, err := c.llm.Complete(ctx, llm.Request{
		System:      llm.ChatSystemPrompt,
		History:     c.userHistory(req.UserID),
		Prompt:      message,
		MaxTokens:   llm.ChatMaxTokens,
		Temperature: llm.ChatTemperature,
	})
	if err != nil {
		req.Respond.Send(fmt.Sprintf("❌ Error getting AI response: %v", err))
		return nil
	}

	c.rememberExchange(req.UserID, message, reply)

	return sendChunkedEmbeds(req.Respond, "🤖 DevBot Response", reply, colorGreen)
}

func (c *GeneralCommands) userHistory(userID string) []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := c.history[userID]
	out := make([]models.ChatMessage, len(history))
	copy(out, history)
	return out
}

func (c *GeneralCommands) rememberExchange(userID, message, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := append(c.history[userID],
		models.ChatMessage{Role: "user", Content: message},
		models.ChatMessage{Role: "assistant", Content: reply},
	)
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	c.history[userID] = history
}

func (c *GeneralCommands) status(ctx context.Context, req *Request) error {
	embed := newEmbed("🤖 DevBot Status", "", colorGreen)

	guilds := 0
	members := 0
	if c.session != nil && c.session.State != nil {
		guilds = len(c.session.State.Guilds)
		for _, g := range c.session.State.Guilds {
			members += g.MemberCount
		}
	}

	addField(embed, "🔧 Bot Status",
		fmt.Sprintf("✅ Online\n📊 Guilds: %d\n👥 Users: %d", guilds, members), true)

	apiStatus := []string{
		credentialLine("GitHub API", c.githubConfigured),
		credentialLine("Groq AI", c.groqConfigured),
		credentialLine("Gemini AI", c.geminiConfigured),
	}
	addField(embed, "🔑 API Status", strings.Join(apiStatus, "\n"), true)

	addField(embed, "💻 System",
		fmt.Sprintf("🐹 Go: %s\n📦 discordgo: v%s", runtime.Version(), discordgo.VERSION), true)

	embed.Footer = &discordgo.MessageEmbedFooter{Text: "DevBot v2.0"}

	return req.Respond.SendEmbed(embed)
}

func credentialLine(name string, configured bool) string {
	if configured {
		return fmt.Sprintf("✅ %s: Connected", name)
	}
	return fmt.Sprintf("❌ %s: Not configured", name)
}

func (c *GeneralCommands) helpDev(ctx context.Context, req *Request) error {
	p := c.prefix

	embed := newEmbed("🤖 DevBot Commands", "AI-powered code analysis and development assistant", colorBlue)

	addField(embed, "📁 Repository Analysis", strings.Join([]string{
		fmt.Sprintf("`%sanalyze <repo_url> [branch]` - Analyze GitHub repository", p),
		fmt.Sprintf("`%sstructure <repo_url> [branch]` - Show project structure", p),
		fmt.Sprintf("`%ssearch <repo_url> <filename>` - Search for specific file", p),
		fmt.Sprintf("`%scompare <repo_url> <file1> <file2>` - Compare two files", p),
	}, "\n"), false)

	addField(embed, "🔍 AI Code Review", strings.Join([]string{
		fmt.Sprintf("`%sai-review <repo_url> <filename>` - AI code review", p),
		fmt.Sprintf("`%supload` - Upload file for analysis", p),
		fmt.Sprintf("`%schat <message>` - Chat with AI assistant", p),
	}, "\n"), false)

	addField(embed, "🤖 Bot Commands", strings.Join([]string{
		fmt.Sprintf("`%sstatus` - Check bot status", p),
		fmt.Sprintf("`%shelp-dev` - Show this help message", p),
	}, "\n"), false)

	addField(embed, "📝 Examples", strings.Join([]string{
		fmt.Sprintf("`%sanalyze https://github.com/user/repo`", p),
		fmt.Sprintf("`%sai-review https://github.com/user/repo main.py`", p),
		fmt.Sprintf("`%schat How do I optimize this Python code?`", p),
	}, "\n"), false)

	embed.Footer = &discordgo.MessageEmbedFooter{Text: "DevBot v1.0 - Powered by AI"}

	return req.Respond.SendEmbed(embed)
}
