package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jeeems/devbot/internal/cooldown"
)

// Responder sends replies back into the channel a command came from.
type Responder interface {
	Send(text string) error
	SendEmbed(embed *discordgo.MessageEmbed) error
	Typing()
}

// Request carries one command invocation.
type Request struct {
	ID          string // correlation id for log lines
	UserID      string
	ChannelID   string
	Args        []string
	RawArgs     string
	Attachments []*discordgo.MessageAttachment
	Respond     Responder
}

// Handler executes one chat command. A returned error means an unexpected
// failure; expected refusals (bad URL, missing file, upstream rejection) are
// sent to the channel by the handler itself and reported as nil.
type Handler func(ctx context.Context, req *Request) error

type Command struct {
	Name     string
	Usage    string
	MinArgs  int
	Cooldown time.Duration
	Run      Handler
}

// Router parses prefixed messages and dispatches them to registered commands.
type Router struct {
	prefix    string
	cooldowns *cooldown.Limiter
	commands  map[string]*Command
}

func NewRouter(prefix string, cooldowns *cooldown.Limiter) *Router {
	return &Router{
		prefix:    prefix,
		cooldowns: cooldowns,
		commands:  make(map[string]*Command),
	}
}

func (r *Router) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
}

// Dispatch parses a raw message and runs the matching command. Messages
// without the prefix and unknown command names are ignored silently.
func (r *Router) Dispatch(ctx context.Context, content string, req *Request) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, r.prefix) {
		return
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return
	}

	name := strings.TrimPrefix(fields[0], r.prefix)
	cmd, ok := r.commands[name]
	if !ok {
		return
	}

	if remaining, ok := r.cooldowns.Check(req.UserID, cmd.Name, cmd.Cooldown); !ok {
		req.Respond.Send(fmt.Sprintf("⏰ This command is on cooldown. Please try again in %.1fs.", remaining.Seconds()))
		return
	}

	req.Args = fields[1:]
	req.RawArgs = strings.TrimSpace(strings.TrimPrefix(content, fields[0]))

	if len(req.Args) < cmd.MinArgs {
		req.Respond.Send(fmt.Sprintf("❌ Missing a required argument. Usage: `%s%s`. Use `%shelp-dev` to see command usage.",
			r.prefix, cmd.Usage, r.prefix))
		return
	}

	log.Printf("[%s] user %s invoked %s%s", req.ID, req.UserID, r.prefix, cmd.Name)

	if err := cmd.Run(ctx, req); err != nil {
		log.Printf("[%s] command %s%s failed: %v", req.ID, r.prefix, cmd.Name, err)
		req.Respond.Send("❌ An unexpected error occurred. Please check the logs.")
	}
}
