package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/jeeems/devbot/internal/commands"
)

// Bot owns the Discord gateway session and hands incoming messages to the
// command router. Each command runs on its own goroutine with a bounded
// context; the gateway event loop itself is never blocked.
type Bot struct {
	session *discordgo.Session
	router  *commands.Router
	prefix  string
	timeout time.Duration
}

func New(token, prefix string, router *commands.Router, commandTimeout time.Duration) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		router:  router,
		prefix:  prefix,
		timeout: commandTimeout,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onDisconnect)
	session.AddHandler(b.onResumed)

	return b, nil
}

// Session exposes the underlying gateway session for status reporting.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord gateway: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("%s#%s has connected to Discord", r.User.Username, r.User.Discriminator)
	log.Printf("Bot is in %d guilds", len(r.Guilds))

	if err := s.UpdateWatchStatus(0, "for "+b.prefix+"help-dev"); err != nil {
		log.Printf("Failed to set presence: %v", err)
	}
}

func (b *Bot) onDisconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	log.Println("Bot disconnected from Discord")
}

func (b *Bot) onResumed(s *discordgo.Session, r *discordgo.Resumed) {
	log.Println("Bot resumed connection to Discord")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	req := &commands.Request{
		ID:          uuid.NewString(),
		UserID:      m.Author.ID,
		ChannelID:   m.ChannelID,
		Attachments: m.Attachments,
		Respond:     &channelResponder{session: s, channelID: m.ChannelID},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		b.router.Dispatch(ctx, m.Content, req)
	}()
}

// channelResponder replies into the channel a command arrived from.
type channelResponder struct {
	session   *discordgo.Session
	channelID string
}

func (r *channelResponder) Send(text string) error {
	_, err := r.session.ChannelMessageSend(r.channelID, text)
	return err
}

func (r *channelResponder) SendEmbed(embed *discordgo.MessageEmbed) error {
	_, err := r.session.ChannelMessageSendEmbed(r.channelID, embed)
	return err
}

func (r *channelResponder) Typing() {
	r.session.ChannelTyping(r.channelID)
}
