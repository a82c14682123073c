package commands

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/jeeems/devbot/internal/models"
)

// Discord hard limits the bot formats against.
const (
	maxEmbedDescription = 2000
	maxEmbedFieldValue  = 1024
)

const (
	colorGreen  = 0x00ff00
	colorBlue   = 0x0099ff
	colorOrange = 0xff9900
)

func newEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
}

func addField(embed *discordgo.MessageEmbed, name, value string, inline bool) {
	if value == "" {
		return
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  limitField(value),
		Inline: inline,
	})
}

func limitField(value string) string {
	if len(value) <= maxEmbedFieldValue {
		return value
	}
	return value[:runeBoundary(value, maxEmbedFieldValue-3)] + "..."
}

// chunkText splits s into pieces of at most size bytes, cutting only on
// rune boundaries so multi-byte text is never split mid-character.
func chunkText(s string, size int) []string {
	if len(s) <= size {
		return []string{s}
	}

	var chunks []string
	for len(s) > size {
		cut := runeBoundary(s, size)
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}

// runeBoundary returns the largest index <= max that does not land inside a
// multi-byte rune of s.
func runeBoundary(s string, max int) int {
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return max
}

// sendChunkedEmbeds sends text as one embed, or as numbered parts when it
// exceeds the description limit.
func sendChunkedEmbeds(resp Responder, title, text string, color int) error {
	chunks := chunkText(text, maxEmbedDescription)
	if len(chunks) == 1 {
		return resp.SendEmbed(newEmbed(title, chunks[0], color))
	}

	for i, chunk := range chunks {
		partTitle := fmt.Sprintf("%s (Part %d/%d)", title, i+1, len(chunks))
		if err := resp.SendEmbed(newEmbed(partTitle, chunk, color)); err != nil {
			return err
		}
	}
	return nil
}

// formatAnalysisDetails renders an analysis into the issue/suggestion list
// used by both repository and upload reports. Limits keep a single file from
// eating the whole embed.
func formatAnalysisDetails(a *models.FileAnalysis, issueLimit, importLimit, funcLimit, suggestionLimit int) string {
	var details []string

	appendSection := func(header string, items []string, limit int, codeQuote bool) {
		if len(items) == 0 {
			return
		}
		details = append(details, header)
		shown := items
		if len(shown) > limit {
			shown = shown[:limit]
		}
		for _, item := range shown {
			if codeQuote {
				details = append(details, fmt.Sprintf("- `%s`", item))
			} else {
				details = append(details, fmt.Sprintf("- %s", item))
			}
		}
		if len(items) > limit {
			details = append(details, fmt.Sprintf("... (%d more)", len(items)-limit))
		}
	}

	appendSection("⚠️ **Potential Issues:**", a.PotentialIssues, issueLimit, false)
	appendSection("🔄 **Unused Imports:**", a.UnusedImports, importLimit, true)
	appendSection("🔄 **Unused Functions:**", a.UnusedFunctions, funcLimit, true)
	appendSection("💡 **Suggestions:**", a.Suggestions, suggestionLimit, false)

	if len(details) == 0 {
		return "✅ No specific issues or suggestions found"
	}
	return strings.Join(details, "\n")
}

// formatPathList renders up to limit paths with a trailing "and N more" line.
func formatPathList(paths []string, limit int) string {
	if len(paths) <= limit {
		return strings.Join(paths, "\n")
	}
	return strings.Join(paths[:limit], "\n") + fmt.Sprintf("\n... and %d more", len(paths)-limit)
}
