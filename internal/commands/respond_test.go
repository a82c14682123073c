package commands

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jeeems/devbot/internal/models"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		size  int
		want  int
	}{
		{"fits in one", "short", 10, 1},
		{"exact boundary", strings.Repeat("a", 10), 10, 1},
		{"splits in two", strings.Repeat("a", 11), 10, 2},
		{"splits in three", strings.Repeat("a", 25), 10, 3},
		{"empty", "", 10, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks := chunkText(tc.input, tc.size)
			if len(chunks) != tc.want {
				t.Fatalf("Expected %d chunks, got %d", tc.want, len(chunks))
			}
			if strings.Join(chunks, "") != tc.input {
				t.Error("Expected chunks to reassemble into the input")
			}
			for _, chunk := range chunks {
				if len(chunk) > tc.size {
					t.Errorf("Chunk exceeds size limit: %d > %d", len(chunk), tc.size)
				}
			}
		})
	}
}

func TestChunkText_MultiByte(t *testing.T) {
	// 800 three-byte runes exceed the description limit; no chunk may end or
	// start inside a rune.
	input := strings.Repeat("日", 800)

	chunks := chunkText(input, maxEmbedDescription)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != input {
		t.Error("Expected chunks to reassemble into the input")
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("Chunk %d is not valid UTF-8", i)
		}
		if len(chunk) > maxEmbedDescription {
			t.Errorf("Chunk %d exceeds size limit: %d", i, len(chunk))
		}
	}
}

func TestSendChunkedEmbeds_NumbersParts(t *testing.T) {
	resp := &fakeResponder{}

	text := strings.Repeat("x", maxEmbedDescription+1)
	if err := sendChunkedEmbeds(resp, "Review", text, colorGreen); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(resp.embeds) != 2 {
		t.Fatalf("Expected 2 embeds, got %d", len(resp.embeds))
	}
	if resp.embeds[0].Title != "Review (Part 1/2)" {
		t.Errorf("Unexpected first title %q", resp.embeds[0].Title)
	}
	if resp.embeds[1].Title != "Review (Part 2/2)" {
		t.Errorf("Unexpected second title %q", resp.embeds[1].Title)
	}
}

func TestSendChunkedEmbeds_SinglePartKeepsTitle(t *testing.T) {
	resp := &fakeResponder{}

	if err := sendChunkedEmbeds(resp, "Review", "all good", colorGreen); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(resp.embeds) != 1 || resp.embeds[0].Title != "Review" {
		t.Fatalf("Expected one untouched title, got %v", resp.embeds)
	}
}

func TestFormatAnalysisDetails(t *testing.T) {
	a := &models.FileAnalysis{
		PotentialIssues: []string{"issue-1", "issue-2", "issue-3", "issue-4"},
		UnusedImports:   []string{"os"},
		Suggestions:     []string{"split this file"},
	}

	out := formatAnalysisDetails(a, 3, 5, 5, 3)

	if !strings.Contains(out, "⚠️ **Potential Issues:**") {
		t.Error("Expected issues header")
	}
	if !strings.Contains(out, "... (1 more)") {
		t.Errorf("Expected overflow marker, got %q", out)
	}
	if !strings.Contains(out, "- `os`") {
		t.Errorf("Expected code-quoted import, got %q", out)
	}
	if strings.Contains(out, "issue-4") {
		t.Errorf("Expected issue-4 to be cut, got %q", out)
	}
}

func TestFormatAnalysisDetails_Clean(t *testing.T) {
	out := formatAnalysisDetails(&models.FileAnalysis{}, 3, 5, 5, 3)
	if !strings.Contains(out, "No specific issues") {
		t.Errorf("Expected clean-file message, got %q", out)
	}
}

func TestFormatPathList(t *testing.T) {
	paths := []string{"a", "b", "c"}

	if got := formatPathList(paths, 5); got != "a\nb\nc" {
		t.Errorf("Unexpected list %q", got)
	}
	if got := formatPathList(paths, 2); !strings.Contains(got, "... and 1 more") {
		t.Errorf("Expected overflow suffix, got %q", got)
	}
}

func TestLimitField(t *testing.T) {
	if got := limitField("short"); got != "short" {
		t.Errorf("Expected passthrough, got %q", got)
	}

	long := strings.Repeat("x", maxEmbedFieldValue+50)
	got := limitField(long)
	if len(got) != maxEmbedFieldValue {
		t.Errorf("Expected %d bytes, got %d", maxEmbedFieldValue, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Expected ellipsis suffix")
	}
}

func TestLimitField_MultiByte(t *testing.T) {
	got := limitField(strings.Repeat("é", maxEmbedFieldValue))
	if !utf8.ValidString(got) {
		t.Error("Expected truncation on a rune boundary")
	}
	if len(got) > maxEmbedFieldValue {
		t.Errorf("Expected at most %d bytes, got %d", maxEmbedFieldValue, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Expected ellipsis suffix")
	}
}
