package chunker

import (
	"strings"
	"testing"
)

func TestNewHeadingChunkerRejectsBadOverlap(t *testing.T) {
	cases := []struct {
		name     string
		maxChars int
		overlap  int
	}{
		{"overlap equals max", 100, 100},
		{"overlap above max", 100, 150},
		{"negative overlap", 100, -1},
		{"zero max", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHeadingChunker(tc.maxChars, tc.overlap); err == nil {
				t.Fatalf("expected error for max=%d overlap=%d", tc.maxChars, tc.overlap)
			}
		})
	}
}

func TestChunkHeadingBlocks(t *testing.T) {
	c, err := NewHeadingChunker(DefaultMaxChars, DefaultOverlapChars)
	if err != nil {
		t.Fatal(err)
	}

	content := `intro before any heading

# Authentication

Tokens are issued per client.

## Retry Policy

Use exponential backoff.
`
	chunks := c.Chunk("guide.md", content)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	if chunks[0].Heading != LeadingHeading {
		t.Errorf("expected leading block first, got %q", chunks[0].Heading)
	}
	if chunks[1].Heading != "Authentication" {
		t.Errorf("expected Authentication, got %q", chunks[1].Heading)
	}
	if chunks[2].Heading != "Retry Policy" {
		t.Errorf("expected Retry Policy, got %q", chunks[2].Heading)
	}
	for _, ch := range chunks {
		if ch.Part != 0 {
			t.Errorf("single-window block should have part 0, got %d", ch.Part)
		}
		if ch.Source != "guide.md" {
			t.Errorf("unexpected source %q", ch.Source)
		}
		if strings.TrimSpace(ch.Text) == "" {
			t.Error("chunk has empty text")
		}
	}
}

func TestChunkSkipsEmptyBlocks(t *testing.T) {
	c, _ := NewHeadingChunker(100, 10)

	chunks := c.Chunk("doc.md", "# Empty\n\n# Full\n\ncontent here\n")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Heading != "Full" {
		t.Errorf("expected Full, got %q", chunks[0].Heading)
	}
}

func TestChunkWindowOverlap(t *testing.T) {
	const maxChars, overlap = 40, 10
	c, _ := NewHeadingChunker(maxChars, overlap)

	body := strings.Repeat("abcdefghij", 12) // 120 chars, forces windowing
	chunks := c.Chunk("doc.md", "# Big\n\n"+body)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple windows, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Part != i {
			t.Errorf("window %d has part %d", i, ch.Part)
		}
		if len([]rune(ch.Text)) > maxChars {
			t.Errorf("window %d exceeds max chars: %d", i, len(ch.Text))
		}
	}
	// Adjacent windows share at least the configured overlap.
	for i := 0; i < len(chunks)-1; i++ {
		suffix := chunks[i].Text[len(chunks[i].Text)-overlap:]
		if !strings.HasPrefix(chunks[i+1].Text, suffix) {
			t.Errorf("window %d does not start with the previous window's suffix", i+1)
		}
	}
	// Last window ends exactly at the block's end.
	last := chunks[len(chunks)-1].Text
	if !strings.HasSuffix(body, last) {
		t.Error("last window does not end at block end")
	}
}

func TestChunkBlankRunNormalization(t *testing.T) {
	c, _ := NewHeadingChunker(50, 5)

	sparse := "# H\n\nline one\n\n\n\n\nline two"
	dense := "# H\n\nline one\n\nline two"

	a := c.Chunk("doc.md", sparse)
	b := c.Chunk("doc.md", dense)
	if len(a) != len(b) {
		t.Fatalf("blank runs changed chunk count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			t.Errorf("chunk %d differs: %q vs %q", i, a[i].Text, b[i].Text)
		}
	}
}

func TestChunkDeterminism(t *testing.T) {
	c, _ := NewHeadingChunker(30, 8)
	content := "# One\n\n" + strings.Repeat("xyz ", 40) + "\n\n# Two\n\nshort"

	first := c.Chunk("d.md", content)
	second := c.Chunk("d.md", content)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Text != second[i].Text {
			t.Errorf("chunk %d is not reproducible", i)
		}
	}

	seen := make(map[string]bool)
	for _, ch := range first {
		if seen[ch.ID] {
			t.Errorf("duplicate chunk id %s", ch.ID)
		}
		seen[ch.ID] = true
	}
}
