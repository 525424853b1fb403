package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"docrag/internal/domain"
)

// LeadingHeading labels content that appears before the first heading of a
// document.
const LeadingHeading = "(leading)"

const (
	DefaultMaxChars     = 1500
	DefaultOverlapChars = 150
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// HeadingChunker splits markdown into heading-delimited blocks and windows
// oversized blocks with a fixed overlap so no content is lost at a cut point.
type HeadingChunker struct {
	maxChars     int
	overlapChars int
}

// NewHeadingChunker validates the window parameters up front. An overlap at
// or above the window size would never make forward progress.
func NewHeadingChunker(maxChars, overlapChars int) (*HeadingChunker, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("chunker: max chars must be positive, got %d", maxChars)
	}
	if overlapChars < 0 || overlapChars >= maxChars {
		return nil, fmt.Errorf("chunker: overlap %d must be in [0, %d)", overlapChars, maxChars)
	}
	return &HeadingChunker{maxChars: maxChars, overlapChars: overlapChars}, nil
}

type block struct {
	heading string
	body    string
}

// Chunk splits content into ordered chunks. Output is deterministic: the
// same source and content always produce the same boundaries and IDs.
func (c *HeadingChunker) Chunk(source, content string) []domain.Chunk {
	var chunks []domain.Chunk
	partBy := make(map[string]int)

	for _, b := range splitBlocks(content) {
		// Normalize before measuring so incidental blank-line runs do not
		// move window boundaries.
		text := strings.TrimSpace(blankRunRe.ReplaceAllString(b.body, "\n\n"))
		if text == "" {
			continue
		}
		for _, window := range c.windows(text) {
			part := partBy[b.heading]
			partBy[b.heading]++
			chunks = append(chunks, domain.Chunk{
				ID:      ChunkID(source, b.heading, part),
				Text:    window,
				Source:  source,
				Heading: b.heading,
				Part:    part,
			})
		}
	}
	return chunks
}

// windows slices text into spans of at most maxChars, each subsequent span
// starting overlapChars before the end of the previous one. The final span
// always ends at the end of the text.
func (c *HeadingChunker) windows(text string) []string {
	runes := []rune(text)
	if len(runes) <= c.maxChars {
		return []string{text}
	}

	var out []string
	start := 0
	for {
		end := start + c.maxChars
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			return out
		}
		out = append(out, string(runes[start:end]))
		start = end - c.overlapChars
	}
}

func splitBlocks(content string) []block {
	var blocks []block
	current := block{heading: LeadingHeading}
	var body strings.Builder

	flush := func() {
		current.body = body.String()
		blocks = append(blocks, current)
		body.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = block{heading: m[2]}
			continue
		}
		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString(line)
	}
	flush()
	return blocks
}

// ChunkID derives a stable chunk identifier from (source, heading, part).
// It only changes when the source path, heading text, or split changes.
func ChunkID(source, heading string, part int) string {
	data := fmt.Sprintf("%s|%s|%d", source, heading, part)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}
