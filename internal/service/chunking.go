package service

import (
	"strings"
	"unicode"
)

// ChunkConfig controls chunking for knowledge embeddings.
type ChunkConfig struct {
	MaxChars  int
	MinChars  int
	Overlap   int
	MaxChunks int
}

// DefaultChunkConfig provides sane defaults for chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChars:  1000,
		MinChars:  200,
		Overlap:   200,
		MaxChunks: 40,
	}
}

// SplitText splits text into chunks of at most cfg.MaxChars runes, each chunk
// after the first overlapping the previous one's tail by cfg.Overlap runes.
// Splits prefer paragraph breaks, then line breaks, then sentence ends, then
// whitespace, falling back to a hard cut. Deterministic and side-effect free.
func SplitText(text string, cfg ChunkConfig) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}
	runes := []rune(clean)
	if len(runes) <= cfg.MaxChars {
		return []string{clean}
	}

	chunks := make([]string, 0, 8)
	start := 0
	for start < len(runes) {
		if cfg.MaxChunks > 0 && len(chunks) >= cfg.MaxChunks {
			break
		}

		end := start + cfg.MaxChars
		if end > len(runes) {
			end = len(runes)
		}

		if end < len(runes) {
			floor := start + cfg.MinChars
			if floor > end {
				floor = start
			}
			end = findCut(runes, floor, end)
		}

		if end <= start {
			break
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		nextStart := end
		if cfg.Overlap > 0 && end-start > cfg.Overlap {
			nextStart = end - cfg.Overlap
		}
		if nextStart <= start {
			nextStart = end
		}
		start = nextStart
	}

	return chunks
}

// findCut picks a cut position in (floor, end], preferring higher-level
// structural boundaries over lower-level ones.
func findCut(runes []rune, floor, end int) int {
	// paragraph break: cut after a blank line
	for i := end; i > floor+1; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}

	// line break
	for i := end; i > floor; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}

	// sentence end: terminal punctuation followed by space
	for i := end; i > floor+1; i-- {
		if isSentenceEnd(runes[i-2]) && unicode.IsSpace(runes[i-1]) {
			return i
		}
	}

	// any whitespace
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}

	// hard cut
	return end
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}
