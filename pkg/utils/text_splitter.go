package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var separatorOnly = regexp.MustCompile(`^[-–—_=*#.\s]+$`)

// SplitText splits text into chunks of at most chunkSize characters with an
// overlap between consecutive chunks. Chunk boundaries are pulled back to the
// nearest whitespace when one is close, so words are not cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		// Look back a little for a whitespace boundary.
		cut := end
		for i := end; i > end-40 && i > start; i-- {
			if unicode.IsSpace(runes[i-1]) {
				cut = i
				break
			}
		}

		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// FilterFragments drops empty fragments and short separator-only lines
// (horizontal rules, markdown dividers) before chunking.
func FilterFragments(fragments []string) []string {
	var kept []string
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if len(f) < 10 && separatorOnly.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
