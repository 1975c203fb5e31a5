package annotation

import (
	"iter"
	"slices"
	"strings"
)

// ExtractOptions tunes block extraction.
type ExtractOptions struct {
	// StringAware skips braces that appear inside single or double quoted
	// strings. Off by default: existing annotated sources rely on every
	// brace being counted.
	StringAware bool
}

// Blocks yields every balanced brace-delimited span that follows an
// occurrence of marker in text, in order of appearance.
//
// Scanning stops for good, without yielding anything further, when a marker
// has no opening brace after it or when the text ends before the braces
// balance. Braces inside string literals are counted unless
// opts.StringAware is set.
func Blocks(text, marker string, opts ExtractOptions) iter.Seq[string] {
	return func(yield func(string) bool) {
		if marker == "" {
			return
		}
		cursor := 0
		for cursor < len(text) {
			at := strings.Index(text[cursor:], marker)
			if at < 0 {
				return
			}
			start := cursor + at

			open := strings.IndexByte(text[start:], '{')
			if open < 0 {
				return
			}
			open += start

			end := matchBrace(text, open, opts.StringAware)
			if end < 0 {
				return
			}
			if !yield(text[open : end+1]) {
				return
			}
			cursor = end + 1
		}
	}
}

// ExtractBlocks collects Blocks with the default lenient options.
func ExtractBlocks(text, marker string) []string {
	return slices.Collect(Blocks(text, marker, ExtractOptions{}))
}

// matchBrace returns the index of the brace closing the one at open, or -1
// when the text ends first.
func matchBrace(text string, open int, stringAware bool) int {
	depth := 0
	var quote byte
	escaped := false

	for i := open; i < len(text); i++ {
		c := text[i]

		if stringAware && quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			if stringAware {
				quote = c
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
