// Package completion models the shell side of tab completion: splitting a
// partially typed command line into completed words plus the word under
// the cursor, and ranking the candidate suggestions an engine produces
// for it. The matching itself lives with the route table; this package is
// deliberately free of any route knowledge so shells and tests can use it
// standalone.
package completion

import (
	"strings"
	"unicode"
)

// ParsedInput is a partially typed command line split for completion.
// Completed holds the fully typed words, Partial the word still being
// typed (empty when the line ends in whitespace).
type ParsedInput struct {
	Completed []string
	Partial   string
}

// TrailingSpace reports whether the cursor sits after a finished word,
// i.e. the next completion starts a fresh word.
func (p ParsedInput) TrailingSpace() bool {
	return p.Partial == ""
}

// ParseInput splits a raw input line into completed words and the partial
// word under the cursor. Quoting and backslash escapes follow shell
// conventions, but unlike a strict tokenizer an unterminated quote is not
// an error: the open quoted region simply becomes the partial word, since
// mid-typing input is the normal case here.
func ParseInput(line string) ParsedInput {
	var (
		words   []string
		current strings.Builder
		started bool
		quote   rune
		escaped bool
	)

	flush := func() {
		if started {
			words = append(words, current.String())
			current.Reset()
			started = false
		}
	}

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			started = true
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			started = true
			quote = r
		case unicode.IsSpace(r):
			flush()
		default:
			started = true
			current.WriteRune(r)
		}
	}

	parsed := ParsedInput{}
	if started {
		parsed.Partial = current.String()
	}
	parsed.Completed = words

	return parsed
}
