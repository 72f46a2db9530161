// Package parse implements the route-pattern language: a lexer and parser
// turning declarative pattern strings such as
//
//	deploy {env:environment} --version {ver?} --force,-f
//
// into a validated RoutePattern ready for compilation. Tokenize never fails;
// malformed input surfaces as Invalid tokens so the parser can report a
// precise diagnostic instead of guessing intent.
package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a pattern token
type TokenKind int

const (
	TokenIdentifier TokenKind = iota // bare word, name, constraint or description text
	TokenDashShort                   // '-' introducing a short option form
	TokenDashLong                    // '--' introducing a long option form
	TokenBraceOpen                   // '{'
	TokenBraceClose                  // '}'
	TokenColon                       // ':' separating a parameter name from its constraint
	TokenQuestion                    // '?' marking optionality
	TokenStar                        // '*' marking a catch-all, first position inside braces only
	TokenPipe                        // '|' introducing inline description text
	TokenComma                       // ',' separating option aliases
	TokenInvalid                     // malformed run, Text carries the offending substring
	TokenEOF                         // end of pattern
)

// String returns the string representation of a TokenKind
func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "identifier"
	case TokenDashShort:
		return "dash"
	case TokenDashLong:
		return "double-dash"
	case TokenBraceOpen:
		return "open-brace"
	case TokenBraceClose:
		return "close-brace"
	case TokenColon:
		return "colon"
	case TokenQuestion:
		return "question"
	case TokenStar:
		return "star"
	case TokenPipe:
		return "pipe"
	case TokenComma:
		return "comma"
	case TokenInvalid:
		return "invalid"
	case TokenEOF:
		return "end"
	}
	return "unknown"
}

// Token is one lexical unit of a route pattern. Pos is the byte offset of
// the first rune of Text within the pattern string.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

type lexer struct {
	input   string
	pos     int
	inBrace bool
	tokens  []Token
}

// Tokenize converts a route pattern into its token stream. The stream always
// ends with a TokenEOF. Malformed runs - an identifier with an embedded "--"
// or a trailing dash, a short option with more than one character, a bare
// dash run - lex as a single TokenInvalid spanning the whole run rather than
// as disjoint valid tokens.
func Tokenize(pattern string) []Token {
	l := &lexer{input: pattern}
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += size
		case r == '{':
			l.emit(TokenBraceOpen, "{")
			l.inBrace = true
		case r == '}':
			l.emit(TokenBraceClose, "}")
			l.inBrace = false
		case r == ':':
			l.emit(TokenColon, ":")
		case r == '?':
			l.emit(TokenQuestion, "?")
		case r == '*':
			l.emit(TokenStar, "*")
		case r == ',':
			l.emit(TokenComma, ",")
		case r == '|':
			l.emit(TokenPipe, "|")
			l.lexDescription()
		case r == '-' && !l.inBrace:
			l.lexDashes()
		default:
			l.lexWord()
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenEOF, Pos: len(pattern)})

	return l.tokens
}

func (l *lexer) emit(kind TokenKind, text string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Pos: l.pos})
	l.pos += len(text)
}

// lexDescription reads the free text following a '|'. Inside braces the text
// runs to the closing brace; outside it runs to the next whitespace or comma
// so that option alias lists stay parseable.
func (l *lexer) lexDescription() {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if l.inBrace {
			if r == '}' {
				break
			}
		} else if unicode.IsSpace(r) || r == ',' {
			break
		}
		l.pos += size
	}

	if text := strings.TrimSpace(l.input[start:l.pos]); text != "" {
		l.tokens = append(l.tokens, Token{Kind: TokenIdentifier, Text: text, Pos: start})
	}
}

// lexDashes handles a run of '-' outside braces. A single dash must be
// followed by exactly one alphanumeric and a boundary; a double dash must be
// followed by a word. Everything else is one Invalid token.
func (l *lexer) lexDashes() {
	start := l.pos
	dashes := 0
	for l.pos < len(l.input) && l.input[l.pos] == '-' {
		dashes++
		l.pos++
	}

	rest := l.wordRun(l.pos)
	switch {
	case dashes == 1 && len(rest) == 1 && isWordRune(rune(rest[0])):
		l.tokens = append(l.tokens, Token{Kind: TokenDashShort, Text: "-", Pos: start})
		l.tokens = append(l.tokens, Token{Kind: TokenIdentifier, Text: rest, Pos: l.pos})
		l.pos += len(rest)
	case dashes == 2 && rest != "" && !strings.Contains(rest, "--") && !strings.HasSuffix(rest, "-"):
		l.tokens = append(l.tokens, Token{Kind: TokenDashLong, Text: "--", Pos: start})
		l.lexWord()
	default:
		// ambiguous: "-", "---", "-ab", "--x-" and friends
		l.pos += len(rest)
		l.tokens = append(l.tokens, Token{Kind: TokenInvalid, Text: l.input[start:l.pos], Pos: start})
	}
}

// lexWord reads a maximal run of word runes. A word containing an embedded
// "--" or ending in '-' is ambiguous between a literal and an option form
// and lexes as Invalid as a whole.
func (l *lexer) lexWord() {
	start := l.pos
	word := l.wordRun(l.pos)
	if word == "" {
		// a rune no rule claims, e.g. a stray quote
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.tokens = append(l.tokens, Token{Kind: TokenInvalid, Text: l.input[l.pos : l.pos+size], Pos: start})
		l.pos += size
		return
	}

	l.pos += len(word)
	if strings.Contains(word, "--") || strings.HasSuffix(word, "-") {
		l.tokens = append(l.tokens, Token{Kind: TokenInvalid, Text: word, Pos: start})
		return
	}

	l.tokens = append(l.tokens, Token{Kind: TokenIdentifier, Text: word, Pos: start})
}

// wordRun returns the maximal word run starting at offset without consuming it
func (l *lexer) wordRun(offset int) string {
	end := offset
	for end < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[end:])
		if !isWordRune(r) && r != '-' {
			break
		}
		end += size
	}

	return l.input[offset:end]
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

// IsIdentifier reports whether s is shaped like a valid name for a
// parameter, option or type constraint: a letter or underscore followed by
// letters, digits, underscores or single interior dashes.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(first) && first != '_' {
		return false
	}
	if strings.Contains(s, "--") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) && r != '-' {
			return false
		}
	}

	return true
}
